package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fenilsonani/dupefinder/internal/detector"
)

func sampleResult() *detector.Result {
	return &detector.Result{
		Status: detector.StatusCompleted,
		Groups: map[string]*detector.Group{
			"aaaa": {
				Digest: "aaaa",
				Size:   1024,
				Paths:  []string{"/data/a.txt", "/data/sub/a-copy.txt"},
			},
			"bbbb": {
				Digest: "bbbb",
				Size:   10,
				Paths:  []string{"/data/b.txt", "/data/b2.txt", "/data/b3.txt"},
			},
		},
		FilesScanned: 12,
		SkippedFiles: 1,
		Duration:     450 * time.Millisecond,
	}
}

func TestReportSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).Report(sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Files scanned:    12",
		"Duplicate groups: 2",
		"Redundant copies: 3",
		"Reclaimable:      1.02 KB",
		"Skipped (I/O):    1",
		"/data/a.txt",
		"/data/b3.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}

	// The first-seen copy in each group carries the keep marker
	if !strings.Contains(out, "* /data/a.txt") {
		t.Errorf("expected keep marker on first path\n%s", out)
	}
	if strings.Contains(out, "* /data/sub/a-copy.txt") {
		t.Errorf("unexpected keep marker on duplicate\n%s", out)
	}
}

func TestReportSummaryStopped(t *testing.T) {
	var buf bytes.Buffer
	result := &detector.Result{Status: detector.StatusStopped, Groups: map[string]*detector.Group{}}

	if err := New(&buf, FormatSummary).Report(result); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !strings.Contains(buf.String(), "stopped") {
		t.Errorf("expected stopped notice, got %q", buf.String())
	}
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatTable).Report(sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Digest") || !strings.Contains(out, "Path") {
		t.Errorf("missing table header\n%s", out)
	}
	// One row per duplicate file: 2 + 3
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "/data/") {
			rows++
		}
	}
	if rows != 5 {
		t.Errorf("expected 5 file rows, got %d\n%s", rows, out)
	}
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).Report(sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var doc struct {
		Status       string `json:"status"`
		FilesScanned int    `json:"files_scanned"`
		GroupCount   int    `json:"group_count"`
		WastedBytes  int64  `json:"wasted_bytes"`
		Groups       []struct {
			Digest string   `json:"digest"`
			Paths  []string `json:"paths"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if doc.Status != "completed" {
		t.Errorf("status = %q", doc.Status)
	}
	if doc.FilesScanned != 12 || doc.GroupCount != 2 {
		t.Errorf("counts = %d files, %d groups", doc.FilesScanned, doc.GroupCount)
	}
	// 1024*1 + 10*2
	if doc.WastedBytes != 1044 {
		t.Errorf("wasted bytes = %d", doc.WastedBytes)
	}
	// Sorted by wasted bytes, largest first
	if len(doc.Groups) != 2 || doc.Groups[0].Digest != "aaaa" {
		t.Errorf("unexpected group order: %+v", doc.Groups)
	}
}

func TestReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).Report(sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "status: completed") || !strings.Contains(out, "files_scanned: 12") {
		t.Errorf("unexpected YAML output:\n%s", out)
	}
}

func TestReportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, OutputFormat("csv")).Report(sampleResult()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// Reporter renders scan results
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report renders a scan result in the configured format
func (r *Reporter) Report(result *detector.Result) error {
	switch r.format {
	case FormatSummary:
		return r.reportSummary(result)
	case FormatTable:
		return r.reportTable(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a short human-readable report
func (r *Reporter) reportSummary(result *detector.Result) error {
	if result.Stopped() {
		fmt.Fprintf(r.writer, "Scan stopped before completion.\n")
		return nil
	}

	fmt.Fprintf(r.writer, "=== Duplicate Scan Summary ===\n")
	fmt.Fprintf(r.writer, "Files scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.writer, "Duplicate groups: %d\n", result.GroupCount())
	fmt.Fprintf(r.writer, "Redundant copies: %d\n", result.DuplicateCount())
	fmt.Fprintf(r.writer, "Reclaimable:      %s\n", utils.FormatBytes(result.WastedBytes()))
	if result.SkippedFiles > 0 {
		fmt.Fprintf(r.writer, "Skipped (I/O):    %d\n", result.SkippedFiles)
	}
	fmt.Fprintf(r.writer, "Duration:         %s\n", result.Duration.Round(time.Millisecond))

	for i, group := range result.SortedGroups() {
		fmt.Fprintf(r.writer, "\nGroup %d: %d files x %s\n", i+1, len(group.Paths), utils.FormatBytes(group.Size))
		for j, path := range group.Paths {
			marker := "  "
			if j == 0 {
				marker = "* " // first-seen copy
			}
			fmt.Fprintf(r.writer, "  %s%s\n", marker, path)
		}
	}

	return nil
}

// reportTable generates one row per duplicate file
func (r *Reporter) reportTable(result *detector.Result) error {
	fmt.Fprintf(r.writer, "%-16s | %-12s | %s\n", "Digest", "Size", "Path")
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 96))

	for _, group := range result.SortedGroups() {
		digest := group.Digest
		if len(digest) > 16 {
			digest = digest[:16]
		}
		for _, path := range group.Paths {
			fmt.Fprintf(r.writer, "%-16s | %-12s | %s\n", digest, utils.FormatBytes(group.Size), path)
		}
	}

	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 96))
	fmt.Fprintf(r.writer, "Total: %d groups, %s reclaimable\n", result.GroupCount(), utils.FormatBytes(result.WastedBytes()))

	return nil
}

// reportDocument is the serializable report shape shared by the JSON
// and YAML formats.
type reportDocument struct {
	Timestamp       string            `json:"timestamp" yaml:"timestamp"`
	Status          string            `json:"status" yaml:"status"`
	FilesScanned    int               `json:"files_scanned" yaml:"files_scanned"`
	SkippedFiles    int               `json:"skipped_files" yaml:"skipped_files"`
	GroupCount      int               `json:"group_count" yaml:"group_count"`
	WastedBytes     int64             `json:"wasted_bytes" yaml:"wasted_bytes"`
	WastedFormatted string            `json:"wasted_formatted" yaml:"wasted_formatted"`
	Groups          []*detector.Group `json:"groups" yaml:"groups"`
}

func newReportDocument(result *detector.Result) *reportDocument {
	return &reportDocument{
		Timestamp:       time.Now().Format(time.RFC3339),
		Status:          result.Status.String(),
		FilesScanned:    result.FilesScanned,
		SkippedFiles:    result.SkippedFiles,
		GroupCount:      result.GroupCount(),
		WastedBytes:     result.WastedBytes(),
		WastedFormatted: utils.FormatBytes(result.WastedBytes()),
		Groups:          result.SortedGroups(),
	}
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(result *detector.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReportDocument(result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(result *detector.Result) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(newReportDocument(result))
}

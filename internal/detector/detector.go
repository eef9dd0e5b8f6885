// Package detector finds sets of byte-identical files under a directory
// tree. It filters in two phases, grouping by exact size before hashing
// content, so that files which cannot possibly be duplicates are never
// read. Per-file I/O errors exclude the file and nothing else; duplicate
// discovery is best effort.
package detector

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fenilsonani/dupefinder/internal/config"
	"github.com/fenilsonani/dupefinder/internal/progress"
)

// Progress ranges allocated to each pipeline stage.
const (
	enumerateBase = 0.0
	enumerateSpan = 30.0
	sizeBase      = 30.0
	sizeSpan      = 30.0
	hashBase      = 60.0
	hashSpan      = 40.0
)

// Detector coordinates the enumerate -> size-bucket -> hash pipeline.
// A single scan may be in flight per instance; a second concurrent Scan
// returns ErrScanInProgress. Stop may be called from any goroutine at
// any time and is idempotent.
type Detector struct {
	config           *config.Config
	progressReporter *progress.Reporter

	running       atomic.Bool
	stopRequested atomic.Bool
	currentOp     atomic.Value // string

	// Progress percent is forced monotonic within a scan so parallel
	// hashing workers cannot publish out-of-order percentages.
	progressMu  sync.Mutex
	lastPercent float64
}

// New creates a new Detector
func New(cfg *config.Config) *Detector {
	if cfg == nil {
		cfg = config.GetDefault()
	}
	return &Detector{
		config:           cfg,
		progressReporter: progress.NewReporter(),
	}
}

// SetProgressReporter sets a custom progress reporter
func (d *Detector) SetProgressReporter(pr *progress.Reporter) {
	d.progressReporter = pr
}

// GetProgressReporter returns the detector's progress reporter
func (d *Detector) GetProgressReporter() *progress.Reporter {
	return d.progressReporter
}

// Stop requests cooperative cancellation of the in-flight scan. Safe to
// call at any time, including when no scan is running; the flag is
// reset when the next scan starts.
func (d *Detector) Stop() {
	d.stopRequested.Store(true)
}

// CurrentOperation returns a descriptor of what the scan is doing right
// now, for diagnostics.
func (d *Detector) CurrentOperation() string {
	if op, ok := d.currentOp.Load().(string); ok {
		return op
	}
	return ""
}

// Scan walks root and returns the duplicate groups found. The returned
// Result distinguishes a stopped scan from a completed scan with zero
// duplicates. The only error outcomes are an invalid root (*PathError)
// and a scan already in flight (ErrScanInProgress).
func (d *Detector) Scan(ctx context.Context, root string) (*Result, error) {
	if !d.running.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer d.running.Store(false)

	d.stopRequested.Store(false)
	d.resetProgress()
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Err: ErrNotDirectory}
	}

	rootPath := normalizePath(root)

	d.report(progress.PhaseStarting, 0, "Starting duplicate search...", rootPath)

	files := d.enumerate(ctx, rootPath)
	if d.stopped(ctx) {
		return d.stopResult(start), nil
	}

	sizeGroups, statSkipped := d.groupBySize(ctx, files)
	if d.stopped(ctx) {
		return d.stopResult(start), nil
	}

	groups, hashSkipped := d.hashGroups(ctx, sizeGroups)
	if d.stopped(ctx) {
		return d.stopResult(start), nil
	}

	result := &Result{
		Status:       StatusCompleted,
		Groups:       groups,
		FilesScanned: len(files),
		SkippedFiles: statSkipped + hashSkipped,
		Duration:     time.Since(start),
	}

	d.report(progress.PhaseComplete, 100, fmt.Sprintf("Found %d duplicate groups", len(groups)), "")
	d.setOperation("")

	return result, nil
}

// stopped reports whether cancellation was requested, either through
// Stop or through the scan context.
func (d *Detector) stopped(ctx context.Context) bool {
	return d.stopRequested.Load() || ctx.Err() != nil
}

// stopResult discards partial work and produces the stopped outcome
func (d *Detector) stopResult(start time.Time) *Result {
	d.reportStopped()
	d.setOperation("")
	return &Result{
		Status:   StatusStopped,
		Groups:   map[string]*Group{},
		Duration: time.Since(start),
	}
}

func (d *Detector) setOperation(op string) {
	d.currentOp.Store(op)
}

func (d *Detector) resetProgress() {
	d.progressMu.Lock()
	d.lastPercent = 0
	d.progressMu.Unlock()
}

// report publishes a progress update, clamping percent so it never
// moves backwards within a scan.
func (d *Detector) report(phase progress.Phase, percent float64, message, path string) {
	if d.progressReporter == nil {
		return
	}

	d.progressMu.Lock()
	if percent < d.lastPercent {
		percent = d.lastPercent
	}
	d.lastPercent = percent
	d.progressMu.Unlock()

	d.progressReporter.Publish(progress.Update{
		Phase:   phase,
		Percent: percent,
		Message: message,
		Path:    path,
	})
}

// reportStopped publishes the distinct stopped event. Percent resets to
// zero: the stopped outcome is not a point on the 0-100 scale.
func (d *Detector) reportStopped() {
	if d.progressReporter == nil {
		return
	}
	d.progressReporter.Publish(progress.Update{
		Phase:   progress.PhaseStopped,
		Percent: 0,
		Message: "Scan stopped",
	})
}

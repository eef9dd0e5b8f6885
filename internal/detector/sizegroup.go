package detector

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fenilsonani/dupefinder/internal/progress"
)

// groupBySize stats each enumerated file and buckets by exact byte
// length. Files whose size cannot be determined are excluded silently
// and counted for diagnostics. Only buckets with two or more members
// are returned; singletons cannot be duplicates.
func (d *Detector) groupBySize(ctx context.Context, files []string) (SizeGroups, int) {
	groups := make(SizeGroups)
	skipped := 0
	total := len(files)

	for i, path := range files {
		if d.stopped(ctx) {
			break
		}

		d.setOperation("sizing " + path)
		percent := sizeBase + float64(i)/float64(max(total, 1))*sizeSpan
		d.report(progress.PhaseSizing, percent, "Analyzing file sizes: "+filepath.Base(path), path)

		info, err := os.Stat(path)
		if err != nil {
			// Removed or unreadable since enumeration - exclude it
			skipped++
			continue
		}
		if !info.Mode().IsRegular() {
			// Replaced by something else mid-scan
			skipped++
			continue
		}
		if info.Size() < d.config.Scan.MinFileSize {
			continue
		}

		groups[info.Size()] = append(groups[info.Size()], path)
	}

	for size, members := range groups {
		if len(members) < 2 {
			delete(groups, size)
		}
	}

	return groups, skipped
}

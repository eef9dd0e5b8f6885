package detector

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/dupefinder/internal/progress"
)

// enumerate walks the tree under root and returns normalized absolute
// paths of every regular, non-hidden file, in traversal order. Hidden
// directories are not descended into; the root itself is exempt from
// the hidden check since it was named explicitly. Unreadable entries
// are skipped silently.
func (d *Detector) enumerate(ctx context.Context, root string) []string {
	d.setOperation("enumerating " + root)

	totalDirs := countDirs(root)
	if totalDirs == 0 {
		totalDirs = 1
	}

	var files []string
	processedDirs := 0

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if d.stopped(ctx) {
			return fs.SkipAll
		}
		if err != nil {
			// Permission denied or vanished entry - skip and continue
			return nil
		}

		if entry.IsDir() {
			if path != root && isHidden(entry.Name()) {
				return fs.SkipDir
			}
			processedDirs++
			percent := enumerateBase + float64(processedDirs)/float64(totalDirs)*enumerateSpan
			d.report(progress.PhaseEnumerating, percent, "Scanning directory: "+path, path)
			return nil
		}

		if isHidden(entry.Name()) {
			return nil
		}
		// Symlinks, sockets and other special files are never duplicates
		// of regular content.
		if !entry.Type().IsRegular() {
			return nil
		}
		if d.excluded(path) {
			return nil
		}

		files = append(files, normalizePath(path))
		return nil
	})

	return files
}

// countDirs pre-counts the directories the walk will visit so that
// per-directory progress has a denominator.
func countDirs(root string) int {
	count := 0
	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if path != root && isHidden(entry.Name()) {
				return fs.SkipDir
			}
			count++
		}
		return nil
	})
	return count
}

// excluded checks the configured exclude glob patterns against the full
// path and the base name.
func (d *Detector) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range d.config.Scan.ExcludePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if strings.Contains(pattern, string(filepath.Separator)) && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

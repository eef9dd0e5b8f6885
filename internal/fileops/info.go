package fileops

import (
	"os"
	"path/filepath"
	"time"
)

// Info describes a file for presentation purposes
type Info struct {
	Path     string
	Name     string
	Dir      string
	Size     int64
	Modified time.Time
}

// FileInfo returns size and modification details for a path, or an
// error if the file cannot be statted.
func FileInfo(path string) (*Info, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, categorizeError(path, err)
	}

	return &Info{
		Path:     path,
		Name:     filepath.Base(path),
		Dir:      filepath.Dir(path),
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

// RelativePath returns path relative to base, or the path unchanged
// when no relative form exists.
func RelativePath(path, base string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

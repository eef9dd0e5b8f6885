package detector

import (
	"errors"
	"fmt"
)

// ErrNotDirectory indicates the scan root exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// ErrScanInProgress is returned when Scan is called while another scan
// is running on the same Detector. One scan per detector instance.
var ErrScanInProgress = errors.New("scan already in progress")

// PathError reports an invalid scan root. It is the only hard failure
// a scan produces; per-file I/O errors are converted to omission.
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

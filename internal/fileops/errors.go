package fileops

import (
	"fmt"
	"os"
)

// ErrorReason categorizes why a trash operation failed
type ErrorReason int

const (
	ErrorFileNotFound ErrorReason = iota
	ErrorNotAFile
	ErrorPermissionDenied
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorFileNotFound:
		return "File not found"
	case ErrorNotAFile:
		return "Not a regular file"
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// TrashError represents a detailed trash failure for a single path
type TrashError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *TrashError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error
func (e *TrashError) Unwrap() error {
	return e.Original
}

// categorizeError analyzes an error and returns a categorized TrashError
func categorizeError(path string, err error) *TrashError {
	if err == nil {
		return nil
	}

	reason := ErrorUnknown
	switch {
	case os.IsNotExist(err):
		reason = ErrorFileNotFound
	case os.IsPermission(err):
		reason = ErrorPermissionDenied
	}

	return &TrashError{Path: path, Reason: reason, Original: err}
}

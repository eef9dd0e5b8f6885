package models

import (
	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/internal/progress"
)

// ScanProgressMsg carries a progress update from the scan worker
type ScanProgressMsg progress.Update

// ScanCompleteMsg is sent when the scan finishes (completed or stopped)
type ScanCompleteMsg struct {
	Result *detector.Result
}

// ScanFailedMsg is sent when the scan could not run at all
type ScanFailedMsg struct {
	Err error
}

// FilesMarkedMsg is sent when the user confirms a selection to trash
type FilesMarkedMsg struct {
	Paths []string
	Size  int64
}

// TrashCompleteMsg carries the per-path results of the trash operation
type TrashCompleteMsg struct {
	Results map[string]error
	Size    int64
}

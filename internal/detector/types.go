package detector

import (
	"sort"
	"time"
)

// Status is the terminal outcome of a scan. A stopped scan is distinct
// from both success and failure: it carries no groups and is not an error.
type Status int

const (
	StatusCompleted Status = iota
	StatusStopped
)

// String returns a human-readable status
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SizeGroups maps exact byte size to the files sharing it, in
// enumeration order. Intermediate stage output; only multi-member
// buckets survive into hashing.
type SizeGroups map[int64][]string

// Group is a set of files with identical content, keyed by content
// digest. Paths are in enumeration order: the first-seen file is first.
type Group struct {
	Digest string   `json:"digest" yaml:"digest"`
	Size   int64    `json:"size" yaml:"size"` // per-file size in bytes
	Paths  []string `json:"paths" yaml:"paths"`
}

// WastedBytes returns the bytes recoverable by keeping a single copy
func (g *Group) WastedBytes() int64 {
	if len(g.Paths) < 2 {
		return 0
	}
	return g.Size * int64(len(g.Paths)-1)
}

// Result represents the outcome of a duplicate scan
type Result struct {
	Status       Status
	Groups       map[string]*Group // digest -> group, every group has >= 2 paths
	FilesScanned int               // files enumerated
	SkippedFiles int               // files excluded by I/O errors (best-effort diagnostics)
	Duration     time.Duration
}

// Stopped reports whether the scan was cancelled before completing
func (r *Result) Stopped() bool {
	return r.Status == StatusStopped
}

// GroupCount returns the number of duplicate groups
func (r *Result) GroupCount() int {
	return len(r.Groups)
}

// DuplicateCount returns the total number of redundant copies across
// all groups (group members beyond the first).
func (r *Result) DuplicateCount() int {
	count := 0
	for _, g := range r.Groups {
		count += len(g.Paths) - 1
	}
	return count
}

// WastedBytes returns the total recoverable bytes across all groups
func (r *Result) WastedBytes() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.WastedBytes()
	}
	return total
}

// SortedGroups returns groups ordered by wasted bytes, largest first.
// Ties break on the first path so output is deterministic.
func (r *Result) SortedGroups() []*Group {
	groups := make([]*Group, 0, len(r.Groups))
	for _, g := range r.Groups {
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		wi, wj := groups[i].WastedBytes(), groups[j].WastedBytes()
		if wi != wj {
			return wi > wj
		}
		return groups[i].Paths[0] < groups[j].Paths[0]
	})

	return groups
}

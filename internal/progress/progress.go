package progress

import (
	"fmt"
	"sync"
)

// Phase represents the current stage of a duplicate scan
type Phase string

const (
	PhaseStarting    Phase = "starting"
	PhaseEnumerating Phase = "enumerating"
	PhaseSizing      Phase = "sizing"
	PhaseHashing     Phase = "hashing"
	PhaseComplete    Phase = "complete"
	PhaseStopped     Phase = "stopped"
)

// Update is a single progress event published by the detector.
// Percent is 0-100 and monotonically non-decreasing within a successful
// scan; a stopped scan publishes a final PhaseStopped update with
// Percent 0.
type Update struct {
	Phase   Phase
	Percent float64
	Message string
	Path    string // file or directory the update refers to, may be empty
}

// Reporter provides thread-safe progress reporting via pub-sub channels.
// The detector publishes from its worker goroutine; subscribers consume
// on their own goroutines, so the worker never touches caller-owned state.
type Reporter struct {
	mu        sync.RWMutex
	last      *Update
	listeners []chan Update
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan Update, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Update, 64)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish records an update and notifies listeners without blocking.
// Listeners that have fallen behind miss intermediate updates rather
// than stalling the scan.
func (r *Reporter) Publish(update Update) {
	r.mu.Lock()
	r.last = &update
	listeners := make([]chan Update, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// Last returns the most recently published update
func (r *Reporter) Last() *Update {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// FormatUpdate returns a human-readable progress string
func FormatUpdate(u *Update) string {
	if u == nil {
		return "Initializing..."
	}

	switch u.Phase {
	case PhaseComplete, PhaseStopped:
		return u.Message
	default:
		return fmt.Sprintf("[%3.0f%%] %s", u.Percent, u.Message)
	}
}

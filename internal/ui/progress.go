package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/fenilsonani/dupefinder/internal/progress"
)

// LiveProgress renders scan progress as a single updating terminal line
// for the non-interactive CLI path.
type LiveProgress struct {
	mu         sync.Mutex
	termWidth  int
	enabled    bool
	lastUpdate time.Time
}

// NewLiveProgress creates a new live progress display
func NewLiveProgress() *LiveProgress {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return &LiveProgress{
		termWidth: width,
		enabled:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// SetEnabled enables or disables live progress
func (lp *LiveProgress) SetEnabled(enabled bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.enabled = enabled
}

// Update redraws the progress line for an update
func (lp *LiveProgress) Update(u progress.Update) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if !lp.enabled {
		return
	}

	// Throttle to avoid flickering, but never drop terminal events
	now := time.Now()
	if u.Phase != progress.PhaseComplete && u.Phase != progress.PhaseStopped {
		if now.Sub(lp.lastUpdate) < 100*time.Millisecond {
			return
		}
	}
	lp.lastUpdate = now

	line := fmt.Sprintf("%s %s", renderBar(u.Percent, 24), progress.FormatUpdate(&u))
	fmt.Printf("\r\033[K%s", truncate(line, lp.termWidth-1))
}

// Finish ends the progress line
func (lp *LiveProgress) Finish() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if !lp.enabled {
		return
	}
	fmt.Print("\r\033[K")
}

// renderBar draws a fixed-width ASCII progress bar
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// truncate truncates a string to fit width
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

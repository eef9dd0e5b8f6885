package models

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupefinder/internal/ui/styles"
	"github.com/fenilsonani/dupefinder/pkg/utils"
)

// SummaryViewModel shows the outcome of the trash operation
type SummaryViewModel struct {
	trashed []string
	failed  map[string]error
	size    int64
}

// NewSummaryViewModel creates a new summary view model from the
// per-path trash results.
func NewSummaryViewModel(results map[string]error, size int64) *SummaryViewModel {
	m := &SummaryViewModel{
		failed: make(map[string]error),
		size:   size,
	}

	for path, err := range results {
		if err != nil {
			m.failed[path] = err
		} else {
			m.trashed = append(m.trashed, path)
		}
	}
	sort.Strings(m.trashed)

	return m
}

// Init initializes the summary view
func (m *SummaryViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SummaryViewModel) Update(msg tea.Msg) (*SummaryViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the summary view
func (m *SummaryViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("✨ Done"))
	b.WriteString("\n\n")

	b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Moved %d files to trash", len(m.trashed))))
	b.WriteString("\n")
	b.WriteString(styles.BoldStyle.Render("Space reclaimable: " + utils.FormatBytes(m.size)))
	b.WriteString("\n")

	if len(m.failed) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ Failed: %d files", len(m.failed))))
		b.WriteString("\n")

		paths := make([]string, 0, len(m.failed))
		for path := range m.failed {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			b.WriteString(fmt.Sprintf("  %s: %v\n", path, m.failed[path]))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("q to exit"))
	b.WriteString("\n")

	return b.String()
}

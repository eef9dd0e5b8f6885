package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupefinder/internal/ui/styles"
	"github.com/fenilsonani/dupefinder/pkg/utils"
)

// ConfirmViewModel asks for confirmation before trashing marked files
type ConfirmViewModel struct {
	paths  []string
	size   int64
	cursor int // 0 = Trash, 1 = Cancel
}

// NewConfirmViewModel creates a new confirm view model
func NewConfirmViewModel(paths []string, size int64) *ConfirmViewModel {
	return &ConfirmViewModel{
		paths:  paths,
		size:   size,
		cursor: 1, // Default to Cancel
	}
}

// Init initializes the confirm view
func (m *ConfirmViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ConfirmViewModel) Update(msg tea.Msg) (*ConfirmViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.cursor = 1 - m.cursor
		case "y":
			return m, m.accept()
		case "n":
			m.cursor = 1
			return m, reject()
		case "enter":
			if m.cursor == 0 {
				return m, m.accept()
			}
			return m, reject()
		}
	}

	return m, nil
}

func (m *ConfirmViewModel) accept() tea.Cmd {
	return func() tea.Msg {
		return trashRequestMsg{Paths: m.paths, Size: m.size}
	}
}

func reject() tea.Cmd {
	return func() tea.Msg {
		return backToGroupsMsg{}
	}
}

// View renders the confirm view
func (m *ConfirmViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🗑  Move to Trash"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Move %d files (%s) to the system trash?\n",
		len(m.paths), utils.FormatBytes(m.size)))
	b.WriteString(styles.HelpStyle.Render("Files go to the trash, not permanent deletion."))
	b.WriteString("\n\n")

	preview := m.paths
	if len(preview) > 8 {
		preview = preview[:8]
	}
	for _, path := range preview {
		b.WriteString("  " + styles.FilePathStyle.Render(path) + "\n")
	}
	if len(m.paths) > 8 {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  ... and %d more\n", len(m.paths)-8)))
	}
	b.WriteString("\n")

	trash := "  Trash  "
	cancel := "  Cancel  "
	if m.cursor == 0 {
		trash = styles.SelectedStyle.Render("[ Trash ]")
	} else {
		cancel = styles.SelectedStyle.Render("[ Cancel ]")
	}
	b.WriteString(trash + "   " + cancel + "\n\n")
	b.WriteString(styles.HelpStyle.Render("y confirm • n/esc back • tab switch"))
	b.WriteString("\n")

	return b.String()
}

package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/internal/fileops"
	"github.com/fenilsonani/dupefinder/internal/ui/styles"
	"github.com/fenilsonani/dupefinder/pkg/utils"
)

// row is one selectable line in the flattened group list
type row struct {
	group     *detector.Group
	path      string // empty for group header rows
	firstSeen bool
}

// GroupsViewModel lets the user browse duplicate groups and mark files
// for the trash.
type GroupsViewModel struct {
	root     string
	groups   []*detector.Group
	rows     []row
	marked   map[string]bool
	cursor   int
	offset   int
	pageSize int
}

// NewGroupsViewModel creates a new groups view model
func NewGroupsViewModel(result *detector.Result, root string) *GroupsViewModel {
	groups := result.SortedGroups()

	var rows []row
	for _, g := range groups {
		rows = append(rows, row{group: g})
		for i, path := range g.Paths {
			rows = append(rows, row{group: g, path: path, firstSeen: i == 0})
		}
	}

	return &GroupsViewModel{
		root:     root,
		groups:   groups,
		rows:     rows,
		marked:   make(map[string]bool),
		pageSize: 20,
	}
}

// Init initializes the groups view
func (m *GroupsViewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *GroupsViewModel) Update(msg tea.Msg) (*GroupsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset--
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset++
				}
			}
		case " ", "space":
			r := m.rows[m.cursor]
			if r.path != "" {
				m.marked[r.path] = !m.marked[r.path]
			}
		case "a":
			// Mark everything except the first-seen copy of each group
			for _, g := range m.groups {
				for i, path := range g.Paths {
					m.marked[path] = i > 0
				}
			}
		case "n":
			m.marked = make(map[string]bool)
		case "enter":
			paths, size := m.selection()
			if len(paths) == 0 {
				return m, nil
			}
			return m, func() tea.Msg {
				return FilesMarkedMsg{Paths: paths, Size: size}
			}
		}
	}

	return m, nil
}

// selection returns the marked paths in group order and their total size
func (m *GroupsViewModel) selection() ([]string, int64) {
	var paths []string
	var size int64
	for _, g := range m.groups {
		for _, path := range g.Paths {
			if m.marked[path] {
				paths = append(paths, path)
				size += g.Size
			}
		}
	}
	return paths, size
}

// View renders the groups view
func (m *GroupsViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📁 Duplicate Groups"))
	b.WriteString("\n\n")

	end := m.offset + m.pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("→ ")
		}

		if r.path == "" {
			header := fmt.Sprintf("%d files × %s  %s",
				len(r.group.Paths),
				styles.FileSizeStyle.Render(utils.FormatBytes(r.group.Size)),
				styles.DigestStyle.Render(shortDigest(r.group.Digest)))
			b.WriteString(cursor)
			b.WriteString(styles.SubtitleStyle.Render(header))
			b.WriteString("\n")
			continue
		}

		checkbox := styles.UncheckedBox()
		if m.marked[r.path] {
			checkbox = styles.CheckedBox()
		}

		name := fileops.RelativePath(r.path, m.root)
		if len(name) > 60 {
			name = "..." + name[len(name)-57:]
		}

		line := fmt.Sprintf("%s  %s %s", cursor, checkbox, styles.FilePathStyle.Render(name))
		if r.firstSeen {
			line += " " + styles.KeepStyle.Render("(first seen)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	paths, size := m.selection()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Marked: %d files (%s)\n", len(paths), utils.FormatBytes(size)))
	b.WriteString(styles.HelpStyle.Render("space mark • a mark all but first • n clear • enter trash marked • q quit"))
	b.WriteString("\n")

	return b.String()
}

// shortDigest truncates a digest for display
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

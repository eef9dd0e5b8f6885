// Package models implements the interactive TUI for reviewing and
// trashing duplicate files. Which copy of a group survives is decided
// here, never by the detector; the default marking keeps the first-seen
// file of each group.
package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/internal/fileops"
)

// ViewState represents the current view in the app
type ViewState int

const (
	ViewScanning ViewState = iota
	ViewGroups
	ViewConfirmation
	ViewSummary
)

// AppModel is the root model for the interactive TUI
type AppModel struct {
	state ViewState

	root     string
	det      *detector.Detector
	trasher  *fileops.Trasher
	result   *detector.Result

	scanView    *ScanViewModel
	groupsView  *GroupsViewModel
	confirmView *ConfirmViewModel
	summaryView *SummaryViewModel

	width  int
	height int
	err    error
}

// NewAppModel creates a new app model
func NewAppModel(root string, det *detector.Detector, trasher *fileops.Trasher) *AppModel {
	return &AppModel{
		state:   ViewScanning,
		root:    root,
		det:     det,
		trasher: trasher,
	}
}

// Init initializes the model and starts scanning immediately
func (m *AppModel) Init() tea.Cmd {
	m.scanView = NewScanViewModel(m.root, m.det)
	return m.scanView.Init()
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.det.Stop()
			return m, tea.Quit
		case "q":
			if m.state == ViewScanning {
				// Cooperative stop; the scan worker returns a stopped
				// result which quits below.
				m.det.Stop()
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.state == ViewConfirmation {
				m.state = ViewGroups
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ScanFailedMsg:
		m.err = msg.Err
		return m, tea.Quit

	case ScanCompleteMsg:
		m.result = msg.Result
		if m.result.Stopped() || m.result.GroupCount() == 0 {
			return m, tea.Quit
		}
		m.groupsView = NewGroupsViewModel(m.result, m.root)
		m.state = ViewGroups
		return m, nil

	case FilesMarkedMsg:
		m.confirmView = NewConfirmViewModel(msg.Paths, msg.Size)
		m.state = ViewConfirmation
		return m, nil

	case backToGroupsMsg:
		m.state = ViewGroups
		return m, nil

	case trashRequestMsg:
		return m, m.performTrash(msg.Paths, msg.Size)

	case TrashCompleteMsg:
		m.summaryView = NewSummaryViewModel(msg.Results, msg.Size)
		m.state = ViewSummary
		return m, nil
	}

	// Route to the active view
	var cmd tea.Cmd
	switch m.state {
	case ViewScanning:
		m.scanView, cmd = m.scanView.Update(msg)
	case ViewGroups:
		m.groupsView, cmd = m.groupsView.Update(msg)
	case ViewConfirmation:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}

	return m, cmd
}

// View renders the active view
func (m *AppModel) View() string {
	switch m.state {
	case ViewScanning:
		return m.scanView.View()
	case ViewGroups:
		return m.groupsView.View()
	case ViewConfirmation:
		return m.confirmView.View()
	case ViewSummary:
		return m.summaryView.View()
	default:
		return ""
	}
}

// Err returns the fatal error, if any, for the caller to surface after
// the program exits.
func (m *AppModel) Err() error {
	return m.err
}

// Result returns the scan result, if any
func (m *AppModel) Result() *detector.Result {
	return m.result
}

// performTrash moves the marked files to the trash off the UI loop
func (m *AppModel) performTrash(paths []string, size int64) tea.Cmd {
	return func() tea.Msg {
		results := m.trasher.MoveAllToTrash(paths)
		return TrashCompleteMsg{Results: results, Size: size}
	}
}

// trashRequestMsg is emitted by the confirm view when the user accepts
type trashRequestMsg struct {
	Paths []string
	Size  int64
}

// backToGroupsMsg returns from the confirm view without trashing
type backToGroupsMsg struct{}

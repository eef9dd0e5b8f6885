package models

import (
	"context"
	"strings"
	"time"

	pbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/internal/progress"
	"github.com/fenilsonani/dupefinder/internal/ui/styles"
)

// ScanViewModel handles the scanning progress view
type ScanViewModel struct {
	root      string
	det       *detector.Detector
	updates   <-chan progress.Update
	spinner   spinner.Model
	bar       pbar.Model
	percent   float64
	message   string
	startTime time.Time
}

// NewScanViewModel creates a new scan view model
func NewScanViewModel(root string, det *detector.Detector) *ScanViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return &ScanViewModel{
		root:      root,
		det:       det,
		updates:   det.GetProgressReporter().Subscribe(),
		spinner:   s,
		bar:       pbar.New(pbar.WithDefaultGradient()),
		message:   "Starting duplicate search...",
		startTime: time.Now(),
	}
}

// Init starts the scan worker and the progress pump
func (m *ScanViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.performScan,
		m.waitForProgress,
	)
}

// performScan runs the blocking scan on its own goroutine via the
// bubbletea command runner; the UI loop stays responsive.
func (m *ScanViewModel) performScan() tea.Msg {
	result, err := m.det.Scan(context.Background(), m.root)
	if err != nil {
		return ScanFailedMsg{Err: err}
	}
	return ScanCompleteMsg{Result: result}
}

// waitForProgress pumps one progress update into the UI loop
func (m *ScanViewModel) waitForProgress() tea.Msg {
	update, ok := <-m.updates
	if !ok {
		return nil
	}
	return ScanProgressMsg(update)
}

// Update handles messages
func (m *ScanViewModel) Update(msg tea.Msg) (*ScanViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScanProgressMsg:
		m.percent = msg.Percent
		m.message = msg.Message
		// Re-arm the pump for the next update
		return m, m.waitForProgress
	}

	return m, nil
}

// View renders the scan view
func (m *ScanViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔍 Scanning for duplicates"))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.message)
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(m.percent / 100))
	b.WriteString("\n\n")

	elapsed := time.Since(m.startTime).Round(time.Second)
	b.WriteString(styles.HelpStyle.Render("Elapsed: " + elapsed.String() + "  •  q to stop"))
	b.WriteString("\n")

	return b.String()
}

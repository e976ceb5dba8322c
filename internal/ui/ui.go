// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astromath/internal/state"
	"github.com/litescript/ls-astromath/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewClock ViewMode = iota
	ViewMount
)

const viewCount = 2

// TickMsg triggers a recomputation of the snapshot.
type TickMsg time.Time

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FF"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// Model is the root Bubble Tea model.
type Model struct {
	state   *state.Manager
	refresh time.Duration
	now     func() time.Time

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	precise  bool // 32-bit NexStar encoding on the mount view

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	refresh := stateMgr.RefreshInterval()
	if refresh <= 0 {
		refresh = time.Second
	}
	return Model{
		state:    stateMgr,
		refresh:  refresh,
		now:      time.Now,
		viewMode: ViewClock,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(0)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "c":
			m.viewMode = ViewClock
		case "2", "m":
			m.viewMode = ViewMount
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "p":
			m.precise = !m.precise
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		m.snapshot = m.state.Update(m.now())
		return m, tickCmd(m.refresh)
	}

	return m, nil
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return TickMsg(time.Now()) }
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.snapshot.IsZero() {
		return m.renderHeader() + "\n" + dimStyle.Render("  Waiting for first update...") + "\n"
	}

	var content string
	switch m.viewMode {
	case ViewClock:
		content = m.renderClock()
	case ViewMount:
		content = m.renderMount()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := accentStyle.Render("  ls-astromath")
	ver := dimStyle.Render(fmt.Sprintf(" v%s", version.Version))
	return title + ver + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Clock", "[2] Mount"}

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, accentStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	help := "tab: switch view | q: quit"
	if m.viewMode == ViewMount {
		help = "p: precise encoding | " + help
	}
	status := fmt.Sprintf("update #%d every %s", m.snapshot.Updates, m.refresh)
	return "  " + dimStyle.Render(status) + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

// row renders a label/value line.
func row(label, value string) string {
	return "  " + labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

// Package notice shows short-lived status messages over the bottom of the
// screen, such as "Entry saved" or a failed write.
package notice

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/ui/overlay"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

// DefaultTimeout is how long a notice stays up.
const DefaultTimeout = 3 * time.Second

// Kind selects the notice styling.
type Kind int

const (
	KindSuccess Kind = iota
	KindInfo
	KindError
)

// DismissMsg hides the notice with the matching ID. Older dismissals are
// ignored once a newer notice replaced theirs.
type DismissMsg struct {
	ID int
}

// Model holds the current notice.
type Model struct {
	text    string
	kind    Kind
	id      int
	timeout time.Duration
}

// New creates a hidden notice with the default timeout.
func New() Model {
	return Model{timeout: DefaultTimeout}
}

// WithTimeout changes how long notices stay up.
func (m Model) WithTimeout(d time.Duration) Model {
	m.timeout = d
	return m
}

// Show replaces the current notice and schedules its dismissal.
func (m Model) Show(text string, kind Kind) (Model, tea.Cmd) {
	m.id++
	m.text = text
	m.kind = kind
	id := m.id
	return m, tea.Tick(m.timeout, func(time.Time) tea.Msg { return DismissMsg{ID: id} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.id {
		m.text = ""
	}
	return m
}

// Visible reports whether a notice is showing.
func (m Model) Visible() bool {
	return m.text != ""
}

// Text returns the current message.
func (m Model) Text() string {
	return m.text
}

// View renders the notice box, or "" when hidden.
func (m Model) View() string {
	if m.text == "" {
		return ""
	}
	var color lipgloss.TerminalColor
	icon := "✓ "
	switch m.kind {
	case KindError:
		color, icon = styles.StatusErrorColor, "✗ "
	case KindInfo:
		color, icon = styles.BorderHighlightFocusColor, "• "
	default:
		color = styles.StatusSuccessColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(icon + m.text)
}

// Overlay draws the notice near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if m.text == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		Margin:   1,
	}, m.View(), bg)
}

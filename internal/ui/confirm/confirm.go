// Package confirm provides a yes/no prompt drawn over the current view.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/keys"
	"github.com/zjrosen/daybook/internal/ui/overlay"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

const minWidth = 36

// Prompt describes a question. Payload travels back unchanged in ResultMsg
// so the caller knows what was confirmed.
type Prompt struct {
	Title   string
	Message string
	Danger  bool // destructive action, rendered in the error color
	Payload any
}

// ResultMsg reports the answer.
type ResultMsg struct {
	Confirmed bool
	Payload   any
}

// Model is an open prompt.
type Model struct {
	prompt Prompt
	width  int
	height int
}

// New opens a prompt.
func New(p Prompt) Model {
	return Model{prompt: p}
}

// Prompt returns the question being asked.
func (m Model) Prompt() Prompt {
	return m.prompt
}

// Update answers the prompt on a yes or no key. Other keys are swallowed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Confirm.Yes):
			return m, m.answer(true)
		case key.Matches(msg, keys.Confirm.No):
			return m, m.answer(false)
		}
	}
	return m, nil
}

func (m Model) answer(yes bool) tea.Cmd {
	payload := m.prompt.Payload
	return func() tea.Msg { return ResultMsg{Confirmed: yes, Payload: payload} }
}

// SetSize sets the size of the view the prompt is centered in.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

// View renders the prompt box.
func (m Model) View() string {
	accent := lipgloss.TerminalColor(styles.BorderHighlightFocusColor)
	if m.prompt.Danger {
		accent = styles.StatusErrorColor
	}
	width := max(minWidth, lipgloss.Width(m.prompt.Title), lipgloss.Width(m.prompt.Message))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(m.prompt.Title))
	if m.prompt.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Width(width).Render(m.prompt.Message))
	}
	b.WriteString("\n\n")
	yes := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("[y] " + keys.Confirm.Yes.Help().Desc)
	no := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("[n] " + keys.Confirm.No.Help().Desc)
	b.WriteString(yes + "  " + no)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width + 2).
		Render(b.String())
}

// Overlay centers the prompt on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

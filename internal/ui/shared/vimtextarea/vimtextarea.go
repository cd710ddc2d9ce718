package vimtextarea

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/textbuffer"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

// Config defines vimtextarea configuration with optional callbacks.
type Config struct {
	// VimEnabled enables vim mode. When false, behaves as standard textarea (always Insert mode).
	VimEnabled bool

	// DefaultMode is the starting mode when vim is enabled. Ignored when VimEnabled is false.
	DefaultMode Mode

	// Placeholder is the text shown when the textarea is empty.
	Placeholder string

	// UndoLimit caps the undo history. Zero uses DefaultUndoLimit.
	UndoLimit int

	// LineNumbers renders a line-number gutter.
	LineNumbers bool

	// OnModeChange produces a custom message when vim mode changes.
	// If nil, ModeChangeMsg is emitted.
	OnModeChange func(mode Mode, previous Mode) tea.Msg

	// OnChange produces a custom message when content changes.
	// If nil, no message is emitted on content change.
	OnChange func(content string) tea.Msg
}

// ModeChangeMsg is sent when vim mode changes (if OnModeChange callback is not set).
type ModeChangeMsg struct {
	Mode     Mode
	Previous Mode
}

// Model holds the vimtextarea state.
type Model struct {
	config  Config
	buf     *textbuffer.TextBuffer
	session *Session

	// Display state
	width   int
	height  int
	focused bool

	// Scrolling
	scrollOffset int // First visible line
}

// New creates a new vimtextarea with the given configuration.
func New(cfg Config) Model {
	mode := cfg.DefaultMode
	if !cfg.VimEnabled {
		mode = ModeInsert
	}
	limit := cfg.UndoLimit
	if limit == 0 {
		limit = DefaultUndoLimit
	}
	buf := textbuffer.New()
	return Model{
		config:  cfg,
		buf:     buf,
		session: NewSession(buf, WithMode(mode), WithUndoLimit(limit)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m, cmd := m.handleKeyMsg(msg)
		m.ensureCursorVisible()
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg feeds one key to the session and turns its effect into messages.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := KeyFromMsg(msg)
	if key.Name == "" {
		return m, nil
	}

	var eff Effect
	if m.config.VimEnabled {
		eff = m.session.HandleKey(key)
	} else {
		// Escape belongs to the parent when there is no Normal mode to return to.
		if key.Name == keyEscape {
			return m, nil
		}
		eff = m.session.HandleInsert(key)
	}

	var cmds []tea.Cmd
	if eff.ModeChanged {
		mode, prev := m.session.Mode(), eff.Previous
		cmds = append(cmds, func() tea.Msg {
			if m.config.OnModeChange != nil {
				return m.config.OnModeChange(mode, prev)
			}
			return ModeChangeMsg{Mode: mode, Previous: prev}
		})
	}
	if eff.Modified && m.config.OnChange != nil {
		content := m.Value()
		onChange := m.config.OnChange
		cmds = append(cmds, func() tea.Msg { return onChange(content) })
	}
	return m, tea.Batch(cmds...)
}

// HandleKey feeds a key directly to the engine, bypassing message plumbing.
func (m *Model) HandleKey(key Key) Effect {
	var eff Effect
	if m.config.VimEnabled {
		eff = m.session.HandleKey(key)
	} else if key.Name != keyEscape {
		eff = m.session.HandleInsert(key)
	}
	m.ensureCursorVisible()
	return eff
}

// SetSize sets the display dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.ensureCursorVisible()
}

// Focus focuses the textarea.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the textarea.
func (m *Model) Blur() {
	m.focused = false
}

// Focused returns whether the textarea is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Value returns the full content as a single string with newlines.
func (m Model) Value() string {
	return m.buf.Value()
}

// Lines returns the content as a slice of lines.
func (m Model) Lines() []string {
	return m.buf.Lines()
}

// SetValue replaces the content and discards undo history.
func (m *Model) SetValue(s string) {
	m.session.SetContent(strings.Split(s, "\n"), m.buf.Cursor())
	m.ensureCursorVisible()
}

// Reset clears the content and history and returns to the starting mode.
func (m *Model) Reset() {
	mode := m.config.DefaultMode
	if !m.config.VimEnabled {
		mode = ModeInsert
	}
	m.session.Reset(mode)
	m.scrollOffset = 0
}

// IsEmpty reports whether the buffer holds no text.
func (m Model) IsEmpty() bool {
	lines := m.buf.Lines()
	return len(lines) == 1 && lines[0] == ""
}

// Mode returns the current vim mode.
func (m Model) Mode() Mode {
	return m.session.Mode()
}

// VimEnabled reports whether modal editing is on.
func (m Model) VimEnabled() bool {
	return m.config.VimEnabled
}

// InVisualMode returns true if any visual mode is active.
func (m Model) InVisualMode() bool {
	return m.session.Mode().IsVisual()
}

// CursorPosition returns the cursor position.
func (m Model) CursorPosition() Position {
	return m.buf.Cursor()
}

// Session exposes the editing engine.
func (m Model) Session() *Session {
	return m.session
}

// PendingKeys echoes a partially typed command such as "3d", empty when
// nothing is pending.
func (m Model) PendingKeys() string {
	var sb strings.Builder
	if c := m.session.Count(); c > 0 {
		sb.WriteString(strconv.Itoa(c))
	}
	sb.WriteString(m.session.Pending().String())
	return sb.String()
}

// ModeIndicator returns a styled mode indicator string (e.g., "[NORMAL]" or "[INSERT]").
// Returns empty string if vim mode is disabled.
func (m Model) ModeIndicator() string {
	if !m.config.VimEnabled {
		return ""
	}

	var color lipgloss.AdaptiveColor
	switch m.session.Mode() {
	case ModeNormal:
		color = styles.VimNormalModeColor
	case ModeInsert:
		color = styles.VimInsertModeColor
	case ModeVisual, ModeVisualLine, ModeVisualBlock:
		color = styles.VimVisualModeColor
	default:
		color = styles.TextMutedColor
	}

	style := lipgloss.NewStyle().Foreground(color)
	return style.Render("[" + m.session.Mode().String() + "]")
}

// SetPlaceholder changes the text shown when empty.
func (m *Model) SetPlaceholder(p string) {
	m.config.Placeholder = p
}

// ensureCursorVisible scrolls so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	if m.height <= 0 {
		m.scrollOffset = 0
		return
	}
	row := m.buf.Cursor().Row
	if row < m.scrollOffset {
		m.scrollOffset = row
	}
	for m.scrollOffset < row && m.displayRows(m.scrollOffset, row) > m.height {
		m.scrollOffset++
	}
}

// displayRows counts the screen rows taken by logical rows from..to inclusive.
func (m Model) displayRows(from, to int) int {
	lines := m.buf.Lines()
	n := 0
	for r := from; r <= to && r < len(lines); r++ {
		segments, _ := m.wrapLineWithInfo(lines[r])
		n += len(segments)
	}
	return n
}

// Package composer hosts the modal editor used to write and edit journal
// entries. It turns the configured submit, cancel and clear bindings into
// messages for the parent and shows the editor state in its footer.
package composer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/config"
	"github.com/zjrosen/daybook/internal/journal"
	"github.com/zjrosen/daybook/internal/keys"
	"github.com/zjrosen/daybook/internal/log"
	"github.com/zjrosen/daybook/internal/ui/shared/vimtextarea"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

const (
	insertPlaceholder = "Compose…"
	normalPlaceholder = "Normal — press i to insert…"
)

// SubmitMsg carries the composed text. Target is set when an existing entry
// was being edited; Content is empty when that entry was cleared.
type SubmitMsg struct {
	Content string
	Target  *journal.Entry
}

// CancelMsg asks the parent to leave the composer. Dirty reports unsaved
// changes so the parent can confirm before discarding them.
type CancelMsg struct {
	Dirty bool
}

// Config configures a composer.
type Config struct {
	Editor      config.EditorConfig
	LineNumbers bool
	Keys        keys.ComposerKeyMap
}

// Model is the composer state.
type Model struct {
	cfg    Config
	editor vimtextarea.Model
	target *journal.Entry
	dirty  bool
	width  int
	height int
}

// New creates an empty composer.
func New(cfg Config) Model {
	m := Model{cfg: cfg}
	m.editor = m.newEditor()
	m.syncPlaceholder()
	return m
}

func (m Model) newEditor() vimtextarea.Model {
	return vimtextarea.New(vimtextarea.Config{
		VimEnabled:  m.cfg.Editor.VimMode,
		DefaultMode: startMode(m.cfg.Editor.DefaultMode),
		UndoLimit:   m.cfg.Editor.UndoLimit,
		LineNumbers: m.cfg.LineNumbers,
	})
}

func startMode(s string) vimtextarea.Mode {
	if s == config.ModeInsert {
		return vimtextarea.ModeInsert
	}
	return vimtextarea.ModeNormal
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages while the composer is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.editor.Focused() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.cfg.Keys.Submit):
		return m.submit()
	case key.Matches(keyMsg, m.cfg.Keys.Clear):
		m.Reset()
		log.Debug(log.CatComposer, "cleared")
		return m, nil
	case key.Matches(keyMsg, m.cfg.Keys.Cancel) && m.canCancel():
		dirty := m.dirty
		log.Debug(log.CatComposer, "cancel", "dirty", dirty)
		return m, func() tea.Msg { return CancelMsg{Dirty: dirty} }
	}

	k := vimtextarea.KeyFromMsg(keyMsg)
	if k.Name == "" {
		return m, nil
	}
	eff := m.editor.HandleKey(k)
	if eff.Modified {
		m.dirty = true
	}
	if eff.ModeChanged {
		m.syncPlaceholder()
	}
	return m, nil
}

// canCancel reports whether the cancel binding leaves the composer. With vim
// on, Escape first returns to Normal mode and only leaves from there.
func (m Model) canCancel() bool {
	if !m.editor.VimEnabled() {
		return true
	}
	return m.editor.Mode() == vimtextarea.ModeNormal && m.editor.PendingKeys() == ""
}

// submit emits the text. Blank text is ignored for a new entry; for an
// edited entry it asks for the entry to be removed.
func (m Model) submit() (Model, tea.Cmd) {
	content := m.editor.Value()
	if strings.TrimSpace(content) == "" {
		if m.target == nil {
			return m, nil
		}
		content = ""
	}
	target := m.target
	log.Info(log.CatComposer, "submit", "bytes", len(content), "edit", target != nil)
	m.Reset()
	return m, func() tea.Msg { return SubmitMsg{Content: content, Target: target} }
}

// Edit loads an existing entry for editing. Submitting replaces it.
func (m *Model) Edit(e journal.Entry) {
	m.Reset()
	m.target = &e
	m.editor.SetValue(e.Body)
}

// Editing returns the entry being edited, if any.
func (m Model) Editing() (journal.Entry, bool) {
	if m.target == nil {
		return journal.Entry{}, false
	}
	return *m.target, true
}

// Reset clears the text, the edit target and the dirty flag.
func (m *Model) Reset() {
	m.editor.Reset()
	m.target = nil
	m.dirty = false
	m.syncPlaceholder()
}

// SetVimEnabled switches modal editing on or off, keeping the text.
func (m *Model) SetVimEnabled(enabled bool) {
	if m.cfg.Editor.VimMode == enabled {
		return
	}
	value, focused := m.editor.Value(), m.editor.Focused()
	m.cfg.Editor.VimMode = enabled
	m.editor = m.newEditor()
	m.editor.SetValue(value)
	if focused {
		m.editor.Focus()
	}
	m.SetSize(m.width, m.height)
	m.syncPlaceholder()
}

// VimEnabled reports whether modal editing is on.
func (m Model) VimEnabled() bool {
	return m.editor.VimEnabled()
}

func (m *Model) syncPlaceholder() {
	if m.editor.VimEnabled() && m.editor.Mode() != vimtextarea.ModeInsert {
		m.editor.SetPlaceholder(normalPlaceholder)
		return
	}
	m.editor.SetPlaceholder(insertPlaceholder)
}

// Dirty reports whether the text was changed since the last reset.
func (m Model) Dirty() bool {
	return m.dirty
}

// Value returns the current text.
func (m Model) Value() string {
	return m.editor.Value()
}

// Mode returns the editor mode.
func (m Model) Mode() vimtextarea.Mode {
	return m.editor.Mode()
}

// Focus focuses the editor.
func (m *Model) Focus() {
	m.editor.Focus()
}

// Blur removes focus from the editor.
func (m *Model) Blur() {
	m.editor.Blur()
}

// Focused reports whether the editor has focus.
func (m Model) Focused() bool {
	return m.editor.Focused()
}

// SetSize sets the outer size including the border.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetSize(max(width-2, 1), max(height-2, 1))
}

// StatusLine joins the mode label, the visual hint and the pending command
// echo. Empty with vim off.
func (m Model) StatusLine() string {
	if !m.editor.VimEnabled() {
		return ""
	}
	parts := []string{m.editor.ModeIndicator()}
	if hint := m.editor.Session().StatusHint(); hint != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(hint))
	}
	if pending := m.editor.PendingKeys(); pending != "" {
		parts = append(parts, pending)
	}
	return strings.Join(parts, " ")
}

// View renders the editor inside a pane.
func (m Model) View() string {
	title := "Compose"
	if m.target != nil {
		title = "Edit " + m.target.Time
	}
	if m.dirty {
		title += " •"
	}
	return styles.Pane{
		Title:   title,
		Footer:  m.StatusLine(),
		Width:   m.width,
		Height:  m.height,
		Focused: m.editor.Focused(),
	}.Render(m.editor.View())
}

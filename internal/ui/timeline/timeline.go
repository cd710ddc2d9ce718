// Package timeline renders journal entries as a scrollable, selectable list.
package timeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/journal"
	"github.com/zjrosen/daybook/internal/keys"
	"github.com/zjrosen/daybook/internal/log"
	"github.com/zjrosen/daybook/internal/ui/shared/markdown"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

const (
	gutterSelected = "▌ "
	gutterPlain    = "  "
)

var (
	gutterStyle = lipgloss.NewStyle().Foreground(styles.BorderHighlightFocusColor)
	ageStyle    = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	emptyStyle  = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)
)

// Model is the timeline state. Entries are shown oldest first.
type Model struct {
	renderer *markdown.CachedRenderer
	clock    journal.Clock
	keys     keys.TimelineKeyMap
	viewport viewport.Model

	entries  []journal.Entry
	day      time.Time // zero while showing today
	selected int
	query    string
	search   bool

	width   int
	height  int
	focused bool
}

// New creates an empty timeline.
func New(renderer *markdown.CachedRenderer, clock journal.Clock, km keys.TimelineKeyMap) Model {
	return Model{
		renderer: renderer,
		clock:    clock,
		keys:     km,
		viewport: viewport.New(0, 0),
	}
}

// SetEntries shows entries as the day view. The selection stays on the same
// entry when it is still present, otherwise it moves to the newest one.
func (m *Model) SetEntries(entries []journal.Entry) {
	prev, hadPrev := m.Selected()
	wasSearch := m.search
	m.entries = entries
	m.search = false
	m.query = ""
	m.selected = len(entries) - 1
	if hadPrev && !wasSearch {
		for i, e := range entries {
			if e.Path == prev.Path && e.Line == prev.Line {
				m.selected = i
				break
			}
		}
	}
	m.Refresh()
}

// SetDay sets the day the entries belong to. The zero time means today.
func (m *Model) SetDay(day time.Time) {
	m.day = day
	m.Refresh()
}

// SetSearchResults shows the entries matching query. The first result is
// selected.
func (m *Model) SetSearchResults(query string, entries []journal.Entry) {
	m.entries = entries
	m.search = true
	m.query = query
	m.selected = 0
	m.viewport.GotoTop()
	m.Refresh()
}

// Searching returns the query when search results are shown.
func (m Model) Searching() (string, bool) {
	return m.query, m.search
}

// Entries returns the shown entries.
func (m Model) Entries() []journal.Entry {
	return m.entries
}

// Selected returns the selected entry.
func (m Model) Selected() (journal.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return journal.Entry{}, false
	}
	return m.entries[m.selected], true
}

// SelectEntry selects the entry starting at line of path. It reports
// whether such an entry is shown.
func (m *Model) SelectEntry(path string, line int) bool {
	for i, e := range m.entries {
		if e.Path == path && e.Line == line {
			m.selected = i
			m.Refresh()
			return true
		}
	}
	return false
}

// Update moves the selection while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.entries) == 0 {
		return m, nil
	}
	prev := m.selected
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.selected = min(m.selected+1, len(m.entries)-1)
	case key.Matches(keyMsg, m.keys.Top):
		m.selected = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.selected = len(m.entries) - 1
	}
	if m.selected != prev {
		m.Refresh()
	}
	return m, nil
}

// SetSize sets the outer size including the border.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	if err := m.renderer.Resize(max(width-2-len(gutterPlain), 1)); err != nil {
		log.ErrorErr(log.CatUI, "resize renderer", err)
	}
	m.Refresh()
}

// Focus gives the timeline keyboard focus.
func (m *Model) Focus() {
	m.focused = true
	m.Refresh()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.Refresh()
}

// Focused reports whether the timeline has focus.
func (m Model) Focused() bool {
	return m.focused
}

// Refresh re-renders the entries, updating relative ages, and scrolls the
// selection into view.
func (m *Model) Refresh() {
	m.viewport.Width = max(m.width-2, 1)
	m.viewport.Height = max(m.height-2, 1)

	content, from, to := m.render()
	m.viewport.SetContent(content)

	switch {
	case from < m.viewport.YOffset:
		m.viewport.SetYOffset(from)
	case to >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(min(to-m.viewport.Height+1, from))
	}
}

// render lays out every entry and returns the first and last content line
// of the selected one.
func (m Model) render() (string, int, int) {
	if len(m.entries) == 0 {
		return emptyStyle.Render(m.emptyText()), 0, 0
	}

	ctx := context.Background()
	now := m.clock.Now()
	var lines []string
	var from, to int
	for i, e := range m.entries {
		if i > 0 {
			lines = append(lines, "")
		}
		gutter := gutterPlain
		if i == m.selected {
			gutter = gutterStyle.Render(gutterSelected)
			from = len(lines)
		}

		lines = append(lines, gutter+m.header(e, now))
		body, err := m.renderer.Render(ctx, e.Body)
		if err != nil {
			log.ErrorErr(log.CatUI, "render entry", err, "path", e.Path, "line", e.Line)
			body = e.Body
		}
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, gutter+l)
		}
		if i == m.selected {
			to = len(lines) - 1
		}
	}
	return strings.Join(lines, "\n"), from, to
}

func (m Model) header(e journal.Entry, now time.Time) string {
	stamp := e.Time
	if stamp == "" {
		stamp = "--:--:--"
	}
	if m.search && !e.Date.IsZero() {
		stamp = e.Date.Format("2006-01-02") + " " + stamp
	}
	out := styles.EntryTimeStyle.Render(stamp)
	if ts, ok := e.Timestamp(); ok {
		out += ageStyle.Render(" · " + journal.FormatAge(ts, now))
	}
	return out
}

func (m Model) emptyText() string {
	if m.search {
		return fmt.Sprintf("No entries match %q.", m.query)
	}
	if !m.day.IsZero() {
		return fmt.Sprintf("No entries on %s.", m.day.Format("2006-01-02"))
	}
	return fmt.Sprintf("No entries yet. Press %s to write.", m.keys.Compose.Help().Key)
}

// Title describes what is shown, e.g. "Timeline · 2026-03-04 · 3 entries".
func (m Model) Title() string {
	if m.search {
		return fmt.Sprintf("Search · %q · %s", m.query, plural(len(m.entries), "result"))
	}
	day := m.day
	if day.IsZero() {
		day = m.clock.Now()
	}
	return fmt.Sprintf("Timeline · %s · %s", day.Format("2006-01-02"), plural(len(m.entries), "entry"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		noun = strings.TrimSuffix(noun, "y") + "ie"
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// position returns "2/5" for the selection, or "" when empty.
func (m Model) position() string {
	if len(m.entries) == 0 {
		return ""
	}
	pos := fmt.Sprintf("%d/%d", m.selected+1, len(m.entries))
	if !m.viewport.AtBottom() {
		pos += fmt.Sprintf(" ↓%d%%", int(m.viewport.ScrollPercent()*100))
	}
	return ageStyle.Render(pos)
}

// View renders the list inside a pane.
func (m Model) View() string {
	return styles.Pane{
		Title:   m.Title(),
		Footer:  m.position(),
		Width:   m.width,
		Height:  m.height,
		Focused: m.focused,
	}.Render(m.viewport.View())
}

package timeline

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/daybook/internal/cachemanager"
	"github.com/zjrosen/daybook/internal/config"
	"github.com/zjrosen/daybook/internal/journal"
	"github.com/zjrosen/daybook/internal/keys"
	"github.com/zjrosen/daybook/internal/ui/shared/markdown"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var day = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func newTestTimeline(t *testing.T, width, height int) Model {
	t.Helper()
	r, err := markdown.New(width, "notty")
	require.NoError(t, err)
	cache := cachemanager.NewInMemoryCacheManager[markdown.CacheKey, string]("test", time.Minute, time.Minute)
	km := keys.NewTimelineKeyMap(config.Defaults().Keybindings.Timeline)

	m := New(markdown.NewCached(r, cache, time.Minute), fixedClock{day.Add(12 * time.Hour)}, km)
	m.SetSize(width, height)
	m.Focus()
	return m
}

func entry(line int, stamp, body string) journal.Entry {
	return journal.Entry{Date: day, Time: stamp, Body: body, Path: "2026-03-04.md", Line: line}
}

func threeEntries() []journal.Entry {
	return []journal.Entry{
		entry(0, "08:00:00", "coffee"),
		entry(3, "11:30:00", "standup notes"),
		entry(6, "11:59:30", "lunch plans"),
	}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func selectedTime(t *testing.T, m Model) string {
	t.Helper()
	e, ok := m.Selected()
	require.True(t, ok)
	return e.Time
}

func TestSetEntries_SelectsNewest(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())
	require.Equal(t, "11:59:30", selectedTime(t, m))
}

func TestSetEntries_KeepsSelection(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())
	m, _ = m.Update(runeMsg('k'))
	require.Equal(t, "11:30:00", selectedTime(t, m))

	m.SetEntries(append(threeEntries(), entry(9, "12:00:00", "new")))
	require.Equal(t, "11:30:00", selectedTime(t, m), "reload keeps the selected entry")

	m.SetEntries(threeEntries()[:1])
	require.Equal(t, "08:00:00", selectedTime(t, m), "a vanished selection falls back to the newest")
}

func TestUpdate_Navigation(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())

	m, _ = m.Update(runeMsg('g'))
	require.Equal(t, "08:00:00", selectedTime(t, m))
	m, _ = m.Update(runeMsg('k'))
	require.Equal(t, "08:00:00", selectedTime(t, m), "stops at the first entry")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "11:30:00", selectedTime(t, m))
	m, _ = m.Update(runeMsg('G'))
	require.Equal(t, "11:59:30", selectedTime(t, m))
	m, _ = m.Update(runeMsg('j'))
	require.Equal(t, "11:59:30", selectedTime(t, m), "stops at the last entry")
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())
	m.Blur()
	m, _ = m.Update(runeMsg('g'))
	require.Equal(t, "11:59:30", selectedTime(t, m))
}

func TestSelected_Empty(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	_, ok := m.Selected()
	require.False(t, ok)

	m, cmd := m.Update(runeMsg('j'))
	require.Nil(t, cmd)
	require.Contains(t, ansi.Strip(m.View()), "No entries yet. Press i to write.")
}

func TestView_ShowsEntries(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())
	view := ansi.Strip(m.View())

	require.Contains(t, view, "Timeline · 2026-03-04 · 3 entries")
	require.Contains(t, view, "08:00:00 · 4h ago")
	require.Contains(t, view, "11:59:30 · now")
	require.Contains(t, view, "standup notes")
	require.Contains(t, view, "3/3")

	for i, line := range strings.Split(m.View(), "\n") {
		require.Equal(t, 60, ansi.StringWidth(line), "line %d", i)
	}
}

func TestView_SelectionGutter(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())

	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		if strings.Contains(line, "11:59:30") {
			require.Contains(t, line, "▌ 11:59:30")
		}
		if strings.Contains(line, "08:00:00") {
			require.NotContains(t, line, "▌")
		}
	}
}

func TestRefresh_ScrollsSelectionIntoView(t *testing.T) {
	var entries []journal.Entry
	for i := range 12 {
		entries = append(entries, entry(i*3, time.Date(2026, 3, 4, 8, i, 0, 0, time.UTC).Format("15:04:05"), "note"))
	}
	m := newTestTimeline(t, 50, 8)
	m.SetEntries(entries)
	require.Contains(t, ansi.Strip(m.View()), "08:11:00", "newest entry is visible")

	m, _ = m.Update(runeMsg('g'))
	view := ansi.Strip(m.View())
	require.Contains(t, view, "08:00:00")
	require.NotContains(t, view, "08:11:00")
	require.Contains(t, view, "1/12 ↓")
}

func TestSearchResults(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())

	m.SetSearchResults("notes", threeEntries()[1:2])
	query, searching := m.Searching()
	require.True(t, searching)
	require.Equal(t, "notes", query)
	require.Equal(t, "11:30:00", selectedTime(t, m))

	view := ansi.Strip(m.View())
	require.Contains(t, view, `Search · "notes" · 1 result`)
	require.Contains(t, view, "2026-03-04 11:30:00")

	m.SetSearchResults("zzz", nil)
	require.Contains(t, ansi.Strip(m.View()), `No entries match "zzz".`)

	m.SetEntries(threeEntries())
	_, searching = m.Searching()
	require.False(t, searching)
	require.Equal(t, "11:59:30", selectedTime(t, m), "leaving search selects the newest entry")
}

func TestHeader_UnstampedEntry(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries([]journal.Entry{{Body: "preamble", Path: "2026-03-04.md"}})
	require.Contains(t, ansi.Strip(m.View()), "--:--:--")
}

func TestSelectEntry(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetEntries(threeEntries())

	require.True(t, m.SelectEntry("2026-03-04.md", 0))
	require.Equal(t, "08:00:00", selectedTime(t, m))

	require.False(t, m.SelectEntry("2026-03-04.md", 1))
	require.Equal(t, "08:00:00", selectedTime(t, m))
}

func TestSetDay(t *testing.T) {
	m := newTestTimeline(t, 60, 20)
	m.SetDay(day.AddDate(0, 0, -2))
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Timeline · 2026-03-02 · 0 entries")
	require.Contains(t, view, "No entries on 2026-03-02.")

	m.SetDay(time.Time{})
	require.Contains(t, ansi.Strip(m.View()), "Timeline · 2026-03-04")
}

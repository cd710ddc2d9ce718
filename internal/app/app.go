// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/cachemanager"
	"github.com/zjrosen/daybook/internal/config"
	"github.com/zjrosen/daybook/internal/journal"
	"github.com/zjrosen/daybook/internal/keys"
	"github.com/zjrosen/daybook/internal/log"
	"github.com/zjrosen/daybook/internal/pubsub"
	"github.com/zjrosen/daybook/internal/ui/composer"
	"github.com/zjrosen/daybook/internal/ui/confirm"
	"github.com/zjrosen/daybook/internal/ui/notice"
	"github.com/zjrosen/daybook/internal/ui/shared/markdown"
	"github.com/zjrosen/daybook/internal/ui/styles"
	"github.com/zjrosen/daybook/internal/ui/timeline"
	"github.com/zjrosen/daybook/internal/watcher"
)

const (
	renderTTL      = 30 * time.Minute
	ageRefresh     = time.Minute
	minComposer    = 5
	maxComposer    = 14
	minTimeline    = 3
	columnPadding  = 4
	statusPadding  = 2 // horizontal padding of styles.StatusBarStyle
	searchMaxChars = 200
)

type focus int

const (
	focusCompose focus = iota
	focusBrowse
	focusSearch
)

func (f focus) String() string {
	switch f {
	case focusCompose:
		return "compose"
	case focusBrowse:
		return "browse"
	case focusSearch:
		return "search"
	default:
		return "unknown"
	}
}

type entriesLoadedMsg struct {
	entries []journal.Entry
	err     error
}

type searchResultsMsg struct {
	query   string
	entries []journal.Entry
	err     error
}

type savedMsg struct {
	entry  journal.Entry
	edited bool
	err    error
}

type deletedMsg struct {
	entry journal.Entry
	err   error
}

type tasksToggledMsg struct {
	entry   journal.Entry
	changed int
	err     error
}

// dayMsg carries the result of a previous or next day lookup.
type dayMsg struct {
	day  time.Time
	ok   bool
	next bool
	err  error
}

type tickMsg time.Time

// deleteRequest and discardRequest are the payloads of the confirm prompt.
type deleteRequest struct{ entry journal.Entry }

type discardRequest struct{}

// Options configures the application.
type Options struct {
	Config     config.Config
	ConfigPath string // where toggled settings are saved, "" to not save
	Store      *journal.Store
	Cache      cachemanager.CacheManager[markdown.CacheKey, string]
	Clock      journal.Clock

	// Watch reloads the timeline when journal files change on disk.
	Watch bool

	// NoticeTimeout overrides notice.DefaultTimeout.
	NoticeTimeout time.Duration
	// AgeRefresh overrides how often relative ages are redrawn.
	AgeRefresh time.Duration
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	store      *journal.Store
	clock      journal.Clock

	timelineKeys keys.TimelineKeyMap
	composerKeys keys.ComposerKeyMap

	timeline timeline.Model
	composer composer.Model
	search   textinput.Model
	help     help.Model
	notice   notice.Model

	prompt    confirm.Model
	prompting bool

	focus      focus
	day        time.Time // zero while showing today
	ageRefresh time.Duration
	selectNext *journal.Entry

	width  int
	height int

	// File watcher for auto-refresh (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

// New creates the application model. It starts the journal watcher when
// opts.Watch is set; a watcher that fails to start only disables
// auto-refresh.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	clock := opts.Clock
	if clock == nil {
		clock = journal.RealClock{}
	}

	r, err := markdown.New(cfg.Editor.ColumnWidth, cfg.UI.MarkdownStyle)
	if err != nil {
		return Model{}, fmt.Errorf("creating markdown renderer: %w", err)
	}
	renderer := markdown.NewCached(r, opts.Cache, renderTTL)

	tk := keys.NewTimelineKeyMap(cfg.Keybindings.Timeline)
	ck := keys.NewComposerKeyMap(cfg.Keybindings.Composer)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = `keywords, or "an exact phrase"`
	search.CharLimit = searchMaxChars

	n := notice.New()
	if opts.NoticeTimeout > 0 {
		n = n.WithTimeout(opts.NoticeTimeout)
	}
	refresh := ageRefresh
	if opts.AgeRefresh > 0 {
		refresh = opts.AgeRefresh
	}

	m := Model{
		cfg:          cfg,
		configPath:   opts.ConfigPath,
		store:        opts.Store,
		clock:        clock,
		timelineKeys: tk,
		composerKeys: ck,
		timeline:     timeline.New(renderer, clock, tk),
		composer: composer.New(composer.Config{
			Editor:      cfg.Editor,
			LineNumbers: cfg.UI.LineNumbers,
			Keys:        ck,
		}),
		search:     search,
		help:       help.New(),
		notice:     n,
		ageRefresh: refresh,
	}
	m.composer.Focus()

	if opts.Watch {
		m.startWatcher()
	}
	return m, nil
}

func (m *Model) startWatcher() {
	w, err := watcher.New(watcher.DefaultConfig(m.store.Dir()))
	if err != nil {
		log.Warn(log.CatWatcher, "auto-refresh disabled", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "auto-refresh disabled", "error", err)
		_ = w.Stop()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.watcherHandle = w
	m.watcherCancel = cancel
	m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
}

// Init implements tea.Model. It loads today's entries and starts the
// watcher listener if auto-refresh is enabled.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDay(), m.tick()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.ageRefresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Global.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case composer.SubmitMsg:
		m.setFocus(focusBrowse)
		return m, m.save(msg)

	case composer.CancelMsg:
		if msg.Dirty {
			return m.ask(confirm.Prompt{
				Title:   "Discard changes?",
				Message: "The text in the composer has not been saved.",
				Danger:  true,
				Payload: discardRequest{},
			}), nil
		}
		m.composer.Reset()
		m.setFocus(focusBrowse)
		return m, nil

	case confirm.ResultMsg:
		return m.handleConfirm(msg)

	case savedMsg:
		if msg.err != nil {
			return m.showError("Could not save entry", msg.err)
		}
		m.selectNext = &msg.entry
		text := "Entry saved"
		if msg.edited {
			text = "Entry updated"
		}
		var cmd tea.Cmd
		m.notice, cmd = m.notice.Show(text, notice.KindSuccess)
		return m, tea.Batch(cmd, m.reload())

	case deletedMsg:
		if msg.err != nil {
			return m.showError("Could not delete entry", msg.err)
		}
		log.Info(log.CatUI, "entry deleted", "path", msg.entry.Path, "time", msg.entry.Time)
		var cmd tea.Cmd
		m.notice, cmd = m.notice.Show("Entry deleted", notice.KindSuccess)
		return m, tea.Batch(cmd, m.reload())

	case tasksToggledMsg:
		if msg.err != nil {
			return m.showError("Could not toggle tasks", msg.err)
		}
		if msg.changed == 0 {
			var cmd tea.Cmd
			m.notice, cmd = m.notice.Show("No tasks in entry", notice.KindInfo)
			return m, cmd
		}
		text := "Tasks completed"
		if open, _ := journal.TaskCounts(msg.entry.Body); open > 0 {
			text = "Tasks reopened"
		}
		m.selectNext = &msg.entry
		var cmd tea.Cmd
		m.notice, cmd = m.notice.Show(text, notice.KindSuccess)
		return m, tea.Batch(cmd, m.reload())

	case dayMsg:
		return m.handleDay(msg)

	case entriesLoadedMsg:
		if msg.err != nil {
			return m.showError("Could not read journal", msg.err)
		}
		m.timeline.SetEntries(msg.entries)
		m.applySelectNext()
		return m, nil

	case searchResultsMsg:
		if msg.err != nil {
			return m.showError("Search failed", msg.err)
		}
		m.timeline.SetSearchResults(msg.query, msg.entries)
		m.applySelectNext()
		return m, nil

	case watcher.Event:
		log.Debug(log.CatWatcher, "journal changed", "files", msg.Payload.Files, "removed", msg.Payload.Removed)
		return m, tea.Batch(m.reload(), m.watcherListener.Listen())

	case tickMsg:
		m.timeline.Refresh()
		return m, m.tick()

	case notice.DismissMsg:
		m.notice = m.notice.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case focusCompose:
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	tk := m.timelineKeys
	switch {
	case key.Matches(msg, tk.Quit):
		return m, tea.Quit

	case key.Matches(msg, tk.Compose):
		m.composer.Reset()
		m.setFocus(focusCompose)
		return m, nil

	case key.Matches(msg, tk.Edit):
		e, ok := m.timeline.Selected()
		if !ok {
			return m, nil
		}
		m.composer.Edit(e)
		m.setFocus(focusCompose)
		log.Debug(log.CatUI, "editing entry", "path", e.Path, "line", e.Line)
		return m, nil

	case key.Matches(msg, tk.Delete):
		e, ok := m.timeline.Selected()
		if !ok {
			return m, nil
		}
		return m.ask(confirm.Prompt{
			Title:   "Delete entry?",
			Message: fmt.Sprintf("The %s entry will be removed from %s.", e.Time, e.Date.Format("2006-01-02")),
			Danger:  true,
			Payload: deleteRequest{entry: e},
		}), nil

	case key.Matches(msg, tk.Search):
		m.search.SetValue("")
		m.setFocus(focusSearch)
		return m, textinput.Blink

	case key.Matches(msg, tk.ToggleTodo):
		e, ok := m.timeline.Selected()
		if !ok {
			return m, nil
		}
		return m, m.toggleTasks(e)

	case key.Matches(msg, tk.PrevDay):
		return m, m.findDay(false)

	case key.Matches(msg, tk.NextDay):
		return m, m.findDay(true)

	case key.Matches(msg, tk.ToggleVim):
		return m.toggleVim()

	case key.Matches(msg, keys.Global.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, keys.Global.Back):
		if _, searching := m.timeline.Searching(); searching || !m.day.IsZero() {
			m.showDay(time.Time{})
			return m, m.loadDay()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.timeline, cmd = m.timeline.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		query := m.search.Value()
		m.setFocus(focusBrowse)
		if query == "" {
			return m, m.loadDay()
		}
		return m, m.runSearch(query)
	case tea.KeyEscape:
		m.setFocus(focusBrowse)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleConfirm(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	m.prompting = false
	switch req := msg.Payload.(type) {
	case deleteRequest:
		if !msg.Confirmed {
			return m, nil
		}
		return m, m.remove(req.entry)
	case discardRequest:
		if !msg.Confirmed {
			return m, nil
		}
		log.Debug(log.CatComposer, "discarded draft")
		m.composer.Reset()
		m.setFocus(focusBrowse)
	}
	return m, nil
}

func (m Model) ask(p confirm.Prompt) Model {
	m.prompt = confirm.New(p)
	m.prompt.SetSize(m.width, m.height)
	m.prompting = true
	return m
}

// toggleVim flips modal editing and saves the choice to the config file.
func (m Model) toggleVim() (tea.Model, tea.Cmd) {
	enabled := !m.cfg.Editor.VimMode
	m.cfg.Editor.VimMode = enabled
	m.composer.SetVimEnabled(enabled)

	text := "Vim mode off"
	if enabled {
		text = "Vim mode on"
	}
	if m.configPath != "" {
		if err := config.SaveVimMode(m.configPath, enabled); err != nil {
			return m.showError("Could not save vim mode", err)
		}
	}
	log.Info(log.CatConfig, "vim mode toggled", "enabled", enabled)

	var cmd tea.Cmd
	m.notice, cmd = m.notice.Show(text, notice.KindInfo)
	return m, cmd
}

func (m Model) showError(what string, err error) (tea.Model, tea.Cmd) {
	log.ErrorErr(log.CatUI, what, err)
	text := what + ": " + err.Error()
	if errors.Is(err, journal.ErrEntryChanged) {
		text = "Entry changed on disk, reloaded"
	}
	var cmd tea.Cmd
	m.notice, cmd = m.notice.Show(text, notice.KindError)
	if errors.Is(err, journal.ErrEntryChanged) {
		cmd = tea.Batch(cmd, m.reload())
	}
	return m, cmd
}

func (m *Model) applySelectNext() {
	if m.selectNext == nil {
		return
	}
	m.timeline.SelectEntry(m.selectNext.Path, m.selectNext.Line)
	m.selectNext = nil
}

func (m *Model) setFocus(f focus) {
	if m.focus == f {
		return
	}
	log.Debug(log.CatUI, "focus", "from", m.focus, "to", f)
	m.focus = f

	m.composer.Blur()
	m.timeline.Blur()
	m.search.Blur()
	switch f {
	case focusCompose:
		m.composer.Focus()
	case focusBrowse:
		m.timeline.Focus()
	case focusSearch:
		m.timeline.Focus()
		m.search.Focus()
	}
	m.layout()
}

// reload refreshes whatever the timeline shows.
func (m Model) reload() tea.Cmd {
	if query, searching := m.timeline.Searching(); searching {
		return m.runSearch(query)
	}
	return m.loadDay()
}

// loadDay reads the shown day. Today follows the clock across midnight.
func (m Model) loadDay() tea.Cmd {
	store, day := m.store, m.day
	return func() tea.Msg {
		if day.IsZero() {
			entries, err := store.Today()
			return entriesLoadedMsg{entries: entries, err: err}
		}
		entries, err := store.ForDate(day)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// findDay looks up the nearest earlier or later day that has entries.
func (m Model) findDay(next bool) tea.Cmd {
	store := m.store
	from := m.day
	if from.IsZero() {
		from = m.clock.Now()
	}
	return func() tea.Msg {
		var (
			day time.Time
			ok  bool
			err error
		)
		if next {
			day, ok, err = store.NextDay(from)
		} else {
			day, ok, err = store.PrevDay(from)
		}
		return dayMsg{day: day, ok: ok, next: next, err: err}
	}
}

func (m Model) handleDay(msg dayMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showError("Could not list journal days", msg.err)
	}
	if !msg.ok {
		if msg.next {
			return m, nil
		}
		var cmd tea.Cmd
		m.notice, cmd = m.notice.Show("No earlier entries", notice.KindInfo)
		return m, cmd
	}
	day := msg.day
	if sameDay(day, m.clock.Now()) {
		day = time.Time{}
	}
	m.showDay(day)
	log.Debug(log.CatUI, "showing day", "day", msg.day.Format("2006-01-02"))
	return m, m.loadDay()
}

func (m *Model) showDay(day time.Time) {
	m.day = day
	m.timeline.SetDay(day)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// runSearch matches a double-quoted query as an exact phrase. Otherwise each
// word is a keyword and entries matching more of them rank first.
func (m Model) runSearch(query string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		var (
			entries []journal.Entry
			err     error
		)
		if phrase, ok := quoted(query); ok {
			entries, err = store.Search(phrase)
		} else {
			entries, err = store.SearchKeywords(strings.Fields(query))
		}
		return searchResultsMsg{query: query, entries: entries, err: err}
	}
}

func quoted(query string) (string, bool) {
	if len(query) >= 2 && strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`) {
		return query[1 : len(query)-1], true
	}
	return "", false
}

// save appends a new entry to the shown day or rewrites the edited one. An
// edited entry submitted without text is removed.
func (m Model) save(msg composer.SubmitMsg) tea.Cmd {
	if msg.Target != nil && msg.Content == "" {
		return m.remove(*msg.Target)
	}
	store, day := m.store, m.day
	return func() tea.Msg {
		if msg.Target == nil {
			if day.IsZero() {
				e, err := store.Append(msg.Content)
				return savedMsg{entry: e, err: err}
			}
			e, err := store.AppendToDate(day, msg.Content)
			return savedMsg{entry: e, err: err}
		}
		e, err := store.Replace(*msg.Target, msg.Content)
		return savedMsg{entry: e, edited: true, err: err}
	}
}

func (m Model) toggleTasks(e journal.Entry) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		updated, n, err := store.ToggleTasks(e)
		return tasksToggledMsg{entry: updated, changed: n, err: err}
	}
}

func (m Model) remove(e journal.Entry) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return deletedMsg{entry: e, err: store.Delete(e)}
	}
}

// columnWidth is the width of the centered content column.
func (m Model) columnWidth() int {
	return max(min(m.width, m.cfg.Editor.ColumnWidth+columnPadding), 1)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w := m.columnWidth()
	m.help.Width = max(w-statusPadding, 1)
	m.search.Width = max(w-lipgloss.Width(m.search.Prompt)-1, 1)

	reserved := 0
	if m.cfg.UI.ShowStatusBar {
		reserved += lipgloss.Height(m.statusBar())
	}
	if m.focus == focusSearch {
		reserved++
	}
	composerHeight := min(max(m.height/3, minComposer), maxComposer)
	timelineHeight := max(m.height-composerHeight-reserved, minTimeline)

	m.timeline.SetSize(w, timelineHeight)
	m.composer.SetSize(w, composerHeight)
	m.prompt.SetSize(m.width, m.height)
}

func (m Model) statusBar() string {
	var km help.KeyMap = m.timelineKeys
	if m.focus == focusCompose {
		km = m.composerKeys
	}
	vim := "vim off"
	if m.composer.VimEnabled() {
		vim = "vim"
	}
	right := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(vim)
	left := m.help.View(km)
	gap := max(m.columnWidth()-statusPadding-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.timeline.View()}
	if m.focus == focusSearch {
		parts = append(parts, m.search.View())
	}
	parts = append(parts, m.composer.View())
	if m.cfg.UI.ShowStatusBar {
		parts = append(parts, styles.StatusBarStyle.Render(m.statusBar()))
	}
	view := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, parts...))

	view = m.notice.Overlay(view, m.width, m.height)
	if m.prompting {
		view = m.prompt.Overlay(view)
	}
	return view
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}

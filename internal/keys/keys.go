// Package keys contains keybinding definitions.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/daybook/internal/config"
)

// Global bindings that are not configurable.
var Global = struct {
	ForceQuit key.Binding
	Help      key.Binding
	Back      key.Binding
}{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to today"),
	),
}

// Confirm answers a yes/no prompt.
var Confirm = struct {
	Yes key.Binding
	No  key.Binding
}{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
}

// ComposerKeyMap holds the composer actions. Everything else typed into the
// composer goes to the editor.
type ComposerKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Clear  key.Binding
}

// NewComposerKeyMap builds the composer bindings from config.
func NewComposerKeyMap(cfg config.ComposerBindings) ComposerKeyMap {
	return ComposerKeyMap{
		Submit: binding(cfg.Submit, "save entry"),
		Cancel: binding(cfg.Cancel, "leave composer"),
		Clear:  binding(cfg.Clear, "clear"),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k ComposerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Clear}
}

// FullHelp returns keybindings for the full help view.
func (k ComposerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {Global.ForceQuit}}
}

// TimelineKeyMap holds the bindings used while browsing entries.
type TimelineKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Compose    key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Search     key.Binding
	ToggleVim  key.Binding
	ToggleTodo key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	Quit       key.Binding
}

// NewTimelineKeyMap builds the timeline bindings from config.
func NewTimelineKeyMap(cfg config.TimelineBindings) TimelineKeyMap {
	return TimelineKeyMap{
		Up:         binding(cfg.Up, "previous entry"),
		Down:       binding(cfg.Down, "next entry"),
		Top:        binding(cfg.Top, "first entry"),
		Bottom:     binding(cfg.Bottom, "last entry"),
		Compose:    binding(cfg.Compose, "write"),
		Edit:       binding(cfg.Edit, "edit entry"),
		Delete:     binding(cfg.Delete, "delete entry"),
		Search:     binding(cfg.Search, "search"),
		ToggleVim:  binding(cfg.ToggleVim, "toggle vim"),
		ToggleTodo: binding(cfg.ToggleTodo, "toggle tasks"),
		PrevDay:    binding(cfg.PrevDay, "previous day"),
		NextDay:    binding(cfg.NextDay, "next day"),
		Quit:       binding(cfg.Quit, "quit"),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k TimelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compose, k.Edit, k.Delete, k.Search, k.Quit, Global.Help}
}

// FullHelp returns keybindings for the full help view.
func (k TimelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.PrevDay, k.NextDay, Global.Back},
		{k.Compose, k.Edit, k.Delete, k.ToggleTodo, k.Search},
		{k.ToggleVim, k.Quit, Global.ForceQuit, Global.Help},
	}
}

// binding creates a binding for keys. The help label joins the keys with
// "/" in their display form. No keys gives a disabled binding.
func binding(keys []string, desc string) key.Binding {
	normalized := make([]string, 0, len(keys))
	display := make([]string, 0, len(keys))
	for _, k := range keys {
		k = TranslateToTerminal(k)
		if k == "" {
			continue
		}
		normalized = append(normalized, k)
		display = append(display, TranslateToDisplay(k))
	}
	if len(normalized) == 0 {
		return key.NewBinding(key.WithDisabled(), key.WithHelp("", desc))
	}
	return key.NewBinding(
		key.WithKeys(normalized...),
		key.WithHelp(strings.Join(display, "/"), desc),
	)
}

// TranslateToTerminal converts a configured key name to the string
// bubbletea reports for it. Modifier names are lowercased; a bare
// character keeps its case so "G" and "g" stay distinct.
func TranslateToTerminal(k string) string {
	k = strings.TrimSpace(k)
	if len([]rune(k)) <= 1 {
		return k
	}
	k = strings.ToLower(k)
	switch k {
	case "ctrl+space":
		return "ctrl+@"
	case "return":
		return "enter"
	case "escape":
		return "esc"
	}
	return k
}

// TranslateToDisplay converts a terminal key name to its help label.
func TranslateToDisplay(k string) string {
	switch k {
	case "ctrl+@":
		return "ctrl+space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}

package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/daybook/internal/config"
)

func TestNewComposerKeyMap_Defaults(t *testing.T) {
	km := NewComposerKeyMap(config.Defaults().Keybindings.Composer)

	require.Equal(t, []string{"ctrl+s"}, km.Submit.Keys())
	require.Equal(t, []string{"esc"}, km.Cancel.Keys())
	require.Equal(t, []string{"ctrl+l"}, km.Clear.Keys())
	require.Equal(t, "save entry", km.Submit.Help().Desc)

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, km.Submit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEscape}, km.Cancel))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, km.Submit))
}

func TestNewComposerKeyMap_Custom(t *testing.T) {
	km := NewComposerKeyMap(config.ComposerBindings{
		Submit: []string{" Alt+Enter ", "ctrl+d"},
		Cancel: []string{"Escape"},
	})

	require.Equal(t, []string{"alt+enter", "ctrl+d"}, km.Submit.Keys())
	require.Equal(t, "alt+enter/ctrl+d", km.Submit.Help().Key)
	require.Equal(t, []string{"esc"}, km.Cancel.Keys())
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, km.Submit))

	require.False(t, km.Clear.Enabled(), "an action without keys is disabled")
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlL}, km.Clear))
}

func TestNewTimelineKeyMap_Defaults(t *testing.T) {
	km := NewTimelineKeyMap(config.Defaults().Keybindings.Timeline)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
		help    string
	}{
		{"up", km.Up, []string{"k", "up"}, "k/↑"},
		{"down", km.Down, []string{"j", "down"}, "j/↓"},
		{"top", km.Top, []string{"g", "home"}, "g/home"},
		{"bottom", km.Bottom, []string{"G", "end"}, "G/end"},
		{"compose", km.Compose, []string{"i"}, "i"},
		{"edit", km.Edit, []string{"e"}, "e"},
		{"delete", km.Delete, []string{"x"}, "x"},
		{"search", km.Search, []string{"/"}, "/"},
		{"toggle vim", km.ToggleVim, []string{"v"}, "v"},
		{"toggle todo", km.ToggleTodo, []string{"t"}, "t"},
		{"previous day", km.PrevDay, []string{"h", "left"}, "h/left"},
		{"next day", km.NextDay, []string{"l", "right"}, "l/right"},
		{"quit", km.Quit, []string{"q"}, "q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.keys, tt.binding.Keys())
			require.Equal(t, tt.help, tt.binding.Help().Key)
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, km.Bottom))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, km.Top))
}

func TestHelp(t *testing.T) {
	tl := NewTimelineKeyMap(config.Defaults().Keybindings.Timeline)
	require.Len(t, tl.ShortHelp(), 6)
	require.Len(t, tl.FullHelp(), 4)

	c := NewComposerKeyMap(config.Defaults().Keybindings.Composer)
	require.Len(t, c.ShortHelp(), 3)
	require.Contains(t, c.FullHelp()[1], Global.ForceQuit)
}

func TestTranslateToTerminal(t *testing.T) {
	require.Equal(t, "ctrl+@", TranslateToTerminal("ctrl+space"))
	require.Equal(t, "ctrl+@", TranslateToTerminal("Ctrl+Space"))
	require.Equal(t, "enter", TranslateToTerminal("return"))
	require.Equal(t, "esc", TranslateToTerminal(" escape "))
	require.Equal(t, "G", TranslateToTerminal("G"), "single characters keep their case")
	require.Equal(t, "ctrl+s", TranslateToTerminal("ctrl+s"))
	require.Equal(t, "", TranslateToTerminal("  "))
}

func TestTranslateToDisplay(t *testing.T) {
	require.Equal(t, "ctrl+space", TranslateToDisplay("ctrl+@"))
	require.Equal(t, "↑", TranslateToDisplay("up"))
	require.Equal(t, "ctrl+s", TranslateToDisplay("ctrl+s"))
}

func TestGlobalAndConfirm(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, Global.ForceQuit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEscape}, Global.Back))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, Confirm.Yes))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEscape}, Confirm.No))
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML reads yaml through viper the same way the CLI does.
func loadConfigFromYAML(t *testing.T, yaml string) (Config, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	return Load(v)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.Editor.VimMode)
	require.Equal(t, ModeNormal, cfg.Editor.DefaultMode)
	require.Equal(t, 88, cfg.Editor.ColumnWidth)
	require.True(t, cfg.UI.LineNumbers)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, []string{"ctrl+s"}, cfg.Keybindings.Composer.Submit)
	require.Equal(t, []string{"esc"}, cfg.Keybindings.Composer.Cancel)
	require.Equal(t, []string{"ctrl+l"}, cfg.Keybindings.Composer.Clear)
	require.True(t, strings.HasSuffix(cfg.Data.LogPath, filepath.Join(".daybook", "logs")))
	require.NoError(t, cfg.Validate())
}

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EditorConfig)
		wantErr string
	}{
		{"defaults", func(*EditorConfig) {}, ""},
		{"insert mode", func(e *EditorConfig) { e.DefaultMode = ModeInsert }, ""},
		{"unknown mode", func(e *EditorConfig) { e.DefaultMode = "visual" }, "editor.default_mode"},
		{"narrow", func(e *EditorConfig) { e.ColumnWidth = 5 }, "editor.column_width"},
		{"wide", func(e *EditorConfig) { e.ColumnWidth = 1000 }, "editor.column_width"},
		{"negative undo", func(e *EditorConfig) { e.UndoLimit = -1 }, "editor.undo_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Defaults().Editor
			tt.mutate(&e)
			err := ValidateEditor(e)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.Data.LogPath = " "
	cfg.UI.MarkdownStyle = ""
	cfg.Editor.ColumnWidth = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), "data.log_path")
	require.Contains(t, err.Error(), "ui.markdown_style")
	require.Contains(t, err.Error(), "editor.column_width")
}

func TestValidateKeybindings(t *testing.T) {
	k := Defaults().Keybindings
	require.NoError(t, ValidateKeybindings(k))

	k.Composer.Clear = nil
	err := ValidateKeybindings(k)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), "composer.clear")

	k = Defaults().Keybindings
	k.Composer.Clear = []string{"ctrl+s"}
	err = ValidateKeybindings(k)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), `key "ctrl+s" bound to both`)

	k = Defaults().Keybindings
	k.Timeline.Quit = nil
	require.ErrorContains(t, ValidateKeybindings(k), "timeline.quit")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, "journal"), ExpandHome("~/journal"))
	require.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestLoad_DefaultTemplate(t *testing.T) {
	cfg, err := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.NoError(t, err)

	defaults := Defaults()
	require.Equal(t, defaults.Editor, cfg.Editor)
	require.Equal(t, defaults.UI, cfg.UI)
	require.Equal(t, defaults.Keybindings, cfg.Keybindings)
	require.Equal(t, defaults.Theme, cfg.Theme)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".daybook", "logs"), cfg.Data.LogPath)
}

func TestLoad_PartialFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfigFromYAML(t, `
editor:
  vim_mode: false
keybindings:
  composer:
    submit: [ctrl+d, alt+enter]
`)
	require.NoError(t, err)
	require.False(t, cfg.Editor.VimMode)
	require.Equal(t, 88, cfg.Editor.ColumnWidth)
	require.Equal(t, []string{"ctrl+d", "alt+enter"}, cfg.Keybindings.Composer.Submit)
	require.Equal(t, []string{"esc"}, cfg.Keybindings.Composer.Cancel)
	require.Equal(t, []string{"t"}, cfg.Keybindings.Timeline.ToggleTodo)
	require.Equal(t, []string{"h", "left"}, cfg.Keybindings.Timeline.PrevDay)
	require.Equal(t, []string{"l", "right"}, cfg.Keybindings.Timeline.NextDay)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := loadConfigFromYAML(t, "editor:\n  column_width: 3\n")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

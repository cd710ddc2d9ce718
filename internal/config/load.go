package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/zjrosen/daybook/internal/log"
)

// SetDefaults registers every default value with v so missing keys in the
// file fall back to Defaults.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("data.log_path", d.Data.LogPath)

	v.SetDefault("editor.vim_mode", d.Editor.VimMode)
	v.SetDefault("editor.default_mode", d.Editor.DefaultMode)
	v.SetDefault("editor.column_width", d.Editor.ColumnWidth)
	v.SetDefault("editor.undo_limit", d.Editor.UndoLimit)

	v.SetDefault("ui.line_numbers", d.UI.LineNumbers)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)

	v.SetDefault("theme.accent", d.Theme.Accent)
	v.SetDefault("theme.muted", d.Theme.Muted)
	v.SetDefault("theme.error", d.Theme.Error)

	c := d.Keybindings.Composer
	v.SetDefault("keybindings.composer.submit", c.Submit)
	v.SetDefault("keybindings.composer.cancel", c.Cancel)
	v.SetDefault("keybindings.composer.clear", c.Clear)

	tl := d.Keybindings.Timeline
	v.SetDefault("keybindings.timeline.up", tl.Up)
	v.SetDefault("keybindings.timeline.down", tl.Down)
	v.SetDefault("keybindings.timeline.top", tl.Top)
	v.SetDefault("keybindings.timeline.bottom", tl.Bottom)
	v.SetDefault("keybindings.timeline.compose", tl.Compose)
	v.SetDefault("keybindings.timeline.edit", tl.Edit)
	v.SetDefault("keybindings.timeline.delete", tl.Delete)
	v.SetDefault("keybindings.timeline.search", tl.Search)
	v.SetDefault("keybindings.timeline.toggle_vim", tl.ToggleVim)
	v.SetDefault("keybindings.timeline.toggle_todo", tl.ToggleTodo)
	v.SetDefault("keybindings.timeline.prev_day", tl.PrevDay)
	v.SetDefault("keybindings.timeline.next_day", tl.NextDay)
	v.SetDefault("keybindings.timeline.quit", tl.Quit)
}

// Load unmarshals v into a Config, expands "~/" in the journal path and
// validates the result.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Data.LogPath = ExpandHome(cfg.Data.LogPath)

	if err := cfg.Validate(); err != nil {
		log.ErrorErr(log.CatConfig, "Invalid config", err, "file", v.ConfigFileUsed())
		return Config{}, err
	}
	log.Debug(log.CatConfig, "Loaded config", "file", v.ConfigFileUsed(), "log_path", cfg.Data.LogPath, "vim_mode", cfg.Editor.VimMode)
	return cfg, nil
}

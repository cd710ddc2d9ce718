// Package config provides configuration types, defaults, and persistence for daybook.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zjrosen/daybook/internal/log"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration options for daybook.
type Config struct {
	Data        DataConfig        `mapstructure:"data"`
	Editor      EditorConfig      `mapstructure:"editor"`
	UI          UIConfig          `mapstructure:"ui"`
	Theme       ThemeConfig       `mapstructure:"theme"`
	Keybindings KeybindingsConfig `mapstructure:"keybindings"`
}

// DataConfig locates the journal.
type DataConfig struct {
	LogPath string `mapstructure:"log_path"` // directory holding YYYY-MM-DD.md files
}

// EditorConfig configures the composer's editing engine.
type EditorConfig struct {
	VimMode     bool   `mapstructure:"vim_mode"`     // modal editing in the composer
	DefaultMode string `mapstructure:"default_mode"` // "normal" or "insert"
	ColumnWidth int    `mapstructure:"column_width"` // composer and timeline wrap width
	UndoLimit   int    `mapstructure:"undo_limit"`   // 0 keeps the engine default
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	LineNumbers   bool   `mapstructure:"line_numbers"`
	MarkdownStyle string `mapstructure:"markdown_style"` // glamour style name or JSON path
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
}

// ThemeConfig overrides individual colours. Empty values keep the defaults.
type ThemeConfig struct {
	Accent string `mapstructure:"accent"`
	Muted  string `mapstructure:"muted"`
	Error  string `mapstructure:"error"`
}

// KeybindingsConfig groups key lists by where they apply.
type KeybindingsConfig struct {
	Composer ComposerBindings `mapstructure:"composer"`
	Timeline TimelineBindings `mapstructure:"timeline"`
}

// ComposerBindings are active while the composer has focus.
type ComposerBindings struct {
	Submit []string `mapstructure:"submit"`
	Cancel []string `mapstructure:"cancel"`
	Clear  []string `mapstructure:"clear"`
}

// TimelineBindings are active while browsing entries.
type TimelineBindings struct {
	Up         []string `mapstructure:"up"`
	Down       []string `mapstructure:"down"`
	Top        []string `mapstructure:"top"`
	Bottom     []string `mapstructure:"bottom"`
	Compose    []string `mapstructure:"compose"`
	Edit       []string `mapstructure:"edit"`
	Delete     []string `mapstructure:"delete"`
	Search     []string `mapstructure:"search"`
	ToggleVim  []string `mapstructure:"toggle_vim"`
	ToggleTodo []string `mapstructure:"toggle_todo"`
	PrevDay    []string `mapstructure:"prev_day"`
	NextDay    []string `mapstructure:"next_day"`
	Quit       []string `mapstructure:"quit"`
}

const (
	ModeNormal = "normal"
	ModeInsert = "insert"

	minColumnWidth = 20
	maxColumnWidth = 400
)

// DefaultLogPath returns ~/.daybook/logs, or ./.daybook/logs when the home
// directory is unknown.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".daybook", "logs")
	}
	return filepath.Join(home, ".daybook", "logs")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Data: DataConfig{
			LogPath: DefaultLogPath(),
		},
		Editor: EditorConfig{
			VimMode:     true,
			DefaultMode: ModeNormal,
			ColumnWidth: 88,
			UndoLimit:   0,
		},
		UI: UIConfig{
			LineNumbers:   true,
			MarkdownStyle: "dark",
			ShowStatusBar: true,
		},
		Keybindings: KeybindingsConfig{
			Composer: ComposerBindings{
				Submit: []string{"ctrl+s"},
				Cancel: []string{"esc"},
				Clear:  []string{"ctrl+l"},
			},
			Timeline: TimelineBindings{
				Up:         []string{"k", "up"},
				Down:       []string{"j", "down"},
				Top:        []string{"g", "home"},
				Bottom:     []string{"G", "end"},
				Compose:    []string{"i"},
				Edit:       []string{"e"},
				Delete:     []string{"x"},
				Search:     []string{"/"},
				ToggleVim:  []string{"v"},
				ToggleTodo: []string{"t"},
				PrevDay:    []string{"h", "left"},
				NextDay:    []string{"l", "right"},
				Quit:       []string{"q"},
			},
		},
	}
}

// Validate checks every section and returns an error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	return errors.Join(
		ValidateData(c.Data),
		ValidateEditor(c.Editor),
		ValidateUI(c.UI),
		ValidateKeybindings(c.Keybindings),
	)
}

// ValidateData checks the journal location.
func ValidateData(d DataConfig) error {
	if strings.TrimSpace(d.LogPath) == "" {
		return fmt.Errorf("%w: data.log_path is required", ErrInvalidConfig)
	}
	return nil
}

// ValidateEditor checks editor settings.
func ValidateEditor(e EditorConfig) error {
	var errs []error
	if e.DefaultMode != ModeNormal && e.DefaultMode != ModeInsert {
		errs = append(errs, fmt.Errorf("%w: editor.default_mode must be %q or %q, got %q", ErrInvalidConfig, ModeNormal, ModeInsert, e.DefaultMode))
	}
	if e.ColumnWidth < minColumnWidth || e.ColumnWidth > maxColumnWidth {
		errs = append(errs, fmt.Errorf("%w: editor.column_width must be between %d and %d, got %d", ErrInvalidConfig, minColumnWidth, maxColumnWidth, e.ColumnWidth))
	}
	if e.UndoLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: editor.undo_limit must not be negative, got %d", ErrInvalidConfig, e.UndoLimit))
	}
	return errors.Join(errs...)
}

// ValidateUI checks UI settings.
func ValidateUI(u UIConfig) error {
	if strings.TrimSpace(u.MarkdownStyle) == "" {
		return fmt.Errorf("%w: ui.markdown_style is required", ErrInvalidConfig)
	}
	return nil
}

// ValidateKeybindings requires every action to have a key and forbids one
// key serving two composer actions.
func ValidateKeybindings(k KeybindingsConfig) error {
	var errs []error
	seen := make(map[string]string)
	for _, b := range []struct {
		name string
		keys []string
	}{
		{"composer.submit", k.Composer.Submit},
		{"composer.cancel", k.Composer.Cancel},
		{"composer.clear", k.Composer.Clear},
	} {
		if len(b.keys) == 0 || slices.Contains(b.keys, "") {
			errs = append(errs, fmt.Errorf("%w: keybindings.%s needs at least one key", ErrInvalidConfig, b.name))
			continue
		}
		for _, key := range b.keys {
			if other, ok := seen[key]; ok {
				errs = append(errs, fmt.Errorf("%w: key %q bound to both keybindings.%s and keybindings.%s", ErrInvalidConfig, key, other, b.name))
			}
			seen[key] = b.name
		}
	}
	for name, keys := range map[string][]string{
		"timeline.up": k.Timeline.Up, "timeline.down": k.Timeline.Down,
		"timeline.compose": k.Timeline.Compose, "timeline.quit": k.Timeline.Quit,
	} {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("%w: keybindings.%s needs at least one key", ErrInvalidConfig, name))
		}
	}
	return errors.Join(errs...)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# daybook configuration

# Where daily journal files (YYYY-MM-DD.md) are kept
data:
  log_path: ~/.daybook/logs

# Composer editing
editor:
  vim_mode: true         # Modal (vim) editing; false gives a plain text area
  default_mode: normal   # Mode the composer opens in: normal or insert
  column_width: 88       # Wrap width for the composer and timeline
  # undo_limit: 200      # Undo steps kept per composer session

# UI settings
ui:
  line_numbers: true     # Line-number gutter in the composer
  markdown_style: dark   # Timeline style: dark, light, notty, dracula, or a JSON path
  show_status_bar: true  # Mode and key hints under the composer

# Colour overrides as hex, e.g. "#54A0FF"; empty keeps the default
theme:
  accent: ""
  muted: ""
  error: ""

# Key bindings; each action takes a list of keys
keybindings:
  composer:
    submit: [ctrl+s]
    cancel: [esc]        # In vim mode only applies from Normal mode
    clear: [ctrl+l]
  timeline:
    up: [k, up]
    down: [j, down]
    top: [g, home]
    bottom: [G, end]
    compose: [i]
    edit: [e]
    delete: [x]
    search: [/]          # Esc returns to today's entries
    toggle_vim: [v]      # Switch vim mode on/off and save it here
    toggle_todo: [t]     # Complete the open tasks of the entry, or reopen done ones
    prev_day: [h, left]  # Previous day with entries
    next_day: [l, right] # Next day with entries, up to today
    quit: [q]
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

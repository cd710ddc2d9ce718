package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/daybook/internal/app"
	"github.com/zjrosen/daybook/internal/cachemanager"
	"github.com/zjrosen/daybook/internal/config"
	"github.com/zjrosen/daybook/internal/journal"
	"github.com/zjrosen/daybook/internal/log"
	"github.com/zjrosen/daybook/internal/ui/shared/markdown"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 reply is not read as typed input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".daybook/config.yaml"
	debugLogName    = "debug.log"

	renderCacheExpiry  = time.Hour
	renderCacheCleanup = 10 * time.Minute
)

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "A terminal journal with a vim-style composer",
	Long:    `Write timestamped journal entries into daily markdown files from a modal, vim-like composer and browse them on a timeline.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.daybook/config.yaml or ~/.config/daybook/config.yaml)")
	rootCmd.Flags().StringP("path", "p", "",
		"journal directory (overrides data.log_path)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log next to the config file")
	rootCmd.Flags().Bool("no-vim", false,
		"start with vim mode off for this session")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload when journal files change on disk")
}

// loadConfig resolves the config file into v and decodes it. When no file
// exists anywhere a commented default is written to ./.daybook/config.yaml.
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	config.SetDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		// Lookup order:
		// 1. .daybook/config.yaml (current directory)
		// 2. ~/.config/daybook/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "daybook"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
		// Continue with defaults if the file cannot be written.
		if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
			v.SetConfigFile(localConfigPath)
			_ = v.ReadInConfig()
		}
	}

	return config.Load(v)
}

// applyFlags folds command-line overrides into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		cfg.Data.LogPath = config.ExpandHome(path)
	}
	if noVim, _ := cmd.Flags().GetBool("no-vim"); noVim {
		cfg.Editor.VimMode = false
	}
}

// debugLogPath places the log beside the config file, or in the journal
// directory when no config file is in use.
func debugLogPath(configFile, journalDir string) string {
	if configFile != "" {
		return filepath.Join(filepath.Dir(configFile), debugLogName)
	}
	return filepath.Join(journalDir, debugLogName)
}

func runApp(cmd *cobra.Command, args []string) error {
	v := viper.New()
	cfg, err := loadConfig(v, cfgFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	store := journal.New(cfg.Data.LogPath)
	if err := store.EnsureDir(); err != nil {
		return fmt.Errorf("preparing journal directory: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug || log.DebugFromEnv() {
		cleanup, err := log.Init(debugLogPath(v.ConfigFileUsed(), store.Dir()))
		if err != nil {
			return fmt.Errorf("starting debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatUI, "Starting daybook", "version", version, "journal", store.Dir())
	}

	styles.ApplyTheme(cfg.Theme.Accent, cfg.Theme.Muted, cfg.Theme.Error)

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: v.ConfigFileUsed(),
		Store:      store,
		Cache: cachemanager.NewInMemoryCacheManager[markdown.CacheKey, string](
			"render", renderCacheExpiry, renderCacheCleanup),
		Watch: !noWatch,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

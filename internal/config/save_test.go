package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSaveVimMode_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveVimMode(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# daybook configuration")
	require.Contains(t, content, "vim_mode: false")
	require.Contains(t, content, "# Modal (vim) editing")
	require.Contains(t, content, "column_width: 88")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Load(v)
	require.NoError(t, err)
	require.False(t, cfg.Editor.VimMode)
}

func TestSaveVimMode_CreatesFileAndSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveVimMode(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "editor:\n  vim_mode: true\n", string(data))
}

func TestSaveVimMode_ReplacesScalarSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: null\nui:\n  line_numbers: false\n"), 0o600))

	require.NoError(t, SaveVimMode(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "editor:\n  vim_mode: true\nui:\n  line_numbers: false\n", string(data))
}

func TestSave_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	require.Error(t, SaveVimMode(path, true))

	require.NoError(t, os.WriteFile(path, []byte("editor: [\n"), 0o600))
	require.Error(t, SaveVimMode(path, true))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	dir := isolate(t)

	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tmtext", "catalog.json"), cfg.CatalogPath)
	assert.Equal(t, filepath.Join(dir, "tmtext", "tmtext.log"), cfg.Log.Path)
	assert.Equal(t, 1024, cfg.CacheSize)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.UI.ShowRuns)
	assert.Equal(t, 50, cfg.Search.MinScore)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	defaults, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	data := `
cache_size: 16
icons_path: $HOME/icons.json
log:
  level: DEBUG
ui:
  show_runs: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, filepath.Join(dir, "icons.json"), cfg.IconsPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.UI.ShowRuns)
	// untouched keys keep their defaults
	assert.Equal(t, 50, cfg.Search.MinScore)
	assert.Equal(t, filepath.Join(dir, "tmtext", "catalog.json"), cfg.CatalogPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TMTEXT_CACHE_SIZE", "7")
	t.Setenv("TMTEXT_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CacheSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "cache_size: ["},
		{"wrong type", "cache_size: lots"},
		{"negative cache", "cache_size: -1"},
		{"unknown level", "log:\n  level: loud"},
		{"negative score", "search:\n  min_score: -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "sub", "config.yaml")

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	defaults, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, defaults, decoded)

	_, err = WriteDefault(path, false)
	assert.Error(t, err, "existing config must not be replaced")

	_, err = WriteDefault(path, true)
	assert.NoError(t, err)

	// the written file loads back to the same values
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

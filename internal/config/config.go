package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the tmtext configuration
type Config struct {
	CatalogPath  string       `mapstructure:"catalog_path" yaml:"catalog_path"`
	CacheSize    int          `mapstructure:"cache_size" yaml:"cache_size"`
	IconsPath    string       `mapstructure:"icons_path" yaml:"icons_path"`
	FetchRetries int          `mapstructure:"fetch_retries" yaml:"fetch_retries"`
	Log          LogConfig    `mapstructure:"log" yaml:"log"`
	UI           UIConfig     `mapstructure:"ui" yaml:"ui"`
	Search       SearchConfig `mapstructure:"search" yaml:"search"`
}

// LogConfig controls where and how much the application logs
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Path is the log file used by the browser; the CLI logs to stderr
	Path string `mapstructure:"path" yaml:"path"`
}

// UIConfig holds terminal browser preferences
type UIConfig struct {
	ShowRuns bool `mapstructure:"show_runs" yaml:"show_runs"` // run inspector in the detail pane
}

// SearchConfig tunes fuzzy search
type SearchConfig struct {
	MinScore int `mapstructure:"min_score" yaml:"min_score"`
}

// Levels accepted by log.level
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// DefaultConfigDir returns the directory holding the config, catalog and log
func DefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(configDir, "tmtext"), nil
}

// DefaultConfigPath returns the config file location
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns the configuration used when no file overrides it
func DefaultConfig() (Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		CatalogPath:  filepath.Join(dir, "catalog.json"),
		CacheSize:    1024,
		FetchRetries: 3,
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "tmtext.log"),
		},
		UI: UIConfig{
			ShowRuns: true,
		},
		Search: SearchConfig{
			MinScore: 50,
		},
	}, nil
}

// Validate checks values that would otherwise fail later in confusing ways
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch_retries must not be negative, got %d", c.FetchRetries)
	}
	if c.Search.MinScore < 0 {
		return fmt.Errorf("search.min_score must not be negative, got %d", c.Search.MinScore)
	}
	for _, level := range Levels {
		if c.Log.Level == level {
			return nil
		}
	}
	return fmt.Errorf("unsupported log.level %q", c.Log.Level)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/csams/tmtext/internal/config"
	"pkt.systems/pslog"
)

// openLogFile creates a structured logger appending to cfg.Path. The browser
// owns the terminal, so it cannot log to stderr.
func openLogFile(cfg config.LogConfig) (pslog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	opts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.InfoLevel}
	switch cfg.Level {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "warn":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(f, opts), f.Close, nil
}

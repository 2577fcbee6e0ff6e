package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/csams/tmtext/internal/cache"
	"github.com/csams/tmtext/internal/feed"
	"github.com/csams/tmtext/internal/models"
	"github.com/csams/tmtext/internal/ui"
	"pkt.systems/pslog"
)

func newBrowseCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the map catalog in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.CatalogPath = catalogPath
			}

			logger, closeLog, err := openLogFile(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()
			log.SetOutput(pslog.LogLogger(logger).Writer())

			logger = logger.With("catalog", cfg.CatalogPath)
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)

			catalog, err := models.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				return err
			}

			app := ui.NewApp(ctx, ui.Options{
				Catalog:  catalog,
				Cache:    cache.New(cfg.CacheSize),
				Fetcher:  feed.NewFetcher(logger, cfg.FetchRetries),
				ShowRuns: cfg.UI.ShowRuns,
				MinScore: cfg.Search.MinScore,
			})
			if err := app.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default from config)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csams/tmtext/internal/feed"
	"github.com/csams/tmtext/internal/models"
	"pkt.systems/pslog"
)

func newImportCmd() *cobra.Command {
	var catalogPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file-or-url>...",
		Short: "Import map listings into the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.CatalogPath = catalogPath
			}

			logger := pslog.Ctx(ctx).With("catalog", cfg.CatalogPath)
			catalog, err := models.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				return err
			}

			fetcher := feed.NewFetcher(logger, cfg.FetchRetries)
			out := cmd.OutOrStdout()
			total := 0
			for _, src := range args {
				maps, err := fetcher.Load(ctx, src)
				if err != nil {
					return fmt.Errorf("import %s: %w", src, err)
				}

				added := 0
				for _, m := range maps {
					if !catalog.Add(m) {
						continue
					}
					added++
					if dryRun {
						fmt.Fprintf(out, "%s\t%s\n", m.UID, m.PlainName)
					}
				}
				total += added
				logger.Info("imported listing", "src", src, "listed", len(maps), "added", added)
				fmt.Fprintf(out, "%s: added %d of %d maps\n", src, added, len(maps))
			}

			if dryRun || total == 0 {
				return nil
			}
			if err := catalog.Save(); err != nil {
				return err
			}
			fmt.Fprintf(out, "catalog %s now holds %d maps\n", catalog.Path(), len(catalog.Maps))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (default from config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the maps that would be added without saving")
	return cmd
}

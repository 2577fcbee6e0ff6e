package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csams/tmtext/internal/cache"
	"github.com/csams/tmtext/internal/markup"
	"github.com/csams/tmtext/internal/render"
	"pkt.systems/pslog"
)

// Output formats of the render command
const (
	formatPlain = "plain"
	formatANSI  = "ansi"
	formatHTML  = "html"
	formatRuns  = "runs"
)

type renderOptions struct {
	format    string
	iconsPath string
	noColor   bool
}

// renderFunc turns parsed runs into one line of output
type renderFunc func([]markup.Run) (string, error)

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render formatted text as plain text, ANSI, HTML or JSON runs",
		Long: "Render formatted text given as arguments, or each line of stdin when\n" +
			"no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if opts.iconsPath == "" {
				opts.iconsPath = cfg.IconsPath
			}

			renderer, err := newRenderer(opts)
			if err != nil {
				return err
			}
			lines, err := inputLines(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			c := cache.New(cfg.CacheSize)
			out := cmd.OutOrStdout()
			for _, line := range lines {
				text, err := renderer(c.Get(line))
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, text); err != nil {
					return err
				}
			}

			st := c.Stats()
			pslog.Ctx(cmd.Context()).Debug("rendered input", "format", opts.format, "lines", len(lines), "cache_hits", st.Hits, "cache_misses", st.Misses)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatPlain, "output format: plain, ansi, html or runs")
	cmd.Flags().StringVar(&opts.iconsPath, "icons", "", "JSON file mapping icon codepoints to CSS classes (html only)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "drop colors from ANSI output (also set by NO_COLOR)")
	return cmd
}

func newRenderer(opts renderOptions) (renderFunc, error) {
	switch opts.format {
	case formatPlain:
		return func(runs []markup.Run) (string, error) {
			return render.Plain(runs), nil
		}, nil
	case formatANSI:
		ansi := render.ANSIOptions{NoColor: opts.noColor || os.Getenv("NO_COLOR") != ""}
		return func(runs []markup.Run) (string, error) {
			return render.ANSI(runs, ansi), nil
		}, nil
	case formatHTML:
		var icons *render.IconSet
		if opts.iconsPath != "" {
			set, err := render.LoadIconSet(opts.iconsPath)
			if err != nil {
				return nil, err
			}
			icons = set
		}
		return func(runs []markup.Run) (string, error) {
			return render.HTML(runs, icons), nil
		}, nil
	case formatRuns:
		return func(runs []markup.Run) (string, error) {
			if runs == nil {
				runs = []markup.Run{}
			}
			data, err := json.Marshal(runs)
			if err != nil {
				return "", fmt.Errorf("failed to encode runs: %w", err)
			}
			return string(data), nil
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want plain, ansi, html or runs)", opts.format)
}

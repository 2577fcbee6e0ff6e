package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csams/tmtext/internal/markup"
)

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [text...]",
		Short: "Remove all formatting and print the visible text",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), markup.Strip(line)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

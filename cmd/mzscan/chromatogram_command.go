package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChromatogramCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "chromatogram FILE ID",
		Aliases: []string{"chrom"},
		Short:   "Print the points of one chromatogram",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := store.FetchChromatogram(args[1])
			if err != nil {
				return err
			}
			points, err := c.Points()
			if err != nil {
				return fmt.Errorf("chromatogram %q: %w", args[1], err)
			}

			rows := make([][]string, len(points))
			for i, p := range points {
				rows[i] = []string{
					strconv.FormatFloat(p.Time.Minutes(), 'f', 4, 64),
					strconv.FormatFloat(p.Intensity, 'g', 6, 64),
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Time (min)", "Intensity"}, rows, []columnAlignment{alignRight, alignRight}))

			return nil
		},
	}
}

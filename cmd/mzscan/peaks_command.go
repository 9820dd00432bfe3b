package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPeaksCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "peaks FILE ID",
		Short: "Print the peaks of one spectrum",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			scan, err := store.Fetch(args[1])
			if err != nil {
				return err
			}
			peaks, err := scan.Peaks()
			if err != nil {
				return fmt.Errorf("spectrum %q: %w", args[1], err)
			}

			if limit > 0 && len(peaks) > limit {
				peaks = peaks[:limit]
			}
			rows := make([][]string, len(peaks))
			for i, p := range peaks {
				rows[i] = []string{
					strconv.FormatFloat(p.MZ, 'f', 5, 64),
					strconv.FormatFloat(p.Intensity, 'g', 6, 64),
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"m/z", "Intensity"}, rows, []columnAlignment{alignRight, alignRight}))

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most this many peaks")

	return cmd
}

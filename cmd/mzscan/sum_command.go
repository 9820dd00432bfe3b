package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSumCommand(ctx *commandContext) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "sum FILE",
		Short: "Fetch every spectrum in parallel and total its peaks",
		Long: "Fetch every spectrum in parallel, decode its arrays and report the sum of\n" +
			"the first m/z of each spectrum. The sum does not depend on fetch order, which\n" +
			"makes it a quick consistency check between sequential and parallel reads.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = cfg.Fetch.Concurrency
			}

			store, err := ctx.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			ids := make([]string, 0, store.Len())
			for md := range store.IterMetadata() {
				ids = append(ids, md.ID)
			}

			logger := ctx.logger(cmd.ErrOrStderr())

			var firstMZ float64
			var peaks, failed int
			for _, res := range store.FetchMany(cmd.Context(), ids, concurrency) {
				if res.Err != nil {
					failed++
					logger.Warn("fetch failed", "id", res.ID, "error", res.Err)
					continue
				}
				mz, _, err := res.Scan.Columns()
				if err != nil {
					failed++
					logger.Warn("decode failed", "id", res.ID, "error", err)
					continue
				}
				peaks += len(mz)
				if len(mz) > 0 {
					firstMZ += mz[0]
				}
			}

			rows := [][]string{
				{"Spectra", strconv.Itoa(len(ids))},
				{"Failed", strconv.Itoa(failed)},
				{"Peaks", strconv.Itoa(peaks)},
				{"Sum of first m/z", strconv.FormatFloat(firstMZ, 'f', 6, 64)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			if failed > 0 {
				return fmt.Errorf("%d of %d spectra failed", failed, len(ids))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Parallel fetches (default from config)")

	return cmd
}

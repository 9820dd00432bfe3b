package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/mzml/spectrum"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var level int
	var limit int

	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "List spectrum metadata without reading peak data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			var rows [][]string
			for md := range store.IterMetadata() {
				msLevel, _ := md.MSLevel()
				if level > 0 && int(msLevel) != level {
					continue
				}
				rows = append(rows, metadataRow(md))
				if limit > 0 && len(rows) >= limit {
					break
				}
			}

			out := cmd.OutOrStdout()
			headers := []string{"Index", "ID", "MS", "RT (min)", "Peaks", "Precursor m/z"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}
			fmt.Fprintln(out, renderTable(out, headers, rows, aligns))

			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "Only list spectra of this MS level")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many rows")

	return cmd
}

func metadataRow(md *spectrum.Metadata) []string {
	level := "-"
	if l, ok := md.MSLevel(); ok {
		level = strconv.Itoa(int(l))
	}
	rt := "-"
	if d, ok := md.RetentionTime(); ok {
		rt = strconv.FormatFloat(d.Minutes(), 'f', 4, 64)
	}
	precursor := "-"
	if md.IsTandem() {
		if mz, ok := md.Precursors[0].SelectedIonMZ(); ok {
			precursor = strconv.FormatFloat(mz, 'f', 4, 64)
		}
	}

	return []string{strconv.Itoa(md.Index), md.ID, level, rt, strconv.Itoa(md.PeakCount()), precursor}
}

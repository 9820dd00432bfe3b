package main

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Summarize an mzML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			levels := map[uint16]int{}
			var minRT, maxRT time.Duration
			haveRT := false
			peaks := 0
			for md := range store.IterMetadata() {
				level, _ := md.MSLevel()
				levels[level]++
				peaks += md.PeakCount()
				if rt, ok := md.RetentionTime(); ok {
					if !haveRT || rt < minRT {
						minRT = rt
					}
					if !haveRT || rt > maxRT {
						maxRT = rt
					}
					haveRT = true
				}
			}

			declared := "-"
			if n := store.DeclaredCount(); n >= 0 {
				declared = strconv.Itoa(n)
			}
			rtRange := "-"
			if haveRT {
				rtRange = fmt.Sprintf("%.3f - %.3f min", minRT.Minutes(), maxRT.Minutes())
			}

			rows := [][]string{
				{"File", args[0]},
				{"Indexed", strconv.FormatBool(store.Indexed())},
				{"Spectra", strconv.Itoa(store.Len())},
				{"Declared spectra", declared},
				{"Indexed spectra", strconv.Itoa(store.ScanOffsets().Len())},
				{"Duplicate index ids", strconv.Itoa(store.ScanOffsets().Duplicates())},
				{"Chromatograms", strconv.Itoa(len(store.ChromatogramIDs()))},
				{"Declared peaks", strconv.Itoa(peaks)},
				{"Retention time", rtRange},
			}

			keys := make([]uint16, 0, len(levels))
			for level := range levels {
				keys = append(keys, level)
			}
			slices.Sort(keys)
			for _, level := range keys {
				name := "Unknown MS level"
				if level > 0 {
					name = fmt.Sprintf("MS%d spectra", level)
				}
				rows = append(rows, []string{name, strconv.Itoa(levels[level])})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Property", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wiproll",
	Short: "Roll up activity WIP hours from a tracker export",
	Long: `wiproll ingests a flat tracker export of hierarchical work items and
derives, for each activity ticket, a propagated classification tag, a
deduplicated work-in-progress hour total, and a per-contributor ledger.

The input is a workbook whose first sheet holds one header row followed
by ticket rows. The output is a workbook with three sheets: Results
(every input row plus the derived columns), Transformed Data (one row
per contributor record), and Project Summary (hours aggregated by
activity and person).`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

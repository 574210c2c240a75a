package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/pipeline"
	"github.com/karhu-labs/wiproll/internal/report"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/xlsx"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a tracker export and write the report workbook",
	Long: `Run the full batch: load the ticket table, propagate activity tags,
aggregate WIP hours, resolve contributors, and write the three-sheet
report workbook.

The run is atomic: it either completes and writes one output artifact,
or it fails and writes nothing.

Examples:
  wiproll run                                 # tracker.xlsx -> wiproll-report.xlsx
  wiproll run --input export.xlsx             # custom input
  wiproll run --config wiproll.yaml           # custom columns / units`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		configPath, _ := cmd.Flags().GetString("config")

		if err := runBatch(input, output, configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runBatch(input, output, configPath string) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	runID := uuid.New().String()[:8]
	fmt.Printf("%s wiproll run %s\n", cyan("▶"), runID)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	columns, rows, err := xlsx.ReadTable(input)
	if err != nil {
		return err
	}

	set, err := store.Load(columns, rows, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("  loaded %d tickets (%d columns)\n", len(set.Tickets), len(columns))

	outcome, err := pipeline.Run(set, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("  tagged %d tickets, rolled up %d activities, emitted %d contributor records\n",
		outcome.TagsAssigned, outcome.ActivitiesRolledUp, len(outcome.Records))

	w := xlsx.NewWriter()
	if err := w.AddSheet(cfg.Output.ResultsSheet, report.Results(set, cfg)); err != nil {
		return err
	}
	if err := w.AddSheet(cfg.Output.TransformedSheet, report.Transformed(outcome.Records)); err != nil {
		return err
	}
	if err := w.AddSheet(cfg.Output.SummarySheet, report.Summary(outcome.Groups, cfg)); err != nil {
		return err
	}
	if err := w.Save(output); err != nil {
		return err
	}

	fmt.Printf("%s wrote %s (%d summary rows)\n", green("✓"), output, len(outcome.Groups))
	return nil
}

func init() {
	runCmd.Flags().String("input", "tracker.xlsx", "Input workbook (first sheet is read)")
	runCmd.Flags().String("output", "wiproll-report.xlsx", "Output workbook path")
	runCmd.Flags().String("config", "", "Optional YAML config file")

	rootCmd.AddCommand(runCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtools/report-augmenter/pkg/history"
	"github.com/covtools/report-augmenter/pkg/report"
)

var (
	// History command flags
	historyDB    string
	historyLabel string

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Record and inspect per-crate coverage over time",
		Long: `Persist the per-crate aggregates of coverage reports in a local SQLite
database so coverage trends survive after the report files are gone.

  record   Aggregate a report and store one run.
  list     Print every recorded run with its crates.`,
	}

	historyRecordCmd = &cobra.Command{
		Use:   "record <report-file>",
		Short: "Aggregate a report and store one run in the history database",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryRecord,
	}

	historyListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print all recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDB, "db", "coverage-history.db", "Path to the history database")
	historyRecordCmd.Flags().StringVar(&historyLabel, "label", "", "Label for this run (e.g. branch or job name)")
	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyListCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryRecord(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	doc, err := report.LoadFile(args[0])
	if err != nil {
		return err
	}
	table, err := doc.CoverageTable()
	if err != nil {
		return err
	}

	rows, _ := report.ScanRows(table)
	groups := report.AggregateRows(rows)
	if len(groups) == 0 {
		return fmt.Errorf("report contains no data rows")
	}

	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Record(historyLabel, groups)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	logger.Success("Recorded run %d (%d crates) in %s", runID, len(groups), historyDB)

	if historyLabel == "" {
		return nil
	}
	deltas, err := store.Deltas(historyLabel)
	if err != nil {
		return fmt.Errorf("compute deltas: %w", err)
	}
	for _, d := range deltas {
		change := (d.Current - d.Previous) * 100
		if change == 0 {
			continue
		}
		fmt.Printf("  %-30s %+.2f%% (%.2f%% -> %.2f%%)\n",
			d.Group, change, d.Previous*100, d.Current*100)
	}
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		label := r.Label
		if label == "" {
			label = "(unlabeled)"
		}
		fmt.Printf("Run %d  %s  %s\n", r.ID, r.RecordedAt, label)
		for _, g := range r.Groups {
			fmt.Printf("  %-30s %s (%s)\n", g.Name, g.PercentDisplay(), g.FractionDisplay())
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covtools/report-augmenter/pkg/report"
)

func runAugment(cmd *cobra.Command, args []string) error {
	commandsFile, reportFile, outputFile := args[0], args[1], args[2]

	logger, err := newLogger()
	if err != nil {
		return err
	}

	commands, err := os.ReadFile(commandsFile)
	if err != nil {
		return fmt.Errorf("read commands file: %w", err)
	}

	doc, err := report.LoadFile(reportFile)
	if err != nil {
		return err
	}

	// Echo the report's own summary widgets before touching anything.
	for _, w := range doc.SummaryWidgets() {
		fmt.Printf("%s: %s\n", w.Label, w.Value)
	}

	table, err := doc.CoverageTable()
	if err != nil {
		return err
	}

	rows, mismatches := report.ScanRows(table)
	for _, m := range mismatches {
		logger.Warning("coverage mismatch for %s: displayed %.2f%%, computed %.2f%%",
			m.Path, m.Displayed, m.Computed)
	}

	groups := report.AggregateRows(rows)
	logger.Debug("aggregated %d rows into %d groups", len(rows), len(groups))

	if err := doc.Augment(string(commands), groups); err != nil {
		return err
	}

	if err := doc.Save(outputFile); err != nil {
		return err
	}

	logger.Success("Wrote augmented report: %s (%d groups)", outputFile, len(groups))
	return nil
}

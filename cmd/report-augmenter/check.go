package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covtools/report-augmenter/pkg/report"
)

var (
	checkMin  float64
	checkWarn float64

	checkCmd = &cobra.Command{
		Use:   "check <report-file>",
		Short: "Fail when any crate's aggregate coverage is below a minimum",
		Long: `Check aggregates the per-file rows of a coverage report into per-crate
totals and compares each crate against the thresholds. Crates below
--min fail the check; crates between --min and --warn are listed as
warnings. A crate with no countable lines fails.`,
		Example: `  # Enforce the default 70% floor
  report-augmenter check coverage/index.html

  # Stricter gate for release branches
  report-augmenter check coverage/index.html --min 0.85`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().Float64Var(&checkMin, "min", 0.70, "Minimum acceptable coverage fraction per crate")
	checkCmd.Flags().Float64Var(&checkWarn, "warn", 0.90, "Coverage fraction below which a crate is flagged as a warning")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	rows, mismatches := report.ScanRows(table)
	for _, m := range mismatches {
		logger.Warning("coverage mismatch for %s: displayed %.2f%%, computed %.2f%%",
			m.Path, m.Displayed, m.Computed)
	}

	groups := report.AggregateRows(rows)
	if len(groups) == 0 {
		return fmt.Errorf("report contains no data rows")
	}

	failed := 0
	for _, g := range groups {
		frac := g.Frac()
		switch {
		case frac < checkMin:
			failed++
			fmt.Printf("FAIL  %-30s %s (%s)\n", g.Name, g.PercentDisplay(), g.FractionDisplay())
		case frac < checkWarn:
			fmt.Printf("WARN  %-30s %s (%s)\n", g.Name, g.PercentDisplay(), g.FractionDisplay())
		default:
			fmt.Printf("PASS  %-30s %s (%s)\n", g.Name, g.PercentDisplay(), g.FractionDisplay())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d crate(s) below %.0f%% coverage", failed, checkMin*100)
	}
	logger.Success("All %d crates at or above %.0f%% coverage", len(groups), checkMin*100)
	return nil
}

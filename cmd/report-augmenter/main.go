package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covtools/report-augmenter/pkg/log"
)

var (
	// Global flags
	verbosity string

	// Root command. The root itself performs the augmentation so the
	// tool keeps its original three-positional-argument contract.
	rootCmd = &cobra.Command{
		Use:   "report-augmenter <commands-file> <report-file> <output-file>",
		Short: "Inject a command log and per-crate summary into an HTML coverage report",
		Long: `report-augmenter post-processes an HTML coverage report produced by an
external coverage tool. It inserts a preformatted block holding the
commands that produced the report directly after the report's navigation
element, aggregates the per-file coverage rows into per-crate totals, and
appends a color-coded per-crate summary table after the per-file table.`,
		Example: `  # Augment a report
  report-augmenter commands.txt coverage/index.html coverage/index.html

  # Render a report from a Go cover profile, then augment it
  report-augmenter render coverage.out coverage/index.html
  report-augmenter commands.txt coverage/index.html coverage/final.html`,
		Args: cobra.ExactArgs(3),
		RunE: runAugment,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "info", "Log verbosity (error, info, debug)")
}

// newLogger creates the logger for the current invocation
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(verbosity)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

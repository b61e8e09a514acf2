package main

import (
	"fmt"
	"html/template"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/tools/cover"
)

var renderCmd = &cobra.Command{
	Use:   "render <profile> <output-file>",
	Short: "Render a coverage report HTML from a Go cover profile",
	Long: `Render builds a coverage report page from a Go cover profile
(as written by 'go test -coverprofile' or 'go tool covdata textfmt').
The page has the exact shape the augmenter consumes: a navigation
element, summary widgets, and a per-file table with path, percentage,
and covered/total columns.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

// fileCoverage holds per-file statement counts for the rendered report
type fileCoverage struct {
	Path         string
	Coverage     float64
	TotalStmts   int
	CoveredStmts int
}

func runRender(cmd *cobra.Command, args []string) error {
	profileFile, outputFile := args[0], args[1]

	logger, err := newLogger()
	if err != nil {
		return err
	}

	files, covered, total, err := buildFileCoverage(profileFile)
	if err != nil {
		return err
	}

	var overall float64
	if total > 0 {
		overall = float64(covered) / float64(total) * 100
	}

	funcMap := template.FuncMap{
		"severityClass": func(coverage float64) string {
			if coverage >= 90 {
				return "success"
			} else if coverage >= 70 {
				return "warning"
			}
			return "danger"
		},
		"formatPct": func(coverage float64) string {
			return fmt.Sprintf("%.2f%%", coverage)
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	data := struct {
		Files           []fileCoverage
		TotalFiles      int
		OverallCoverage float64
		TotalStmts      int
		CoveredStmts    int
	}{
		Files:           files,
		TotalFiles:      len(files),
		OverallCoverage: overall,
		TotalStmts:      total,
		CoveredStmts:    covered,
	}

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	logger.Success("Rendered coverage report: %s (%d files, %.2f%%)", outputFile, len(files), overall)
	return nil
}

// buildFileCoverage parses a cover profile and computes per-file and
// overall statement counts
func buildFileCoverage(profileFile string) ([]fileCoverage, int, int, error) {
	profiles, err := cover.ParseProfiles(profileFile)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("parse profiles: %w", err)
	}

	var files []fileCoverage
	grandTotal := 0
	grandCovered := 0

	for _, profile := range profiles {
		totalStmts := 0
		coveredStmts := 0
		for _, block := range profile.Blocks {
			totalStmts += block.NumStmt
			if block.Count > 0 {
				coveredStmts += block.NumStmt
			}
		}

		var coverage float64
		if totalStmts > 0 {
			coverage = float64(coveredStmts) / float64(totalStmts) * 100
		}

		files = append(files, fileCoverage{
			Path:         profile.FileName,
			Coverage:     coverage,
			TotalStmts:   totalStmts,
			CoveredStmts: coveredStmts,
		})
		grandTotal += totalStmts
		grandCovered += coveredStmts
	}

	return files, grandCovered, grandTotal, nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Coverage Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 20px; }
        nav { padding: 10px 0; border-bottom: 1px solid #ddd; font-weight: 600; }
        .summary { margin: 10px 0; }
        .summary .label { color: #666; margin-right: 6px; }
        .summary .value { font-weight: 600; }
        table { border-collapse: collapse; margin-top: 15px; }
        th, td { padding: 6px 12px; border-bottom: 1px solid #eee; text-align: left; }
        td.success { color: #28a745; }
        td.warning { color: #f39c12; }
        td.danger { color: #dc3545; }
        pre.command-log { background: #f8f9fa; padding: 10px; border-radius: 4px; }
    </style>
</head>
<body>
    <nav>Coverage Report</nav>
    <div class="summary">
        <span class="label">Overall coverage</span>
        <span class="value">{{formatPct .OverallCoverage}}</span>
    </div>
    <div class="summary">
        <span class="label">Files</span>
        <span class="value">{{.TotalFiles}}</span>
    </div>
    <table class="files">
        <thead>
            <tr><th>File</th><th>Coverage</th><th>Statements</th></tr>
        </thead>
        <tbody>
            {{range .Files}}
            <tr>
                <th>{{.Path}}</th>
                <td class="{{severityClass .Coverage}}">{{formatPct .Coverage}}</td>
                <td class="{{severityClass .Coverage}}">{{.CoveredStmts}} / {{.TotalStmts}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
</body>
</html>
`

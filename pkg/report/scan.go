package report

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// mismatchTolerance is the absolute difference allowed between a row's
// displayed percentage and the percentage computed from its fraction.
const mismatchTolerance = 0.01

// Row is one data row of the per-file coverage table.
type Row struct {
	Path    string
	Percent float64
	Covered int
	Total   int
}

// Mismatch records a row whose displayed percentage disagrees with its
// covered/total fraction.
type Mismatch struct {
	Path      string
	Displayed float64
	Computed  float64
}

// SummaryWidget is a labeled percentage display from the report header.
type SummaryWidget struct {
	Label string
	Value string
}

// SummaryWidgets returns the report's summary widgets in document order.
// A widget is an element with class "summary" holding "label" and
// "value" descendants; widgets missing either part are skipped.
func (d *Document) SummaryWidgets() []SummaryWidget {
	var widgets []SummaryWidget
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "summary") {
			label := findByClass(n, "label")
			value := findByClass(n, "value")
			if label != nil && value != nil {
				widgets = append(widgets, SummaryWidget{
					Label: strings.TrimSpace(nodeText(label)),
					Value: strings.TrimSpace(nodeText(value)),
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return widgets
}

// ScanRows extracts the data rows of the per-file table along with any
// percent/fraction mismatches. Rows with fewer than 3 cells, all-header
// rows, and rows inside <thead> are skipped. Mismatched rows are still
// returned; the diagnostic is advisory only.
func ScanRows(table *html.Node) ([]Row, []Mismatch) {
	var rows []Row
	var mismatches []Mismatch

	for _, tr := range tableRows(table) {
		cells := rowCells(tr)
		if len(cells) < 3 || !hasDataCell(cells) {
			continue
		}

		row := Row{Path: strings.TrimSpace(nodeText(cells[0]))}
		row.Percent = parsePercent(nodeText(cells[1]))
		row.Covered, row.Total = ParseFraction(nodeText(cells[2]))

		if row.Total != 0 {
			computed := 100 * float64(row.Covered) / float64(row.Total)
			if math.Abs(row.Percent-computed) > mismatchTolerance {
				mismatches = append(mismatches, Mismatch{
					Path:      row.Path,
					Displayed: row.Percent,
					Computed:  computed,
				})
			}
		}

		rows = append(rows, row)
	}
	return rows, mismatches
}

// tableRows returns the <tr> elements of table outside its <thead>.
func tableRows(table *html.Node) []*html.Node {
	var trs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "thead":
				return
			case "tr":
				trs = append(trs, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return trs
}

// rowCells returns the <th> and <td> children of a row in order.
func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, c)
		}
	}
	return cells
}

// hasDataCell reports whether any cell is a <td>. Rows made entirely of
// header cells are column headers, not file entries.
func hasDataCell(cells []*html.Node) bool {
	for _, c := range cells {
		if c.Data == "td" {
			return true
		}
	}
	return false
}

// parsePercent parses a percentage cell, tolerating a trailing "%".
// Unparsable text yields 0.
func parsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

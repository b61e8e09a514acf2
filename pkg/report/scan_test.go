package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<!DOCTYPE html>
<html>
<head><title>Coverage</title></head>
<body>
<nav>Coverage Report</nav>
<div class="summary"><span class="label">Overall coverage</span> <span class="value">62.50%</span></div>
<div class="summary"><span class="label">Files</span> <span class="value">3</span></div>
<table class="files">
<thead><tr><th>File</th><th>Coverage</th><th>Lines</th></tr></thead>
<tbody>
<tr><th>crates/foo/src/lib.rs</th><td>50.00%</td><td>5 / 10</td></tr>
<tr><th>crates/bar/src/main.rs</th><td>75.00%</td><td>15 / 20</td></tr>
<tr><td colspan="3">not a data row</td></tr>
<tr><th>src/free.rs</th><td>100.00%</td><td>2 / 2</td></tr>
</tbody>
</table>
</body>
</html>`

func loadSample(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestSummaryWidgets(t *testing.T) {
	doc := loadSample(t, sampleReport)
	widgets := doc.SummaryWidgets()
	require.Len(t, widgets, 2)
	assert.Equal(t, SummaryWidget{Label: "Overall coverage", Value: "62.50%"}, widgets[0])
	assert.Equal(t, SummaryWidget{Label: "Files", Value: "3"}, widgets[1])
}

func TestScanRows(t *testing.T) {
	doc := loadSample(t, sampleReport)
	table, err := doc.CoverageTable()
	require.NoError(t, err)

	rows, mismatches := ScanRows(table)
	assert.Empty(t, mismatches)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Path: "crates/foo/src/lib.rs", Percent: 50, Covered: 5, Total: 10}, rows[0])
	assert.Equal(t, Row{Path: "crates/bar/src/main.rs", Percent: 75, Covered: 15, Total: 20}, rows[1])
	assert.Equal(t, Row{Path: "src/free.rs", Percent: 100, Covered: 2, Total: 2}, rows[2])
}

func TestScanRowsMismatch(t *testing.T) {
	src := `<html><body><nav></nav><table>
<tr><th>crates/foo/src/lib.rs</th><td>50%</td><td>1 / 3</td></tr>
</table></body></html>`
	doc := loadSample(t, src)
	table, err := doc.CoverageTable()
	require.NoError(t, err)

	rows, mismatches := ScanRows(table)

	// The diagnostic names the row, but the row is still aggregated
	// with its raw fraction.
	require.Len(t, mismatches, 1)
	assert.Equal(t, "crates/foo/src/lib.rs", mismatches[0].Path)
	assert.Equal(t, 50.0, mismatches[0].Displayed)
	assert.InDelta(t, 33.33, mismatches[0].Computed, 0.01)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Covered)
	assert.Equal(t, 3, rows[0].Total)

	groups := AggregateRows(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Covered)
	assert.Equal(t, 3, groups[0].Total)
}

func TestScanRowsMalformedFraction(t *testing.T) {
	src := `<html><body><table>
<tr><th>crates/foo/src/lib.rs</th><td>50.00%</td><td>garbled</td></tr>
</table></body></html>`
	doc := loadSample(t, src)
	table, err := doc.CoverageTable()
	require.NoError(t, err)

	rows, mismatches := ScanRows(table)

	// Malformed fractions contribute a silent (0, 0), with no
	// diagnostic at all.
	assert.Empty(t, mismatches)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Covered)
	assert.Equal(t, 0, rows[0].Total)
}

func TestScanRowsSkipsShortRows(t *testing.T) {
	src := `<html><body><table>
<tr><th>only</th><td>two cells</td></tr>
<tr><th>a</th><th>b</th><th>c</th></tr>
<tr><th>crates/foo/src/lib.rs</th><td>100.00%</td><td>4 / 4</td></tr>
</table></body></html>`
	doc := loadSample(t, src)
	table, err := doc.CoverageTable()
	require.NoError(t, err)

	rows, _ := ScanRows(table)
	require.Len(t, rows, 1)
	assert.Equal(t, "crates/foo/src/lib.rs", rows[0].Path)
}

func TestStructuralPreconditions(t *testing.T) {
	noNav := loadSample(t, `<html><body><table></table></body></html>`)
	_, err := noNav.Nav()
	assert.ErrorIs(t, err, ErrNoNav)

	noTable := loadSample(t, `<html><body><nav></nav></body></html>`)
	_, err = noTable.CoverageTable()
	assert.ErrorIs(t, err, ErrNoTable)
}

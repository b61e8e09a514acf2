package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"crates/foo/src/lib.rs", "foo"},
		{"crates/bar/src/main.rs", "bar"},
		{"workspace/crates/baz/src/deep/mod.rs", "baz"},
		{"crates/lib.rs", "lib.rs"},
		{"src/lib.rs", "src/lib.rs"},
		{"maint/keygen/src/main.rs", "maint/keygen/src/main.rs"},
		{"lib.rs", "lib.rs"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GroupFromPath(tc.path), "path %q", tc.path)
	}
}

func TestParseFraction(t *testing.T) {
	cases := []struct {
		in      string
		covered int
		total   int
	}{
		{"12 / 34", 12, 34},
		{"0 / 0", 0, 0},
		{"  5  /  10  ", 5, 10},
		{"abc", 0, 0},
		{"1 of 2", 0, 0},
		{"1 / 2 / 3", 0, 0},
		{"x / y", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		covered, total := ParseFraction(tc.in)
		assert.Equal(t, tc.covered, covered, "covered for %q", tc.in)
		assert.Equal(t, tc.total, total, "total for %q", tc.in)
	}
}

func TestAggregateRows(t *testing.T) {
	rows := []Row{
		{Path: "crates/foo/src/a.rs", Covered: 5, Total: 10},
		{Path: "crates/bar/src/b.rs", Covered: 18, Total: 20},
		{Path: "crates/foo/src/c.rs", Covered: 3, Total: 10},
	}

	groups := AggregateRows(rows)
	if assert.Len(t, groups, 2) {
		// First-seen order, not alphabetical.
		assert.Equal(t, "foo", groups[0].Name)
		assert.Equal(t, 8, groups[0].Covered)
		assert.Equal(t, 20, groups[0].Total)
		assert.Equal(t, "40.00%", groups[0].PercentDisplay())
		assert.Equal(t, SeverityDanger, groups[0].Severity())

		assert.Equal(t, "bar", groups[1].Name)
		assert.Equal(t, "90.00%", groups[1].PercentDisplay())
		assert.Equal(t, SeveritySuccess, groups[1].Severity())
	}
}

func TestSeverityBoundaries(t *testing.T) {
	// Exactly 0.70 is a warning, not danger.
	assert.Equal(t, SeverityWarning, Aggregate{Covered: 70, Total: 100}.Severity())
	// Exactly 0.90 is a success, not warning.
	assert.Equal(t, SeveritySuccess, Aggregate{Covered: 90, Total: 100}.Severity())
	assert.Equal(t, SeverityDanger, Aggregate{Covered: 69, Total: 100}.Severity())
	assert.Equal(t, SeverityWarning, Aggregate{Covered: 89, Total: 100}.Severity())
}

func TestZeroTotalGroup(t *testing.T) {
	g := Aggregate{Name: "empty"}
	assert.Equal(t, "n/a", g.PercentDisplay())
	assert.Equal(t, SeverityDanger, g.Severity())
	assert.Equal(t, 0.0, g.Frac())
	assert.Equal(t, "0 / 0", g.FractionDisplay())
}

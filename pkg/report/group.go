package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity classifies a group's aggregate coverage fraction.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Thresholds separating the severity tiers.
const (
	dangerBelow  = 0.70
	warningBelow = 0.90
)

// GroupFromPath extracts the group name from a /-separated file path.
// Walking from the rightmost segment toward the root, the first segment
// whose remaining prefix ends in a "crates" directory is the group.
// Paths with no such segment form their own singleton group named after
// the full path.
func GroupFromPath(path string) string {
	rest := path
	for {
		idx := strings.LastIndex(rest, "/")
		if idx < 0 {
			return path
		}
		leaf := rest[idx+1:]
		rest = rest[:idx]
		if rest == "crates" || strings.HasSuffix(rest, "/crates") {
			return leaf
		}
	}
}

// ParseFraction parses a "covered / total" cell. Anything that is not
// exactly three whitespace-separated tokens with "/" in the middle, or
// whose outer tokens are not integers, yields the neutral (0, 0)
// fraction rather than an error. Malformed cells therefore contribute
// nothing to aggregates; callers must tolerate silent undercounting.
func ParseFraction(s string) (covered, total int) {
	fields := strings.Fields(s)
	if len(fields) != 3 || fields[1] != "/" {
		return 0, 0
	}
	c, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0
	}
	t, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0
	}
	return c, t
}

// Aggregate holds the summed line counts for one group.
type Aggregate struct {
	Name    string
	Covered int
	Total   int
}

// Frac returns the coverage fraction, with a zero total defined as 0.
func (a Aggregate) Frac() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Covered) / float64(a.Total)
}

// Severity returns the tier for the group's fraction.
func (a Aggregate) Severity() Severity {
	frac := a.Frac()
	switch {
	case frac < dangerBelow:
		return SeverityDanger
	case frac < warningBelow:
		return SeverityWarning
	default:
		return SeveritySuccess
	}
}

// PercentDisplay formats the fraction as a fixed two-decimal percentage,
// or "n/a" for a zero total.
func (a Aggregate) PercentDisplay() string {
	if a.Total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", a.Frac()*100)
}

// FractionDisplay formats the summed counts as "covered / total".
func (a Aggregate) FractionDisplay() string {
	return fmt.Sprintf("%d / %d", a.Covered, a.Total)
}

// AggregateRows sums row fractions into per-group aggregates, preserving
// the first-seen order of groups.
func AggregateRows(rows []Row) []Aggregate {
	var groups []Aggregate
	index := make(map[string]int)

	for _, row := range rows {
		name := GroupFromPath(row.Path)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Aggregate{Name: name})
		}
		groups[i].Covered += row.Covered
		groups[i].Total += row.Total
	}
	return groups
}

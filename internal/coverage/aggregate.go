// Package coverage folds JaCoCo class rows into an aggregated report and
// classifies the result.
package coverage

import (
	"sort"

	"github.com/coverage-tools/covreport/internal/jacoco"
)

// Report is the aggregated view of a JaCoCo CSV report.
type Report struct {
	// Percentages, 0..100.
	Instruction float64
	Branch      float64
	Line        float64
	Method      float64

	TotalLines     int
	CoveredLines   int
	TotalMethods   int
	CoveredMethods int

	// Classes is ordered ascending by line coverage, ties in input order.
	Classes ClassCoverageList
}

// UncoveredLines is TotalLines - CoveredLines.
func (r *Report) UncoveredLines() int {
	return r.TotalLines - r.CoveredLines
}

// Percent returns covered/(missed+covered)*100, or 0 when there is nothing
// to measure.
func Percent(c jacoco.Counter) float64 {
	total := c.Total()
	if total <= 0 {
		return 0
	}
	return float64(c.Covered) / float64(total) * 100
}

// Aggregate sums the counters of all rows and builds the per class line
// coverage list. Rows without lines are left out of the list.
func Aggregate(rows []jacoco.CoverageRow) *Report {
	var instruction, branch, line, method jacoco.Counter
	classes := ClassCoverageList{}

	for _, row := range rows {
		instruction = add(instruction, row.Instruction)
		branch = add(branch, row.Branch)
		line = add(line, row.Line)
		method = add(method, row.Method)

		if lines := row.Line.Total(); lines > 0 {
			classes = append(classes, ClassCoverage{
				Package:  row.Package,
				Class:    row.Class,
				Coverage: Percent(row.Line),
				Lines:    lines,
			})
		}
	}
	sort.Stable(classes)

	return &Report{
		Instruction:    Percent(instruction),
		Branch:         Percent(branch),
		Line:           Percent(line),
		Method:         Percent(method),
		TotalLines:     line.Total(),
		CoveredLines:   line.Covered,
		TotalMethods:   method.Total(),
		CoveredMethods: method.Covered,
		Classes:        classes,
	}
}

func add(a, b jacoco.Counter) jacoco.Counter {
	return jacoco.Counter{Missed: a.Missed + b.Missed, Covered: a.Covered + b.Covered}
}

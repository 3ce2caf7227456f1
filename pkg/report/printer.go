package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/coverage-tools/covreport/internal/coverage"
)

const ruleWidth = 60

// PrintOptions controls the optional parts of the report.
type PrintOptions struct {
	// HTMLReport is the path of the JaCoCo HTML report shown at the end.
	HTMLReport string
	// Verbose adds the class coverage distribution.
	Verbose bool
	NoColor bool
}

// PrintableReport is the data rendered by reportTemplate.
type PrintableReport struct {
	Report       *coverage.Report
	Grade        coverage.Grade
	Distribution *coverage.Distribution
	Low          []coverage.ClassCoverage
	High         []coverage.ClassCoverage
	Suggestions  []string
	HTMLReport   string
}

var reportTemplate = `
{{ rule "=" }}
{{ title "📊 Test Coverage Report" }}
{{ rule "=" }}

Overall coverage:
  Instruction: {{ pct .Report.Instruction }}
  Branch:      {{ pct .Report.Branch }}
  Line:        {{ pct .Report.Line }}
  Method:      {{ pct .Report.Method }}

Details:
  Total lines:    {{ .Report.TotalLines }}
  Covered:        {{ .Report.CoveredLines }}
  Uncovered:      {{ .Report.UncoveredLines }}
  Total methods:  {{ .Report.TotalMethods }}
  Tested methods: {{ .Report.CoveredMethods }}
{{- if .Distribution }}

Distribution:
  Classes measured: {{ .Distribution.Classes }}
  Mean coverage:    {{ pct .Distribution.Mean }}
  Median coverage:  {{ pct .Distribution.Median }}
{{- end }}

Overall grade: {{ .Grade.Marker }} {{ grade (printf "%s - %s" (pct .Report.Line) .Grade.Label) }}

{{ rule "-" }}
{{ title "🔴 Classes that need better coverage (< 50%)" }}
{{ rule "-" }}
{{- range .Low }}
{{ row . }}
{{- else }}
  ✅ No low coverage classes!
{{- end }}

{{ rule "-" }}
{{ title "🟢 Classes with the highest coverage (> 80%)" }}
{{ rule "-" }}
{{- range .High }}
{{ row . }}
{{- else }}
  No high coverage classes yet
{{- end }}

{{ rule "=" }}
{{ title "💡 Next steps:" }}
{{ rule "=" }}
{{- range $i, $s := .Suggestions }}
  {{ inc $i }}. {{ $s }}
{{- end }}

📁 Detailed report: {{ .HTMLReport }}
{{ rule "=" }}

`

// NewPrintableReport selects the classes and texts shown for r.
func NewPrintableReport(r *coverage.Report, opts PrintOptions) PrintableReport {
	pr := PrintableReport{
		Report:      r,
		Grade:       coverage.GradeFor(r.Line),
		Low:         r.LowCoverage(coverage.ListLimit),
		High:        r.HighCoverage(coverage.ListLimit),
		Suggestions: coverage.SuggestionsFor(r.Line),
		HTMLReport:  opts.HTMLReport,
	}
	if opts.Verbose {
		d := r.Distribution()
		pr.Distribution = &d
	}
	return pr
}

// Print renders r as text into w.
func Print(w io.Writer, r *coverage.Report, opts PrintOptions) error {
	pr := NewPrintableReport(r, opts)
	tmpl, err := template.New("report").Funcs(templateFuncs(pr.Grade, opts.NoColor)).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, pr)
}

// FormatClassRow formats one class line of the low/high coverage lists.
func FormatClassRow(c coverage.ClassCoverage) string {
	return fmt.Sprintf("  %5.1f%% | %-20s | %s", c.Coverage, c.ShortPackage(), c.Class)
}

func templateFuncs(g coverage.Grade, noColor bool) template.FuncMap {
	title := color.New(color.Bold)
	grade := color.New(gradeColor(g), color.Bold)
	if noColor {
		title.DisableColor()
		grade.DisableColor()
	}
	return template.FuncMap{
		"rule":  func(s string) string { return strings.Repeat(s, ruleWidth) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"row":   FormatClassRow,
		"inc":   func(i int) int { return i + 1 },
		"title": title.Sprint,
		"grade": grade.Sprint,
	}
}

func gradeColor(g coverage.Grade) color.Attribute {
	switch g {
	case coverage.GradeExcellent, coverage.GradeGood:
		return color.FgGreen
	case coverage.GradePassing:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

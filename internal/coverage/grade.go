package coverage

// Grade is the overall rating given to the line coverage.
type Grade struct {
	Label  string
	Marker string
}

var (
	GradeExcellent        = Grade{Label: "excellent", Marker: "✅"}
	GradeGood             = Grade{Label: "good", Marker: "✅"}
	GradePassing          = Grade{Label: "passing", Marker: "⚠️"}
	GradeNeedsImprovement = Grade{Label: "needs improvement", Marker: "❌"}
)

// Lower bounds, inclusive, of each grade band.
const (
	ExcellentThreshold = 80.0
	GoodThreshold      = 70.0
	PassingThreshold   = 50.0
)

// GradeFor rates a line coverage percentage.
func GradeFor(lineCoverage float64) Grade {
	switch {
	case lineCoverage >= ExcellentThreshold:
		return GradeExcellent
	case lineCoverage >= GoodThreshold:
		return GradeGood
	case lineCoverage >= PassingThreshold:
		return GradePassing
	default:
		return GradeNeedsImprovement
	}
}

var (
	suggestionsLow = []string{
		"Write unit tests for the service layer",
		"Add error case tests for the controllers",
		"Increase test coverage of the utility classes",
	}
	suggestionsMedium = []string{
		"Add boundary condition tests",
		"Increase branch coverage",
		"Test the exception handling logic",
	}
	suggestionsHigh = []string{
		"Keep the current test quality",
		"Add tests for new features",
		"Review the test cases regularly",
	}
)

// SuggestionsFor returns the next steps recommended for a line coverage.
func SuggestionsFor(lineCoverage float64) []string {
	var s []string
	switch {
	case lineCoverage < GoodThreshold:
		s = suggestionsLow
	case lineCoverage < ExcellentThreshold:
		s = suggestionsMedium
	default:
		s = suggestionsHigh
	}
	return append([]string(nil), s...)
}

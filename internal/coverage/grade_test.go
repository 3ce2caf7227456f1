package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		coverage float64
		want     Grade
	}{
		{100, GradeExcellent},
		{80.00, GradeExcellent},
		{79.99, GradeGood},
		{70.00, GradeGood},
		{69.99, GradePassing},
		{50.00, GradePassing},
		{49.99, GradeNeedsImprovement},
		{0, GradeNeedsImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.coverage), "coverage %.2f", tt.coverage)
	}
}

func TestSuggestionsFor(t *testing.T) {
	assert.Equal(t, suggestionsLow, SuggestionsFor(0))
	assert.Equal(t, suggestionsLow, SuggestionsFor(69.99))
	assert.Equal(t, suggestionsMedium, SuggestionsFor(70))
	assert.Equal(t, suggestionsMedium, SuggestionsFor(79.99))
	assert.Equal(t, suggestionsHigh, SuggestionsFor(80))
	assert.Equal(t, suggestionsHigh, SuggestionsFor(100))

	for _, c := range []float64{10, 75, 95} {
		assert.Len(t, SuggestionsFor(c), 3)
	}
}

func TestSuggestionsForReturnsCopy(t *testing.T) {
	s := SuggestionsFor(90)
	s[0] = "changed"
	assert.NotEqual(t, "changed", SuggestionsFor(90)[0])
}

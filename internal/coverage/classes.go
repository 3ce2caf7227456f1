package coverage

import (
	"strings"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
)

// ClassCoverage is the line coverage of a single class.
type ClassCoverage struct {
	Package  string
	Class    string
	Coverage float64
	Lines    int
}

// ShortPackage returns the last segment of the package name.
func (c ClassCoverage) ShortPackage() string {
	return ShortPackage(c.Package)
}

// ShortPackage returns the last dot separated segment of pkg.
func ShortPackage(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// ClassCoverageList implements sort.Interface ranking classes by coverage.
type ClassCoverageList []ClassCoverage

func (p ClassCoverageList) Len() int           { return len(p) }
func (p ClassCoverageList) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p ClassCoverageList) Less(i, j int) bool { return p[i].Coverage < p[j].Coverage }

// Thresholds used to pick classes worth listing.
const (
	LowCoverageThreshold  = 50.0
	LowCoverageMinLines   = 5
	HighCoverageThreshold = 80.0

	// ListLimit is the number of classes shown per list.
	ListLimit = 10
)

// LowCoverage returns the classes under LowCoverageThreshold with more than
// LowCoverageMinLines lines, lowest first, at most limit entries.
func (r *Report) LowCoverage(limit int) []ClassCoverage {
	low := []ClassCoverage{}
	for _, c := range r.Classes {
		if len(low) >= limit {
			break
		}
		if c.Coverage < LowCoverageThreshold && c.Lines > LowCoverageMinLines {
			low = append(low, c)
		}
	}
	return low
}

// HighCoverage returns the last limit classes above HighCoverageThreshold,
// highest first.
func (r *Report) HighCoverage(limit int) []ClassCoverage {
	high := []ClassCoverage{}
	for _, c := range r.Classes {
		if c.Coverage > HighCoverageThreshold {
			high = append(high, c)
		}
	}
	if len(high) > limit {
		high = high[len(high)-limit:]
	}
	for i, j := 0, len(high)-1; i < j; i, j = i+1, j-1 {
		high[i], high[j] = high[j], high[i]
	}
	return high
}

// Distribution summarizes the per class line coverage.
type Distribution struct {
	Classes int
	Mean    float64
	Median  float64
}

// Distribution computes mean and median line coverage over the measured
// classes. Both are 0 when no class has lines.
func (r *Report) Distribution() Distribution {
	d := Distribution{Classes: len(r.Classes)}
	if d.Classes == 0 {
		return d
	}
	data := make(stats.Float64Data, 0, len(r.Classes))
	for _, c := range r.Classes {
		data = append(data, c.Coverage)
	}
	var err error
	if d.Mean, err = data.Mean(); err != nil {
		log.Debugf("unable to compute mean class coverage: %v", err)
	}
	if d.Median, err = data.Median(); err != nil {
		log.Debugf("unable to compute median class coverage: %v", err)
	}
	return d
}

// Package jacoco reads the CSV report produced by the JaCoCo maven/gradle
// report goal (target/site/jacoco/jacoco.csv).
package jacoco

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Column names of the JaCoCo CSV header.
const (
	ColumnGroup              = "GROUP"
	ColumnPackage            = "PACKAGE"
	ColumnClass              = "CLASS"
	ColumnInstructionMissed  = "INSTRUCTION_MISSED"
	ColumnInstructionCovered = "INSTRUCTION_COVERED"
	ColumnBranchMissed       = "BRANCH_MISSED"
	ColumnBranchCovered      = "BRANCH_COVERED"
	ColumnLineMissed         = "LINE_MISSED"
	ColumnLineCovered        = "LINE_COVERED"
	ColumnMethodMissed       = "METHOD_MISSED"
	ColumnMethodCovered      = "METHOD_COVERED"
)

// RequiredColumns must all be present in the header. Order does not matter.
var RequiredColumns = []string{
	ColumnClass,
	ColumnPackage,
	ColumnInstructionMissed,
	ColumnInstructionCovered,
	ColumnBranchMissed,
	ColumnBranchCovered,
	ColumnLineMissed,
	ColumnLineCovered,
	ColumnMethodMissed,
	ColumnMethodCovered,
}

// ErrReportNotFound is returned by Load when the report file does not exist.
var ErrReportNotFound = errors.New("coverage report not found")

// Counter holds the missed/covered pair of one JaCoCo counter type.
type Counter struct {
	Missed  int
	Covered int
}

// Total is Missed + Covered.
func (c Counter) Total() int {
	return c.Missed + c.Covered
}

// CoverageRow is one class record of the report.
type CoverageRow struct {
	Package     string
	Class       string
	Instruction Counter
	Branch      Counter
	Line        Counter
	Method      Counter
}

// ParseError reports a malformed header or row.
type ParseError struct {
	// Line is the 1-based record number, the header being line 1.
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load opens the report at path on fs and parses it.
func Load(fs afero.Fs, path string) ([]CoverageRow, error) {
	fd, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrReportNotFound, path)
		}
		return nil, errors.Wrapf(err, "unable to open coverage report %s", path)
	}
	defer fd.Close()

	rows, err := Parse(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse coverage report %s", path)
	}
	log.Debugf("Loaded %d rows from %s", len(rows), path)
	return rows, nil
}

// Parse decodes a JaCoCo CSV stream. The first record is the header.
func Parse(r io.Reader) ([]CoverageRow, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("empty report, header row is missing")}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	rows := []CoverageRow{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		row, err := decodeRow(record, index, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// headerIndex maps each required column to its position in the header.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[name] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{Line: 1, Column: col, Err: errors.New("required column is missing")}
		}
	}
	return index, nil
}

func decodeRow(record []string, index map[string]int, line int) (CoverageRow, error) {
	var firstErr error
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			if firstErr == nil {
				firstErr = &ParseError{Line: line, Column: col, Err: errors.New("field is missing")}
			}
			return ""
		}
		return record[i]
	}
	counter := func(col string) int {
		raw := field(col)
		if firstErr != nil {
			return 0
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			firstErr = &ParseError{Line: line, Column: col, Err: errors.Errorf("invalid counter %q", raw)}
			return 0
		}
		if v < 0 {
			firstErr = &ParseError{Line: line, Column: col, Err: errors.Errorf("negative counter %d", v)}
			return 0
		}
		return v
	}

	row := CoverageRow{
		Package:     field(ColumnPackage),
		Class:       field(ColumnClass),
		Instruction: Counter{Missed: counter(ColumnInstructionMissed), Covered: counter(ColumnInstructionCovered)},
		Branch:      Counter{Missed: counter(ColumnBranchMissed), Covered: counter(ColumnBranchCovered)},
		Line:        Counter{Missed: counter(ColumnLineMissed), Covered: counter(ColumnLineCovered)},
		Method:      Counter{Missed: counter(ColumnMethodMissed), Covered: counter(ColumnMethodCovered)},
	}
	if firstErr != nil {
		return CoverageRow{}, firstErr
	}
	return row, nil
}

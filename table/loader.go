package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmptyInput is returned when the input contains a header but no data
// rows, or nothing at all.
var ErrEmptyInput = errors.New("table: input contains no data rows")

// ParseError reports malformed tabular input. Line is 1-based and counts the
// header; 0 means the position is unknown.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("table: parse error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("table: parse error: %s", e.Reason)
}

// absentMarkers are cell values treated as "no value", compared
// case-insensitively after trimming.
var absentMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"-":    true,
}

func isAbsent(cell string) bool {
	return absentMarkers[strings.ToLower(strings.TrimSpace(cell))]
}

// LoadCSV parses delimited text into a Table. The first record is the
// header. Ragged rows yield a *ParseError and no Table is returned, even
// partially populated. A header with zero data rows yields ErrEmptyInput.
//
// Column types are inferred per column: numeric if every non-absent cell
// parses as a number, text otherwise. Absent cells keep an explicit marker
// rather than being coerced to zero or "".
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // raggedness is checked manually for better errors

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Reason: err.Error()}
	}

	names := make([]string, len(header))
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		// Duplicate headers get a numeric suffix so names stay unique.
		base := name
		for n := 2; ; n++ {
			if _, taken := byName[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		names[i] = name
		byName[name] = i
	}

	raw := make([][]string, len(header))
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Reason: err.Error()}
		}
		if len(rec) != len(header) {
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("row has %d fields, header has %d", len(rec), len(header)),
			}
		}
		for i, cell := range rec {
			raw[i] = append(raw[i], strings.TrimSpace(cell))
		}
	}

	if line == 1 {
		return nil, ErrEmptyInput
	}
	rows := line - 1

	t := &Table{byName: byName, rows: rows}
	for i, name := range names {
		t.cols = append(t.cols, buildColumn(name, raw[i]))
	}
	return t, nil
}

// buildColumn infers the column kind and materializes values. A column with
// only absent cells stays text.
func buildColumn(name string, cells []string) *Column {
	col := &Column{
		Name:  name,
		text:  cells,
		valid: make([]bool, len(cells)),
	}

	nums := make([]float64, len(cells))
	numeric, any := true, false
	for i, cell := range cells {
		if isAbsent(cell) {
			continue
		}
		col.valid[i] = true
		any = true
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			numeric = false
			continue
		}
		nums[i] = v
	}

	if numeric && any {
		col.Kind = KindNumeric
		col.nums = nums
	}
	return col
}

// Package table holds the in-memory columnar representation of an uploaded
// dataset. A Table is built once per loaded file and is immutable afterwards;
// everything downstream (aggregation, filtering, charting) reads from it
// without copying row data.
package table

import (
	"fmt"
	"strconv"
)

// Kind classifies a column's values.
type Kind int

const (
	// KindText covers categorical and free-text columns.
	KindText Kind = iota
	// KindNumeric means every non-absent cell parses as a number.
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a homogeneous sequence of values aligned by row index.
// Absent cells are tracked explicitly via the validity slice so that
// aggregations can distinguish "zero" from "no value".
type Column struct {
	Name string
	Kind Kind

	nums  []float64 // populated when Kind == KindNumeric
	text  []string  // raw cell text, kept for both kinds
	valid []bool    // false = absent cell
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.text) }

// Absent reports whether the cell at row i holds no value.
func (c *Column) Absent(i int) bool { return !c.valid[i] }

// Number returns the numeric value at row i. The second return is false
// for absent cells and for text columns.
func (c *Column) Number(i int) (float64, bool) {
	if c.Kind != KindNumeric || !c.valid[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Text returns the raw cell text at row i ("" for absent cells).
func (c *Column) Text(i int) string {
	if !c.valid[i] {
		return ""
	}
	return c.text[i]
}

// Table is an ordered sequence of named columns of equal length.
type Table struct {
	cols   []*Column
	byName map[string]int
	rows   int
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in file order.
func (t *Table) Columns() []*Column { return t.cols }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[idx], true
}

// ColumnNames returns all column names in file order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Cell returns the display text for a cell, formatting numerics without
// trailing zeros. Absent cells render as "".
func (t *Table) Cell(row int, col *Column) string {
	if col.Absent(row) {
		return ""
	}
	if col.Kind == KindNumeric {
		return strconv.FormatFloat(col.nums[row], 'f', -1, 64)
	}
	return col.text[row]
}

// ColumnSchema describes one column for the reasoning oracle. Sample values
// are only collected for text columns and are capped, so the oracle never
// sees the full dataset.
type ColumnSchema struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Samples []string `json:"samples,omitempty"`
}

// Schema describes the table shape: column names, kinds, row count and a few
// sample values per text column.
type Schema struct {
	Rows    int            `json:"rows"`
	Columns []ColumnSchema `json:"columns"`
}

const maxSchemaSamples = 8

// Schema summarizes the table for prompt assembly.
func (t *Table) Schema() Schema {
	s := Schema{Rows: t.rows}
	for _, c := range t.cols {
		cs := ColumnSchema{Name: c.Name, Kind: c.Kind.String()}
		if c.Kind == KindText {
			seen := make(map[string]bool)
			for i := 0; i < c.Len() && len(cs.Samples) < maxSchemaSamples; i++ {
				v := c.Text(i)
				if v == "" || seen[v] {
					continue
				}
				seen[v] = true
				cs.Samples = append(cs.Samples, v)
			}
		}
		s.Columns = append(s.Columns, cs)
	}
	return s
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows, %d columns)", t.rows, len(t.cols))
}

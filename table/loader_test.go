package table

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	input := strings.Join([]string{
		"region,units,product",
		"north,10,widget",
		"south,20,gadget",
		"north,NA,widget",
		"east,5,widget",
	}, "\n")

	tbl, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if tbl.NumRows() != 4 {
		t.Errorf("NumRows() = %d, want 4", tbl.NumRows())
	}
	if tbl.NumCols() != 3 {
		t.Errorf("NumCols() = %d, want 3", tbl.NumCols())
	}

	units, ok := tbl.Column("units")
	if !ok {
		t.Fatal("Column(units) not found")
	}
	if units.Kind != KindNumeric {
		t.Errorf("units kind = %s, want numeric", units.Kind)
	}
	if !units.Absent(2) {
		t.Error("units row 2 should be absent (NA marker)")
	}
	if v, ok := units.Number(1); !ok || v != 20 {
		t.Errorf("units row 1 = %v, %v; want 20, true", v, ok)
	}
	if _, ok := units.Number(2); ok {
		t.Error("Number() on absent cell should report false")
	}

	region, _ := tbl.Column("region")
	if region.Kind != KindText {
		t.Errorf("region kind = %s, want text", region.Kind)
	}
}

func TestLoadCSVRaggedRow(t *testing.T) {
	input := "a,b\n1,2\n3\n"

	tbl, err := LoadCSV(strings.NewReader(input))
	if tbl != nil {
		t.Error("ragged input should not produce a table, even partially")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", pe.Line)
	}
}

func TestLoadCSVEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no content", ""},
		{"header only", "a,b,c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("error = %v, want ErrEmptyInput", err)
			}
		})
	}
}

func TestLoadCSVDuplicateHeaders(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("a,a,a\n1,2,3\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	got := tbl.ColumnNames()
	want := []string{"a", "a_2", "a_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadCSVAbsentMarkers(t *testing.T) {
	tests := []struct {
		cell   string
		absent bool
	}{
		{"", true},
		{"NA", true},
		{"n/a", true},
		{"NULL", true},
		{"-", true},
		{"  na  ", true},
		{"0", false},
		{"none", false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			if got := isAbsent(tt.cell); got != tt.absent {
				t.Errorf("isAbsent(%q) = %v, want %v", tt.cell, got, tt.absent)
			}
		})
	}
}

func TestLoadCSVTypeInference(t *testing.T) {
	tests := []struct {
		name  string
		cells string
		want  Kind
	}{
		{"all numeric", "1\n2.5\n-3", KindNumeric},
		{"numeric with absent", "1\nNA\n3", KindNumeric},
		{"mixed", "1\ntwo\n3", KindText},
		{"all absent stays text", "NA\n\nnull", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := LoadCSV(strings.NewReader("v\n" + tt.cells + "\n"))
			if err != nil {
				t.Fatalf("LoadCSV() error = %v", err)
			}
			col, _ := tbl.Column("v")
			if col.Kind != tt.want {
				t.Errorf("kind = %s, want %s", col.Kind, tt.want)
			}
		})
	}
}

func TestCellFormatting(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("v\n1.50\n2\nNA\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	col, _ := tbl.Column("v")

	if got := tbl.Cell(0, col); got != "1.5" {
		t.Errorf("Cell(0) = %q, want %q", got, "1.5")
	}
	if got := tbl.Cell(1, col); got != "2" {
		t.Errorf("Cell(1) = %q, want %q", got, "2")
	}
	if got := tbl.Cell(2, col); got != "" {
		t.Errorf("Cell(2) = %q, want empty for absent", got)
	}
}

func TestSchema(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("region,units\nnorth,1\nsouth,2\nnorth,3\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	s := tbl.Schema()
	if s.Rows != 3 {
		t.Errorf("Schema.Rows = %d, want 3", s.Rows)
	}
	if len(s.Columns) != 2 {
		t.Fatalf("Schema.Columns length = %d, want 2", len(s.Columns))
	}

	region := s.Columns[0]
	if region.Kind != "text" {
		t.Errorf("region kind = %q, want text", region.Kind)
	}
	// Samples deduplicate, so "north" appears once.
	if len(region.Samples) != 2 {
		t.Errorf("region samples = %v, want 2 distinct values", region.Samples)
	}

	units := s.Columns[1]
	if len(units.Samples) != 0 {
		t.Errorf("numeric column should carry no samples, got %v", units.Samples)
	}
}

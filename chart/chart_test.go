package chart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabla/table"
)

func loadTestView(t *testing.T) *table.View {
	t.Helper()
	input := strings.Join([]string{
		"region,units,temp",
		"north,10,-3",
		"south,20,8",
		"north,NA,1",
		"east,5,4",
	}, "\n")
	tbl, err := table.LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	return table.NewView(tbl)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		if got, ok := ParseKind(string(k)); !ok || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, ok)
		}
	}
	if _, ok := ParseKind("histogram"); ok {
		t.Error("ParseKind(histogram) should fail")
	}
}

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "missing x column",
			req:  Request{Kind: KindBar, X: "area", Y: "units"},
			want: `x column "area" does not exist`,
		},
		{
			name: "missing y column",
			req:  Request{Kind: KindBar, X: "region", Y: "revenue"},
			want: `y column "revenue" does not exist`,
		},
		{
			name: "text y column",
			req:  Request{Kind: KindLine, X: "region", Y: "region"},
			want: "is not numeric",
		},
		{
			name: "missing group column",
			req:  Request{Kind: KindLine, X: "region", Y: "units", Group: "country"},
			want: `group column "country" does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(t.TempDir())
			if err != nil {
				t.Fatalf("NewRenderer() error = %v", err)
			}

			_, err = r.Render(loadTestView(t), tt.req)
			var re *RenderError
			if !errors.As(err, &re) {
				t.Fatalf("error = %v, want *RenderError", err)
			}
			if !strings.Contains(re.Reason, tt.want) {
				t.Errorf("Reason = %q, want substring %q", re.Reason, tt.want)
			}
		})
	}
}

func TestRenderEmptyView(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	v := loadTestView(t)
	empty := v.Select(func(int) bool { return false })

	_, err = r.Render(empty, Request{Kind: KindBar, X: "region", Y: "units"})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RenderError for empty view", err)
	}
}

func TestRenderBar(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	path, err := r.Render(loadTestView(t), Request{Kind: KindBar, X: "region", Y: "units"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("chart written to %q, want directory %q", path, dir)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRenderScatterNegativeValues(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	// Scatter must accept negative y values (pie cannot).
	if _, err := r.Render(loadTestView(t), Request{Kind: KindScatter, X: "units", Y: "temp"}); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}

func TestRenderPieRejectsNegative(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	_, err = r.Render(loadTestView(t), Request{Kind: KindPie, X: "region", Y: "temp"})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RenderError for negative slice", err)
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	path, err := r.Render(loadTestView(t), Request{Kind: KindBar, X: "region", Y: "units"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	r.Prune()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Prune() left %q in place", path)
	}
}

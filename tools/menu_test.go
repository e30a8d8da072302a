package tools

import (
	"strings"
	"testing"
)

func TestMenu(t *testing.T) {
	menu := Menu(loadTestTable(t))
	if len(menu) != 4 {
		t.Fatalf("menu length = %d, want 4", len(menu))
	}

	byName := map[string]int{}
	for i, tool := range menu {
		byName[tool.Name] = i
	}
	for _, name := range []string{"aggregate", "filter_group", "chart", "finish"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("menu missing tool %q", name)
		}
	}

	// Column names are baked in as enums.
	agg := menu[byName["aggregate"]]
	col, ok := agg.InputSchema.Properties["column"].(map[string]any)
	if !ok {
		t.Fatal("aggregate column property missing")
	}
	enum, ok := col["enum"].([]string)
	if !ok {
		t.Fatalf("column enum = %T, want []string", col["enum"])
	}
	if len(enum) != 3 || enum[0] != "region" {
		t.Errorf("column enum = %v", enum)
	}

	// Numeric columns are named in the chart description.
	chartTool := menu[byName["chart"]]
	if !strings.Contains(chartTool.Description, "units") {
		t.Errorf("chart description does not name numeric columns: %q", chartTool.Description)
	}

	// Every tool is a well-formed object schema.
	for _, tool := range menu {
		if tool.InputSchema.Type != "object" {
			t.Errorf("%s schema type = %q", tool.Name, tool.InputSchema.Type)
		}
	}
}

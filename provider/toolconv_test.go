package provider

import (
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func sampleTools() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        "aggregate",
			Description: "Compute a statistic over one column",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"column": map[string]any{
						"type":        "string",
						"description": "Column to aggregate",
						"enum":        []string{"region", "units"},
					},
					"operation": map[string]any{
						"type": "string",
						"enum": []any{"sum", "mean", "count"},
					},
				},
				Required: []string{"column", "operation"},
			},
		},
		{
			Name:        "finish",
			Description: "Deliver the final answer",
			InputSchema: mcptypes.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{"answer": map[string]any{"type": "string"}},
				Required:   []string{"answer"},
			},
		},
	}
}

func TestConvertToolsToOllamaFormat(t *testing.T) {
	if got := ConvertToolsToOllamaFormat(nil); got != nil {
		t.Errorf("nil input should return nil, got %v", got)
	}

	result := ConvertToolsToOllamaFormat(sampleTools())
	if len(result) != 2 {
		t.Fatalf("length = %d, want 2", len(result))
	}

	agg := result[0]
	if agg.Type != "function" {
		t.Errorf("Type = %q, want function", agg.Type)
	}
	if agg.Function.Name != "aggregate" {
		t.Errorf("Name = %q", agg.Function.Name)
	}
	if len(agg.Function.Parameters.Required) != 2 {
		t.Errorf("Required = %v", agg.Function.Parameters.Required)
	}

	col, ok := agg.Function.Parameters.Properties["column"]
	if !ok {
		t.Fatal("column property missing")
	}
	if col.Description != "Column to aggregate" {
		t.Errorf("Description = %q", col.Description)
	}
	// Enums arrive as []string from our menu builder and as []any from
	// decoded JSON; both must convert.
	if len(col.Enum) != 2 {
		t.Errorf("column Enum = %v, want 2 entries", col.Enum)
	}
	op := agg.Function.Parameters.Properties["operation"]
	if len(op.Enum) != 3 {
		t.Errorf("operation Enum = %v, want 3 entries", op.Enum)
	}
}

func TestConvertToolsToOpenAIFormat(t *testing.T) {
	if got := ConvertToolsToOpenAIFormat(nil); got != nil {
		t.Errorf("nil input should return nil, got %v", got)
	}

	result := ConvertToolsToOpenAIFormat(sampleTools())
	if len(result) != 2 {
		t.Fatalf("length = %d, want 2", len(result))
	}

	fn := result[0].OfFunction
	if fn == nil {
		t.Fatal("OfFunction is nil")
	}
	if fn.Function.Name != "aggregate" {
		t.Errorf("Name = %q", fn.Function.Name)
	}
	params := fn.Function.Parameters
	if params["type"] != "object" {
		t.Errorf("params type = %v", params["type"])
	}
	if _, ok := params["required"]; !ok {
		t.Error("required missing from parameters")
	}
}

func TestConvertToolsToAnthropicFormat(t *testing.T) {
	if got := ConvertToolsToAnthropicFormat(nil); got != nil {
		t.Errorf("nil input should return nil, got %v", got)
	}

	result := ConvertToolsToAnthropicFormat(sampleTools())
	if len(result) != 2 {
		t.Fatalf("length = %d, want 2", len(result))
	}

	tool := result[0].OfTool
	if tool == nil {
		t.Fatal("OfTool is nil")
	}
	if tool.Name != "aggregate" {
		t.Errorf("Name = %q", tool.Name)
	}
	if tool.Description.Value != "Compute a statistic over one column" {
		t.Errorf("Description = %q", tool.Description.Value)
	}
	if len(tool.InputSchema.Required) != 2 {
		t.Errorf("Required = %v", tool.InputSchema.Required)
	}
}

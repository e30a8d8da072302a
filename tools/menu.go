package tools

import (
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"tabla/chart"
	"tabla/table"
)

// Menu returns the tool definitions advertised to the reasoning oracle for
// the given table. Column enums are baked into the schemas so the oracle
// picks from real names instead of guessing.
func Menu(t *table.Table) []mcptypes.Tool {
	names := t.ColumnNames()
	var numeric []string
	for _, c := range t.Columns() {
		if c.Kind == table.KindNumeric {
			numeric = append(numeric, c.Name)
		}
	}

	chartKinds := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		chartKinds[i] = string(k)
	}

	return []mcptypes.Tool{
		{
			Name: string(KindAggregate),
			Description: "Compute a statistic over one column of the current working view. " +
				"Absent cells are excluded, never treated as zero. " +
				"top_k returns the K largest groups of 'by' ranked by the summed column " +
				"(or the K most frequent values when 'by' is omitted and the column is text).",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"column": map[string]any{
						"type":        "string",
						"description": "Column to aggregate.",
						"enum":        names,
					},
					"operation": map[string]any{
						"type": "string",
						"enum": []string{"sum", "mean", "count", "min", "max", "top_k"},
					},
					"k": map[string]any{
						"type":        "integer",
						"description": "Number of entries for top_k (default 5).",
					},
					"by": map[string]any{
						"type":        "string",
						"description": "Label column to rank by for top_k.",
						"enum":        names,
					},
				},
				Required: []string{"column", "operation"},
			},
		},
		{
			Name: string(KindFilterGroup),
			Description: "Filter the working view with a predicate, or summarize group sizes. " +
				"Filtering derives a new working view used by later tool calls; the original table is never changed. " +
				"Set group_by alone to list the distinct values of a column with their row counts.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"column": map[string]any{
						"type": "string",
						"enum": names,
					},
					"predicate": map[string]any{
						"type": "string",
						"enum": []string{"equals", "not_equals", "contains", "gt", "gte", "lt", "lte"},
					},
					"value": map[string]any{
						"type":        "string",
						"description": "Comparison value. Numeric predicates parse it as a number.",
					},
					"group_by": map[string]any{
						"type": "string",
						"enum": names,
					},
				},
			},
		},
		{
			Name: string(KindChart),
			Description: fmt.Sprintf("Render a chart over the working view and save it as a PNG. "+
				"The y column must be numeric (numeric columns: %s). "+
				"bar and pie sum y per distinct x value; line and scatter plot raw points.",
				strings.Join(numeric, ", ")),
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"kind": map[string]any{
						"type": "string",
						"enum": chartKinds,
					},
					"x": map[string]any{
						"type": "string",
						"enum": names,
					},
					"y": map[string]any{
						"type": "string",
						"enum": names,
					},
					"group": map[string]any{
						"type":        "string",
						"description": "Optional column producing one series per value (line/scatter).",
						"enum":        names,
					},
					"title": map[string]any{
						"type": "string",
					},
				},
				Required: []string{"kind", "x", "y"},
			},
		},
		{
			Name: string(KindFinish),
			Description: "Finish the turn with the final answer for the user. " +
				"Use Markdown. If you rendered a chart, describe what it shows and mention that it was saved.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"answer": map[string]any{
						"type":        "string",
						"description": "The final answer text.",
					},
				},
				Required: []string{"answer"},
			},
		},
	}
}

package agent

import (
	"fmt"
	"strings"

	"tabla/table"
)

// BuildSystemPrompt assembles the oracle's system instruction from the table
// schema. Only column names, kinds, the row count and a handful of sample
// values go into the prompt; the data itself never does.
func BuildSystemPrompt(s table.Schema) string {
	var b strings.Builder

	b.WriteString("You are a data analyst answering questions about a single tabular dataset.\n")
	b.WriteString("You cannot see the raw rows. You work exclusively through the provided tools:\n")
	b.WriteString("aggregate to compute statistics, filter_group to narrow or summarize rows,\n")
	b.WriteString("chart to render a visualization, and finish to deliver the final answer.\n\n")

	fmt.Fprintf(&b, "The dataset has %d rows and %d columns:\n", s.Rows, len(s.Columns))
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "  - %s (%s)", c.Name, c.Kind)
		if len(c.Samples) > 0 {
			fmt.Fprintf(&b, ", e.g. %s", strings.Join(c.Samples, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.TrimLeft(`
Rules:
- Decide which tool advances the analysis, call it, and inspect the result
  before the next step. Filters accumulate on a working subset of rows.
- If a tool reports an error, read the message, correct the arguments and
  try again rather than giving up.
- Render a chart only when the question asks for one or a visual genuinely
  helps; mention the chart in your answer when you do.
- When you have the answer, call finish with a concise response in Markdown.
  State concrete numbers from the tool results. Never invent values.
`, "\n"))

	return b.String()
}

package agent

import (
	"testing"

	"tabla/model"
	"tabla/tools"
)

func TestSummarizeStep(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{
			name: "successful call with sorted args",
			step: Step{
				Call: model.ToolCall{Name: "aggregate", Arguments: map[string]any{
					"operation": "sum", "column": "units",
				}},
				Result: tools.Ok("sum(units) = 35"),
			},
			want: "aggregate(column=units, operation=sum) [ok]",
		},
		{
			name: "failed call shows error kind",
			step: Step{
				Call:   model.ToolCall{Name: "chart", Arguments: map[string]any{"kind": "bar"}},
				Result: tools.Errf(tools.ErrKindRender, "no rows"),
			},
			want: "chart(kind=bar) [render_error]",
		},
		{
			name: "no arguments",
			step: Step{
				Call:   model.ToolCall{Name: "finish"},
				Result: tools.Ok("done"),
			},
			want: "finish [ok]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeStep(tt.step); got != tt.want {
				t.Errorf("SummarizeStep() = %q, want %q", got, tt.want)
			}
		})
	}
}

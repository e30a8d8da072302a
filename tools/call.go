// Package tools defines the capability set exposed to the reasoning oracle
// and executes the calls it selects against the loaded table. The tool set
// is a closed tagged enumeration: adding a capability means adding a Kind,
// an argument struct, a menu entry and an executor branch, all checked at
// compile time.
package tools

import (
	"fmt"
	"strings"

	"tabla/model"
)

// Kind tags a tool call variant.
type Kind string

const (
	KindAggregate   Kind = "aggregate"
	KindFilterGroup Kind = "filter_group"
	KindChart       Kind = "chart"
	KindFinish      Kind = "finish"
)

// AggregateArgs computes a statistic over one column of the working view.
// Op "top_k" ranks groups of By (or distinct values of Column when By is
// empty) and returns the K largest.
type AggregateArgs struct {
	Column string
	Op     string // sum, mean, count, min, max, top_k
	K      int    // top_k only; defaults to 5
	By     string // top_k only; label column to rank by summed Column
}

// FilterGroupArgs derives a new working view (predicate mode) or summarizes
// group sizes (group mode). Exactly one of Predicate or GroupBy is used.
type FilterGroupArgs struct {
	Column    string
	Predicate string // equals, not_equals, contains, gt, gte, lt, lte
	Value     string
	GroupBy   string // when set, Column/Predicate/Value are ignored
}

// ChartArgs renders a chart over the working view.
type ChartArgs struct {
	Kind  string
	X     string
	Y     string
	Group string
	Title string
}

// FinishArgs terminates the turn with the given answer text.
type FinishArgs struct {
	Answer string
}

// Call is one decoded tool invocation. Exactly the field matching Kind is
// non-nil.
type Call struct {
	Kind        Kind
	Aggregate   *AggregateArgs
	FilterGroup *FilterGroupArgs
	Chart       *ChartArgs
	Finish      *FinishArgs
}

// knownTools distinguishes "bad arguments for a real tool" from "tool that
// does not exist" when classifying parse failures.
var knownTools = map[string]bool{
	string(KindAggregate):   true,
	string(KindFilterGroup): true,
	string(KindChart):       true,
	string(KindFinish):      true,
}

// Dispatch parses and executes one oracle tool call. Parse failures come
// back as Err results with the appropriate kind so the agent can feed them
// to the oracle like any other failed step.
func Dispatch(e *Executor, tc model.ToolCall) (Call, Result) {
	call, err := ParseCall(tc)
	if err != nil {
		kind := ErrKindInvalidArgument
		if !knownTools[tc.Name] {
			kind = ErrKindUnknownTool
		}
		return call, Errf(kind, "%s", err)
	}
	return call, e.Execute(call)
}

// ParseCall decodes an oracle tool call into a typed Call. Unknown tool
// names and malformed arguments return an error; the agent records it as a
// failed step rather than aborting the turn.
func ParseCall(tc model.ToolCall) (Call, error) {
	args := tc.Arguments
	switch tc.Name {
	case string(KindAggregate):
		a := &AggregateArgs{
			Column: argString(args, "column"),
			Op:     normalizeOp(argString(args, "operation")),
			K:      argInt(args, "k"),
			By:     argString(args, "by"),
		}
		if a.Column == "" {
			return Call{}, fmt.Errorf("aggregate: missing required argument %q", "column")
		}
		if a.Op == "" {
			return Call{}, fmt.Errorf("aggregate: missing required argument %q", "operation")
		}
		return Call{Kind: KindAggregate, Aggregate: a}, nil

	case string(KindFilterGroup):
		a := &FilterGroupArgs{
			Column:    argString(args, "column"),
			Predicate: strings.ToLower(argString(args, "predicate")),
			Value:     argString(args, "value"),
			GroupBy:   argString(args, "group_by"),
		}
		if a.GroupBy == "" && a.Column == "" {
			return Call{}, fmt.Errorf("filter_group: need either %q or %q", "column", "group_by")
		}
		if a.GroupBy == "" && a.Predicate == "" {
			a.Predicate = "equals"
		}
		return Call{Kind: KindFilterGroup, FilterGroup: a}, nil

	case string(KindChart):
		a := &ChartArgs{
			Kind:  argString(args, "kind"),
			X:     argString(args, "x"),
			Y:     argString(args, "y"),
			Group: argString(args, "group"),
			Title: argString(args, "title"),
		}
		if a.Kind == "" || a.X == "" || a.Y == "" {
			return Call{}, fmt.Errorf("chart: arguments %q, %q and %q are required", "kind", "x", "y")
		}
		return Call{Kind: KindChart, Chart: a}, nil

	case string(KindFinish):
		return Call{Kind: KindFinish, Finish: &FinishArgs{Answer: argString(args, "answer")}}, nil

	default:
		return Call{}, fmt.Errorf("unknown tool %q", tc.Name)
	}
}

// normalizeOp maps the spellings models actually produce onto canonical ops.
func normalizeOp(op string) string {
	op = strings.ToLower(strings.TrimSpace(op))
	switch op {
	case "avg", "average":
		return "mean"
	case "top-k", "topk":
		return "top_k"
	}
	return op
}

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if s, ok := args[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func argInt(args map[string]any, key string) int {
	if args == nil {
		return 0
	}
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		var n int
		fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}

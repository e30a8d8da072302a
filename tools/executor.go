package tools

import (
	"fmt"
	"strconv"
	"strings"

	ptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/sahilm/fuzzy"

	"tabla/chart"
	"tabla/table"
)

const previewRows = 10

// Executor runs tool calls against one table for the duration of a turn.
// It tracks the working view: filter_group in predicate mode narrows it, and
// subsequent calls operate on the narrowed view. The table itself is never
// mutated, so discarding the executor discards all derived state.
type Executor struct {
	base     *table.View
	working  *table.View
	renderer *chart.Renderer
}

// NewExecutor creates an executor whose working view covers the whole table.
func NewExecutor(t *table.Table, renderer *chart.Renderer) *Executor {
	base := table.NewView(t)
	return &Executor{base: base, working: base, renderer: renderer}
}

// Working exposes the current working view (used by tests and the UI).
func (e *Executor) Working() *table.View { return e.working }

// Execute dispatches one decoded call. The switch is exhaustive over Kind;
// failures come back as Err results, never as panics or Go errors, so the
// agent can feed them to the oracle.
func (e *Executor) Execute(call Call) Result {
	switch call.Kind {
	case KindAggregate:
		return e.executeAggregate(call.Aggregate)
	case KindFilterGroup:
		return e.executeFilterGroup(call.FilterGroup)
	case KindChart:
		return e.executeChart(call.Chart)
	case KindFinish:
		return Ok(call.Finish.Answer)
	default:
		return Errf(ErrKindUnknownTool, "unknown tool kind %q", call.Kind)
	}
}

// resolveColumn finds a column by exact name, then case-insensitively, and
// failing that builds an error carrying a fuzzy "did you mean" suggestion.
func (e *Executor) resolveColumn(name string) (*table.Column, error) {
	t := e.base.Table()
	if col, ok := t.Column(name); ok {
		return col, nil
	}
	names := t.ColumnNames()
	for _, n := range names {
		if strings.EqualFold(n, name) {
			col, _ := t.Column(n)
			return col, nil
		}
	}
	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		return nil, fmt.Errorf("column %q does not exist (did you mean %q?)", name, matches[0].Str)
	}
	return nil, fmt.Errorf("column %q does not exist (columns: %s)", name, strings.Join(names, ", "))
}

func (e *Executor) executeAggregate(a *AggregateArgs) Result {
	col, err := e.resolveColumn(a.Column)
	if err != nil {
		return Errf(ErrKindUnknownColumn, "%s", err)
	}

	switch a.Op {
	case "sum", "mean", "min", "max":
		if col.Kind != table.KindNumeric {
			return Errf(ErrKindTypeMismatch, "operation %q needs a numeric column, %q is %s", a.Op, col.Name, col.Kind)
		}
	}

	switch a.Op {
	case "sum":
		total, n := sumColumn(e.working, col)
		return Ok(fmt.Sprintf("sum(%s) = %s over %d non-absent values", col.Name, formatNumber(total), n))

	case "mean":
		total, n := sumColumn(e.working, col)
		if n == 0 {
			return Ok(fmt.Sprintf("mean(%s) is undefined: no non-absent values", col.Name))
		}
		return Ok(fmt.Sprintf("mean(%s) = %s over %d non-absent values", col.Name, formatNumber(total/float64(n)), n))

	case "count":
		return Ok(fmt.Sprintf("count(%s) = %d non-absent values in %d rows", col.Name, countColumn(e.working, col), e.working.Len()))

	case "min", "max":
		val, found := minMaxColumn(e.working, col, a.Op == "max")
		if !found {
			return Ok(fmt.Sprintf("%s(%s) is undefined: no non-absent values", a.Op, col.Name))
		}
		return Ok(fmt.Sprintf("%s(%s) = %s", a.Op, col.Name, formatNumber(val)))

	case "top_k":
		return e.executeTopK(a, col)

	default:
		return Errf(ErrKindInvalidArgument, "unknown aggregate operation %q", a.Op)
	}
}

func (e *Executor) executeTopK(a *AggregateArgs, col *table.Column) Result {
	var entries []Entry
	switch {
	case a.By != "":
		by, err := e.resolveColumn(a.By)
		if err != nil {
			return Errf(ErrKindUnknownColumn, "%s", err)
		}
		if col.Kind != table.KindNumeric {
			return Errf(ErrKindTypeMismatch, "top_k with %q ranks by summed %q, which must be numeric (it is %s)", a.By, col.Name, col.Kind)
		}
		entries = topK(e.working, by, col, a.K)
	case col.Kind == table.KindText:
		entries = topK(e.working, col, nil, a.K)
	default:
		return Errf(ErrKindInvalidArgument, "top_k over numeric column %q needs a %q label column to group on", col.Name, "by")
	}
	if len(entries) == 0 {
		return Ok("top_k produced no entries (view is empty)")
	}
	return Ok(fmt.Sprintf("top %d:\n%s", len(entries), formatEntries(entries)))
}

func (e *Executor) executeFilterGroup(a *FilterGroupArgs) Result {
	if a.GroupBy != "" {
		col, err := e.resolveColumn(a.GroupBy)
		if err != nil {
			return Errf(ErrKindUnknownColumn, "%s", err)
		}
		return Ok(e.renderGroupSummary(col))
	}

	col, err := e.resolveColumn(a.Column)
	if err != nil {
		return Errf(ErrKindUnknownColumn, "%s", err)
	}

	keep, err := buildPredicate(e.working.Table(), col, a.Predicate, a.Value)
	if err != nil {
		return Errf(ErrKindInvalidArgument, "%s", err)
	}

	derived := e.working.Select(keep)
	e.working = derived
	if derived.Len() == 0 {
		return Ok(fmt.Sprintf("filter kept 0 of %d rows; the working view is now empty", e.base.Len()))
	}
	return Ok(fmt.Sprintf("working view now has %d rows:\n%s", derived.Len(), renderPreview(derived, previewRows)))
}

// buildPredicate compiles one predicate into a row test. Text predicates
// compare display text case-insensitively; numeric predicates require a
// numeric column and skip absent cells.
func buildPredicate(t *table.Table, col *table.Column, predicate, value string) (func(int) bool, error) {
	switch predicate {
	case "equals":
		return func(row int) bool {
			return strings.EqualFold(t.Cell(row, col), value)
		}, nil
	case "not_equals":
		return func(row int) bool {
			return !col.Absent(row) && !strings.EqualFold(t.Cell(row, col), value)
		}, nil
	case "contains":
		needle := strings.ToLower(value)
		return func(row int) bool {
			return strings.Contains(strings.ToLower(t.Cell(row, col)), needle)
		}, nil
	case "gt", "gte", "lt", "lte":
		if col.Kind != table.KindNumeric {
			return nil, fmt.Errorf("predicate %q needs a numeric column, %q is %s", predicate, col.Name, col.Kind)
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("predicate %q needs a numeric value, got %q", predicate, value)
		}
		return func(row int) bool {
			v, ok := col.Number(row)
			if !ok {
				return false
			}
			switch predicate {
			case "gt":
				return v > threshold
			case "gte":
				return v >= threshold
			case "lt":
				return v < threshold
			default:
				return v <= threshold
			}
		}, nil
	default:
		return nil, fmt.Errorf("unknown predicate %q", predicate)
	}
}

func (e *Executor) executeChart(a *ChartArgs) Result {
	kind, ok := chart.ParseKind(a.Kind)
	if !ok {
		return Errf(ErrKindRender, "unsupported chart kind %q", a.Kind)
	}

	// Resolve columns first so render failures carry fuzzy suggestions.
	for _, ref := range []struct{ label, name string }{
		{"x", a.X}, {"y", a.Y}, {"group", a.Group},
	} {
		if ref.name == "" {
			continue
		}
		if _, err := e.resolveColumn(ref.name); err != nil {
			return Errf(ErrKindRender, "%s column: %s", ref.label, err)
		}
	}

	path, err := e.renderer.Render(e.working, chart.Request{
		Kind:  kind,
		X:     a.X,
		Y:     a.Y,
		Group: a.Group,
		Title: a.Title,
	})
	if err != nil {
		return Errf(ErrKindRender, "%s", err)
	}

	res := Ok(fmt.Sprintf("rendered %s chart of %s by %s, saved to %s", kind, a.Y, a.X, path))
	res.ChartPath = path
	return res
}

// renderGroupSummary lists distinct values of a column with row counts,
// capped to keep oracle feedback small.
func (e *Executor) renderGroupSummary(col *table.Column) string {
	order, groups := e.working.GroupBy(col)

	w := ptable.NewWriter()
	w.AppendHeader(ptable.Row{col.Name, "rows"})
	shown := 0
	for _, key := range order {
		if shown == previewRows*2 {
			break
		}
		display := key
		if display == "" {
			display = "(absent)"
		}
		w.AppendRow(ptable.Row{display, groups[key].Len()})
		shown++
	}
	summary := w.Render()
	if len(order) > shown {
		summary += fmt.Sprintf("\n(%d more groups not shown)", len(order)-shown)
	}
	return fmt.Sprintf("%d groups of %q:\n%s", len(order), col.Name, summary)
}

// renderPreview renders the first maxRows rows of a view as a text table.
// This is what the oracle (and the transcript display) sees in place of raw
// row data.
func renderPreview(v *table.View, maxRows int) string {
	t := v.Table()
	cols := t.Columns()

	header := make(ptable.Row, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}

	w := ptable.NewWriter()
	w.AppendHeader(header)
	n := v.Len()
	if n > maxRows {
		n = maxRows
	}
	for i := 0; i < n; i++ {
		row := make(ptable.Row, len(cols))
		for j, c := range cols {
			row[j] = t.Cell(v.Row(i), c)
		}
		w.AppendRow(row)
	}
	out := w.Render()
	if v.Len() > n {
		out += fmt.Sprintf("\n(%d more rows not shown)", v.Len()-n)
	}
	return out
}

package table

// View is a derived, read-only row selection over a Table. Filtering and
// grouping produce Views holding row indices into the parent table; the
// underlying data is never copied or mutated.
type View struct {
	table *Table
	rows  []int
}

// NewView returns a view covering every row of t in order.
func NewView(t *Table) *View {
	rows := make([]int, t.NumRows())
	for i := range rows {
		rows[i] = i
	}
	return &View{table: t, rows: rows}
}

// Table returns the backing table.
func (v *View) Table() *Table { return v.table }

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.rows) }

// Row maps a view-relative index to the table row index.
func (v *View) Row(i int) int { return v.rows[i] }

// Select returns a sub-view keeping the rows for which keep returns true.
// Row order is preserved.
func (v *View) Select(keep func(tableRow int) bool) *View {
	var kept []int
	for _, r := range v.rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return &View{table: v.table, rows: kept}
}

// GroupBy partitions the view by a column's display text. Absent cells group
// under "". Group order follows first appearance.
func (v *View) GroupBy(col *Column) ([]string, map[string]*View) {
	var order []string
	indices := make(map[string][]int)
	for _, r := range v.rows {
		key := v.table.Cell(r, col)
		if _, ok := indices[key]; !ok {
			order = append(order, key)
		}
		indices[key] = append(indices[key], r)
	}

	groups := make(map[string]*View, len(order))
	for _, key := range order {
		groups[key] = &View{table: v.table, rows: indices[key]}
	}
	return order, groups
}

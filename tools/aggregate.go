package tools

import (
	"fmt"
	"sort"
	"strconv"

	"tabla/table"
)

// Entry is one (label, value) pair in an ordered ranking.
type Entry struct {
	Label string
	Value float64
}

// sumColumn totals the non-absent values of a numeric column across a view.
func sumColumn(v *table.View, col *table.Column) (total float64, n int) {
	for i := 0; i < v.Len(); i++ {
		if val, ok := col.Number(v.Row(i)); ok {
			total += val
			n++
		}
	}
	return total, n
}

// countColumn counts non-absent cells of any column across a view.
func countColumn(v *table.View, col *table.Column) int {
	n := 0
	for i := 0; i < v.Len(); i++ {
		if !col.Absent(v.Row(i)) {
			n++
		}
	}
	return n
}

func minMaxColumn(v *table.View, col *table.Column, max bool) (float64, bool) {
	var best float64
	found := false
	for i := 0; i < v.Len(); i++ {
		val, ok := col.Number(v.Row(i))
		if !ok {
			continue
		}
		if !found || (max && val > best) || (!max && val < best) {
			best = val
			found = true
		}
	}
	return best, found
}

// topK ranks the distinct values of the label column by the summed measure
// column (or by row count when measure is nil) and returns the k largest.
// Ties keep first-appearance order, matching the stable sort.
func topK(v *table.View, label *table.Column, measure *table.Column, k int) []Entry {
	if k <= 0 {
		k = 5
	}
	order, groups := v.GroupBy(label)

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		g := groups[key]
		var value float64
		if measure != nil {
			value, _ = sumColumn(g, measure)
		} else {
			value = float64(g.Len())
		}
		display := key
		if display == "" {
			display = "(absent)"
		}
		entries = append(entries, Entry{Label: display, Value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// formatNumber renders values without trailing zeros, the same way table
// cells display.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatEntries(entries []Entry) string {
	out := ""
	for i, e := range entries {
		out += fmt.Sprintf("%d. %s: %s\n", i+1, e.Label, formatNumber(e.Value))
	}
	return out
}

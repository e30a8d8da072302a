// Package chart renders chart tool calls into PNG images. Rendering is the
// only tool output that leaves the process as a file; everything else stays
// in memory for the duration of a turn.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/google/uuid"

	"tabla/table"
)

// Kind names a supported chart type.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
)

// Kinds lists the supported chart kinds in menu order.
var Kinds = []Kind{KindBar, KindLine, KindScatter, KindPie}

// ParseKind validates a chart kind string.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// RenderError reports a chart request that cannot be satisfied: unknown
// columns, a non-numeric y axis, or too little data to draw.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "chart: " + e.Reason
}

func renderErrorf(format string, args ...any) *RenderError {
	return &RenderError{Reason: fmt.Sprintf(format, args...)}
}

// Request describes one chart to render against a view.
type Request struct {
	Kind  Kind
	X     string // label/x-axis column
	Y     string // numeric value column
	Group string // optional series grouping column
	Title string
}

// Renderer writes chart PNGs into a directory, one file per request.
type Renderer struct {
	dir string
}

// NewRenderer creates the output directory if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

// Prune removes PNGs left over from earlier turns so a stale chart is never
// shown next to a fresh answer.
func (r *Renderer) Prune() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			os.Remove(filepath.Join(r.dir, e.Name()))
		}
	}
}

const (
	chartWidth  = 900
	chartHeight = 540
	maxSlices   = 12
)

// Render draws the requested chart over the view and returns the PNG path.
// Column and type validation happens here so a bad request surfaces as a
// *RenderError rather than a half-written file.
func (r *Renderer) Render(v *table.View, req Request) (string, error) {
	t := v.Table()

	xCol, ok := t.Column(req.X)
	if !ok {
		return "", renderErrorf("x column %q does not exist", req.X)
	}
	yCol, ok := t.Column(req.Y)
	if !ok {
		return "", renderErrorf("y column %q does not exist", req.Y)
	}
	if yCol.Kind != table.KindNumeric {
		return "", renderErrorf("y column %q is not numeric (kind %s)", req.Y, yCol.Kind)
	}
	var groupCol *table.Column
	if req.Group != "" {
		groupCol, ok = t.Column(req.Group)
		if !ok {
			return "", renderErrorf("group column %q does not exist", req.Group)
		}
	}
	if v.Len() == 0 {
		return "", renderErrorf("no rows to chart")
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s by %s", req.Y, req.X)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("chart-%s.png", uuid.New().String()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	switch req.Kind {
	case KindBar:
		err = renderBar(f, title, sumByLabel(v, xCol, yCol))
	case KindPie:
		err = renderPie(f, title, sumByLabel(v, xCol, yCol))
	case KindLine, KindScatter:
		err = renderXY(f, title, req.Kind, v, xCol, yCol, groupCol)
	default:
		os.Remove(path)
		return "", renderErrorf("unsupported chart kind %q", req.Kind)
	}
	if err != nil {
		os.Remove(path)
		var re *RenderError
		if errors.As(err, &re) {
			return "", re
		}
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return path, nil
}

// sumByLabel collapses rows to one value per distinct x label by summing y.
// Absent y cells are skipped, not counted as zero.
func sumByLabel(v *table.View, xCol, yCol *table.Column) []gochart.Value {
	order, groups := v.GroupBy(xCol)
	values := make([]gochart.Value, 0, len(order))
	for _, label := range order {
		g := groups[label]
		var sum float64
		for i := 0; i < g.Len(); i++ {
			if val, ok := yCol.Number(g.Row(i)); ok {
				sum += val
			}
		}
		display := label
		if display == "" {
			display = "(absent)"
		}
		values = append(values, gochart.Value{Label: display, Value: sum})
	}
	return values
}

func renderBar(f *os.File, title string, values []gochart.Value) error {
	if len(values) == 0 {
		return renderErrorf("no values to chart")
	}
	bc := gochart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     values,
		XAxis:    gochart.Style{TextRotationDegrees: 45},
	}
	return bc.Render(gochart.PNG, f)
}

func renderPie(f *os.File, title string, values []gochart.Value) error {
	if len(values) == 0 {
		return renderErrorf("no values to chart")
	}
	if len(values) > maxSlices {
		values = values[:maxSlices]
	}
	for _, v := range values {
		if v.Value < 0 {
			return renderErrorf("pie charts require non-negative values (%q is %.2f)", v.Label, v.Value)
		}
	}
	pc := gochart.PieChart{
		Title:  title,
		Width:  chartHeight, // square canvas
		Height: chartHeight,
		Values: values,
	}
	return pc.Render(gochart.PNG, f)
}

// renderXY draws line and scatter charts. A numeric x column provides real x
// values; a text x column falls back to row position with label ticks. One
// series per group value when a grouping column is set.
func renderXY(f *os.File, title string, kind Kind, v *table.View, xCol, yCol, groupCol *table.Column) error {
	seriesOrder := []string{""}
	seriesViews := map[string]*table.View{"": v}
	if groupCol != nil {
		seriesOrder, seriesViews = v.GroupBy(groupCol)
	}

	var series []gochart.Series
	var ticks []gochart.Tick
	for si, name := range seriesOrder {
		g := seriesViews[name]
		var xs, ys []float64
		for i := 0; i < g.Len(); i++ {
			row := g.Row(i)
			y, ok := yCol.Number(row)
			if !ok {
				continue
			}
			if x, ok := xCol.Number(row); ok {
				xs = append(xs, x)
			} else {
				xs = append(xs, float64(row))
				if groupCol == nil {
					ticks = append(ticks, gochart.Tick{Value: float64(row), Label: xCol.Text(row)})
				}
			}
			ys = append(ys, y)
		}
		if len(xs) == 0 {
			continue
		}
		style := gochart.Style{StrokeColor: gochart.GetDefaultColor(si)}
		if kind == KindScatter {
			style.StrokeWidth = gochart.Disabled
			style.DotWidth = 4
			style.DotColor = gochart.GetDefaultColor(si)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    name,
			Style:   style,
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return renderErrorf("no numeric points to chart")
	}

	c := gochart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Series: series,
	}
	if xCol.Kind != table.KindNumeric && len(ticks) > 0 {
		c.XAxis = gochart.XAxis{
			Ticks: ticks,
			Style: gochart.Style{TextRotationDegrees: 45, StrokeColor: drawing.ColorBlack},
		}
	}
	if groupCol != nil {
		c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	}
	return c.Render(gochart.PNG, f)
}

// Package series picks axis bindings and per-series configuration for a chart
// from the headers of an aggregated or pivoted table.
package series

import (
	"github.com/google/uuid"

	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/pivot"
)

// ChartType selects the binding strategy.
type ChartType string

const (
	Line      ChartType = "line"
	Bar       ChartType = "bar"
	Area      ChartType = "area"
	Scatter   ChartType = "scatter"
	Pie       ChartType = "pie"
	Donut     ChartType = "donut"
	Heatmap   ChartType = "heatmap"
	CyclePlot ChartType = "cycle-plot"
	Histogram ChartType = "histogram"
)

// MaxSeries caps the number of series bound to one chart.
const MaxSeries = 20

// Palette is cycled through for series that have no stored colour.
var Palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Config is one plotted series. DataColumn references a header id.
type Config struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Visible    bool   `json:"visible"`
	DataColumn string `json:"dataColumn"`
}

// Bindings is the chart-config fragment produced by Detect.
type Bindings struct {
	XAxis    string   `json:"xAxis,omitempty"`
	YAxis    string   `json:"yAxis,omitempty"`
	LabelKey string   `json:"labelKey,omitempty"`
	ValueKey string   `json:"valueKey,omitempty"`
	Series   []Config `json:"series,omitempty"`
	// Skipped counts qualifying columns left out by MaxSeries.
	Skipped int `json:"skipped,omitempty"`
}

// Detect binds headers to a chart of the given type. existing carries the
// series of a previous run so user-set names, colours and ids survive. spec
// may be nil; it is only consulted when no header carries a kind marker.
// Detect returns nil when nothing can be bound.
func Detect(headers []tablekit.Header, chart ChartType, existing []Config, spec *pivot.Spec) *Bindings {
	if len(headers) == 0 {
		return nil
	}
	r := classify(headers, spec)
	switch chart {
	case Line, Bar, Area:
		return r.cartesian(existing)
	case Scatter:
		return r.scatter(existing)
	case Pie, Donut:
		return r.pie()
	case Heatmap, CyclePlot:
		return r.grid()
	case Histogram:
		return r.histogram(existing)
	}
	return nil
}

type roles struct {
	all     []tablekit.Header
	rows    []tablekit.Header
	columns []tablekit.Header
	metrics []tablekit.Header
}

func classify(headers []tablekit.Header, spec *pivot.Spec) roles {
	r := roles{all: headers}
	marked := false
	for _, h := range headers {
		if h.IsMetric() || h.Kind != tablekit.KindDimension {
			marked = true
			break
		}
	}
	if !marked && spec != nil {
		// positional: row dimensions lead, everything after them came from the column axis
		n := min(len(spec.Rows), len(headers))
		r.rows = headers[:n]
		switch {
		case len(spec.Values) > 0:
			r.metrics = headers[n:]
		case len(spec.Columns) > 0:
			r.columns = headers[n:]
		}
		return r
	}
	for _, h := range headers {
		switch {
		case h.IsMetric() || h.Kind == tablekit.KindMetric:
			r.metrics = append(r.metrics, h)
		case h.Kind == tablekit.KindColumnDimension:
			r.columns = append(r.columns, h)
		default:
			r.rows = append(r.rows, h)
		}
	}
	return r
}

func (r roles) firstRow() (tablekit.Header, bool) {
	if len(r.rows) == 0 {
		return tablekit.Header{}, false
	}
	return r.rows[0], true
}

// valueHeaders is the metric headers, else the column-dimension headers.
func (r roles) valueHeaders() []tablekit.Header {
	if len(r.metrics) > 0 {
		return r.metrics
	}
	return r.columns
}

func (r roles) cartesian(existing []Config) *Bindings {
	x, hasX := r.firstRow()
	values := r.valueHeaders()
	if len(values) == 0 {
		values = numericExcept(r.all, x.ID)
	}
	if !hasX && len(values) == 0 {
		return nil
	}
	b := &Bindings{XAxis: x.ID}
	b.Series, b.Skipped = configs(values, existing)
	return b
}

func (r roles) scatter(existing []Config) *Bindings {
	x, ok := r.firstRow()
	if !ok || !x.IsNumber() {
		x, ok = firstNumeric(r.all)
		if !ok {
			return nil
		}
	}
	var values []tablekit.Header
	for _, h := range r.valueHeaders() {
		if h.IsNumber() && h.ID != x.ID {
			values = append(values, h)
		}
	}
	if len(values) == 0 {
		values = numericExcept(r.all, x.ID)
	}
	if len(values) == 0 {
		return nil
	}
	b := &Bindings{XAxis: x.ID}
	b.Series, b.Skipped = configs(values, existing)
	return b
}

func (r roles) pie() *Bindings {
	label, ok := r.firstRow()
	if !ok || len(r.metrics) == 0 {
		return nil
	}
	value := r.metrics[0]
	if !value.IsNumber() {
		return nil
	}
	return &Bindings{LabelKey: label.ID, ValueKey: value.ID}
}

func (r roles) grid() *Bindings {
	x, ok := r.firstRow()
	if !ok || len(r.metrics) == 0 {
		return nil
	}
	y := x
	if len(r.rows) > 1 {
		y = r.rows[1]
	}
	return &Bindings{XAxis: x.ID, YAxis: y.ID, ValueKey: r.metrics[0].ID}
}

func (r roles) histogram(existing []Config) *Bindings {
	values := numeric(r.metrics)
	if len(values) == 0 {
		values = numeric(r.columns)
	}
	if len(values) == 0 {
		declared := make(map[string]bool, len(r.rows))
		for _, h := range r.rows {
			declared[h.ID] = true
		}
		for _, h := range r.all {
			if h.IsNumber() && !declared[h.ID] {
				values = append(values, h)
			}
		}
	}
	if len(values) == 0 {
		values = numeric(r.all)
	}
	if len(values) == 0 {
		return nil
	}
	b := &Bindings{}
	b.Series, b.Skipped = configs(values, existing)
	return b
}

func numeric(headers []tablekit.Header) []tablekit.Header {
	var out []tablekit.Header
	for _, h := range headers {
		if h.IsNumber() {
			out = append(out, h)
		}
	}
	return out
}

func numericExcept(headers []tablekit.Header, id string) []tablekit.Header {
	var out []tablekit.Header
	for _, h := range headers {
		if h.IsNumber() && h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

func firstNumeric(headers []tablekit.Header) (tablekit.Header, bool) {
	for _, h := range headers {
		if h.IsNumber() {
			return h, true
		}
	}
	return tablekit.Header{}, false
}

// configs builds one series per header, capped at MaxSeries, reusing the
// identity of any existing series bound to the same column.
func configs(headers []tablekit.Header, existing []Config) ([]Config, int) {
	skipped := 0
	if len(headers) > MaxSeries {
		skipped = len(headers) - MaxSeries
		headers = headers[:MaxSeries]
	}
	prev := make(map[string]Config, len(existing))
	for _, c := range existing {
		if _, dup := prev[c.DataColumn]; !dup {
			prev[c.DataColumn] = c
		}
	}
	out := make([]Config, len(headers))
	for i, h := range headers {
		c := Config{
			ID:         uuid.NewString(),
			Name:       h.Name,
			Color:      Palette[i%len(Palette)],
			Visible:    true,
			DataColumn: h.ID,
		}
		if old, ok := prev[h.ID]; ok {
			if old.ID != "" {
				c.ID = old.ID
			}
			// a stored name that differs from the header is a user rename
			if old.Name != "" && old.Name != h.Name {
				c.Name = old.Name
			}
			if old.Color != "" {
				c.Color = old.Color
			}
			c.Visible = old.Visible
		}
		out[i] = c
	}
	return out, skipped
}

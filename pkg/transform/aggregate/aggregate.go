// Package aggregate groups rows by dimension columns and computes metrics per group.
package aggregate

import (
	"context"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type boundMetric struct {
	metric tablekit.Metric
	pos    int
	source tablekit.Header
}

func resolveMetrics(metrics []tablekit.Metric, headers []tablekit.Header, idx tablekit.Index) []boundMetric {
	out := make([]boundMetric, 0, len(metrics))
	for _, m := range metrics {
		bm := boundMetric{metric: m, pos: -1}
		if pos, ok := idx.Resolve(m.ColumnID); ok && pos < len(headers) {
			bm.pos, bm.source = pos, headers[pos]
		} else if m.Type != tablekit.AggCount {
			continue
		}
		out = append(out, bm)
	}
	return out
}

// DefaultName is "op(Source)", or "count()" for count.
func DefaultName(m tablekit.Metric, source tablekit.Header) string {
	if m.Type == tablekit.AggCount {
		return "count()"
	}
	return string(m.Type) + "(" + source.Name + ")"
}

// Table groups rows by groupBy and computes metrics per group. It returns nil,
// meaning "pass the input through", when there are no headers, no rows or no
// metrics that can be resolved. Groups appear in order of first occurrence.
func Table(rows [][]string, headers []tablekit.Header, groupBy []tablekit.Dimension, metrics []tablekit.Metric, idx tablekit.Index) *tablekit.Table {
	if len(headers) == 0 || len(rows) == 0 || len(metrics) == 0 {
		return nil
	}
	keys := ResolveDimensions(groupBy, headers, idx)
	bound := resolveMetrics(metrics, headers, idx)
	if len(bound) == 0 {
		return nil
	}

	type group struct {
		parts []string
		rows  [][]string
	}
	groups := make(map[string]*group)
	var order []string
	for _, row := range rows {
		k, parts := Key(keys, row)
		g, ok := groups[k]
		if !ok {
			g = &group{parts: parts}
			groups[k] = g
			order = append(order, k)
		}
		g.rows = append(g.rows, row)
	}

	out := make([]tablekit.Header, 0, len(keys)+len(bound))
	for _, kc := range keys {
		out = append(out, kc.Header())
	}
	for _, bm := range bound {
		name := bm.metric.Alias
		if name == "" {
			name = DefaultName(bm.metric, bm.source)
		}
		out = append(out, tablekit.Header{
			ID:      bm.metric.ID,
			Name:    name,
			Type:    tablekit.TypeNumber,
			Kind:    tablekit.KindMetric,
			ValueID: bm.metric.ID,
		})
	}
	tablekit.UniqueHeaders(out)

	result := make([][]string, 0, len(order))
	for _, k := range order {
		g := groups[k]
		row := make([]string, 0, len(out))
		row = append(row, g.parts...)
		for _, bm := range bound {
			var values []float64
			if bm.metric.Type != tablekit.AggCount {
				values = Numbers(g.rows, bm.pos)
			}
			row = append(row, parse.FormatNumber(Compute(bm.metric.Type, values, len(g.rows))))
		}
		result = append(result, row)
	}
	return tablekit.NewTable(out, result)
}

// Aggregate is the pipeline step wrapping Table.
type Aggregate struct {
	GroupBy []tablekit.Dimension `json:"groupBy"`
	Metrics []tablekit.Metric    `json:"metrics"`
}

func (t *Aggregate) Name() string { return "aggregate" }

func (t *Aggregate) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	return Table(in.Rows, in.Headers, t.GroupBy, t.Metrics, in.Index()), nil
}

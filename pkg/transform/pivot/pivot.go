// Package pivot builds cross-tab tables: row-dimension combinations become rows
// and every (column-dimension combination, value) pair becomes a generated column.
package pivot

import (
	"context"
	"strings"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/aggregate"
)

// Value is one pivot measure.
type Value struct {
	ID              string                   `json:"id"`
	ColumnID        string                   `json:"columnId,omitempty"`
	AggregationType tablekit.AggregationType `json:"aggregationType"`
	Alias           string                   `json:"alias,omitempty"`
}

// Spec describes the row axis, the column axis and the measures of a pivot.
type Spec struct {
	Rows    []tablekit.Dimension `json:"rows"`
	Columns []tablekit.Dimension `json:"columns"`
	Values  []Value              `json:"values"`
}

func (s Spec) Empty() bool {
	return len(s.Rows) == 0 && len(s.Columns) == 0 && len(s.Values) == 0
}

const (
	// presentCell marks an observed combination in dimension-only mode.
	presentCell = "0"
	// missingMetric fills combinations that never occur when values are set.
	missingMetric = "0"
	// missingCell fills combinations that never occur in dimension-only mode.
	missingCell = ""

	comboSep = " | "
	idSep    = "|"
)

type boundValue struct {
	value  Value
	pos    int
	source tablekit.Header
}

func resolveValues(values []Value, headers []tablekit.Header, idx tablekit.Index) []boundValue {
	out := make([]boundValue, 0, len(values))
	for _, v := range values {
		bv := boundValue{value: v, pos: -1}
		if pos, ok := idx.Resolve(v.ColumnID); ok && pos < len(headers) {
			bv.pos, bv.source = pos, headers[pos]
		} else if v.AggregationType != tablekit.AggCount {
			continue
		}
		out = append(out, bv)
	}
	return out
}

// operationLabel is the capitalised operation name used in generated headers.
func operationLabel(op tablekit.AggregationType) string {
	s := string(op)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValueName is the default header name for a generated value column:
// "Sum of Amount" or "Sum of Amount (2023 | North)".
func ValueName(v Value, source tablekit.Header, combo []string) string {
	if v.Alias != "" {
		return v.Alias
	}
	name := operationLabel(v.AggregationType)
	if source.Name != "" {
		name += " of " + source.Name
	}
	if len(combo) > 0 {
		name += " (" + comboLabel(combo) + ")"
	}
	return name
}

func comboLabel(parts []string) string {
	labels := make([]string, len(parts))
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			p = "(blank)"
		}
		labels[i] = p
	}
	return strings.Join(labels, comboSep)
}

// Table pivots rows as described by the pivot Spec. It returns nil when it is empty
// or there are no headers. Every row carries a cell for every generated column.
func Table(rows [][]string, headers []tablekit.Header, spec Spec, idx tablekit.Index) *tablekit.Table {
	if len(headers) == 0 || spec.Empty() {
		return nil
	}
	rowKeys := aggregate.ResolveDimensions(spec.Rows, headers, idx)
	colKeys := aggregate.ResolveDimensions(spec.Columns, headers, idx)
	values := resolveValues(spec.Values, headers, idx)
	if len(rowKeys) == 0 && len(colKeys) == 0 && len(values) == 0 {
		return nil
	}

	type combo struct {
		key   string
		parts []string
	}
	var (
		rowOrder []combo
		colOrder []combo
		seenRow  = make(map[string]bool)
		seenCol  = make(map[string]bool)
		cells    = make(map[string]map[string][][]string)
	)

	// pass 1: collect every row key and column key
	for _, row := range rows {
		rk, rparts := aggregate.Key(rowKeys, row)
		if !seenRow[rk] {
			seenRow[rk] = true
			rowOrder = append(rowOrder, combo{rk, rparts})
			cells[rk] = make(map[string][][]string)
		}
		ck := ""
		if len(colKeys) > 0 {
			var cparts []string
			ck, cparts = aggregate.Key(colKeys, row)
			if !seenCol[ck] {
				seenCol[ck] = true
				colOrder = append(colOrder, combo{ck, cparts})
			}
		}
		cells[rk][ck] = append(cells[rk][ck], row)
	}
	if len(colKeys) == 0 {
		colOrder = []combo{{key: ""}}
	}

	// pass 2: headers, then the full row x column grid
	out := make([]tablekit.Header, 0, len(rowKeys)+len(colOrder)*max(len(values), 1))
	for _, kc := range rowKeys {
		out = append(out, kc.Header())
	}
	switch {
	case len(values) > 0:
		for _, c := range colOrder {
			for _, bv := range values {
				id := bv.value.ID
				if len(colKeys) > 0 {
					id += idSep + strings.Join(c.parts, idSep)
				}
				out = append(out, tablekit.Header{
					ID:      id,
					Name:    ValueName(bv.value, bv.source, c.parts),
					Type:    tablekit.TypeNumber,
					Kind:    tablekit.KindMetric,
					ValueID: bv.value.ID,
				})
			}
		}
	case len(colKeys) > 0:
		for _, c := range colOrder {
			out = append(out, tablekit.Header{
				ID:   "col" + idSep + strings.Join(c.parts, idSep),
				Name: comboLabel(c.parts),
				Type: tablekit.TypeNumber,
				Kind: tablekit.KindColumnDimension,
			})
		}
	}
	tablekit.UniqueHeaders(out)

	result := make([][]string, 0, len(rowOrder))
	for _, r := range rowOrder {
		row := make([]string, 0, len(out))
		row = append(row, r.parts...)
		for _, c := range colOrder {
			group, present := cells[r.key][c.key]
			switch {
			case len(values) > 0:
				for _, bv := range values {
					if !present {
						row = append(row, missingMetric)
						continue
					}
					var nums []float64
					if bv.value.AggregationType != tablekit.AggCount {
						nums = aggregate.Numbers(group, bv.pos)
					}
					row = append(row, parse.FormatNumber(aggregate.Compute(bv.value.AggregationType, nums, len(group))))
				}
			case len(colKeys) > 0:
				if present {
					row = append(row, presentCell)
				} else {
					row = append(row, missingCell)
				}
			}
		}
		result = append(result, row)
	}
	return tablekit.NewTable(out, result)
}

// Pivot is the pipeline step wrapping Table.
type Pivot struct {
	Spec Spec
}

func (t *Pivot) Name() string { return "pivot" }

func (t *Pivot) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	return Table(in.Rows, in.Headers, t.Spec, in.Index()), nil
}

// Package filter keeps the rows that satisfy every per-column condition.
//
// Conditions fail open: an unknown column, an unknown operator, an empty
// comparison value or a value that cannot be parsed as the required type
// never excludes a row.
package filter

import (
	"context"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// Column holds the conditions for one column. All conditions must pass.
type Column struct {
	ColumnID   string      `json:"columnId"`
	Conditions []Condition `json:"conditions"`
}

// Rows returns the rows that pass every column's conditions. Unknown columns are skipped.
// The input slice is not modified; kept rows are shared, not copied.
func Rows(rows [][]string, columns []Column, idx tablekit.Index, headers []tablekit.Header) [][]string {
	type bound struct {
		pos    int
		header tablekit.Header
		conds  []Condition
	}
	active := make([]bound, 0, len(columns))
	for _, c := range columns {
		pos, ok := idx.Resolve(c.ColumnID)
		if !ok || len(c.Conditions) == 0 {
			continue
		}
		var h tablekit.Header
		if pos < len(headers) {
			h = headers[pos]
		}
		active = append(active, bound{pos: pos, header: h, conds: c.Conditions})
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, b := range active {
			cell := tablekit.Cell(row, b.pos)
			for _, cond := range b.conds {
				if !Evaluate(cond, cell, b.header).Passes() {
					keep = false
					break
				}
			}
			if !keep {
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// Filter is the pipeline step wrapping Rows.
type Filter struct {
	Columns []Column `json:"columns"`
}

func (t *Filter) Name() string   { return "filter" }
func (t *Filter) RowLocal() bool { return true }

func (t *Filter) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	if len(t.Columns) == 0 {
		return nil, nil
	}
	rows := Rows(in.Rows, t.Columns, in.Index(), in.Headers)
	return &tablekit.Table{Headers: tablekit.Stamp(in.Headers), Rows: rows}, nil
}

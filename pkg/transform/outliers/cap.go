// Package outliers clamps numeric cells into a closed range.
package outliers

import (
	"context"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// Cap clamps strictly numeric cells of Column to [Min, Max]. A nil bound is open.
// Cells that are not numbers are left as they are.
type Cap struct {
	Column string   `json:"column"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

func (t *Cap) Name() string   { return "cap_range" }
func (t *Cap) RowLocal() bool { return true }

func (t *Cap) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	if t.Min == nil && t.Max == nil {
		return nil, nil
	}
	return in.MapColumn(t.Column, func(s string) string {
		v, ok := parse.NumberStrict(s)
		if !ok {
			return s
		}
		switch {
		case t.Min != nil && v < *t.Min:
			return parse.FormatNumber(*t.Min)
		case t.Max != nil && v > *t.Max:
			return parse.FormatNumber(*t.Max)
		}
		return s
	}), nil
}

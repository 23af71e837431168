package impute

import (
	"context"
	"strings"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Mean struct {
	Column string `json:"column"`
}

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	vals, ok := numbers(in, t.Column)
	if !ok || len(vals) == 0 {
		return nil, nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return in.FillColumn(t.Column, parse.FormatNumber(sum/float64(len(vals)))), nil
}

// numbers returns the strictly numeric non-empty cells of the column.
func numbers(in *tablekit.Table, key string) ([]float64, bool) {
	col, ok := in.Index().Resolve(key)
	if !ok {
		return nil, false
	}
	vals := make([]float64, 0, len(in.Rows))
	for _, r := range in.Rows {
		s := strings.TrimSpace(tablekit.Cell(r, col))
		if s == "" {
			continue
		}
		if v, ok := parse.NumberStrict(s); ok {
			vals = append(vals, v)
		}
	}
	return vals, true
}

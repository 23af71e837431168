package impute

import (
	"context"
	"sort"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Median struct {
	Column string `json:"column"`
}

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	vals, ok := numbers(in, t.Column)
	if !ok || len(vals) == 0 {
		return nil, nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	med := vals[mid]
	if len(vals)%2 == 0 {
		med = (vals[mid-1] + vals[mid]) / 2
	}
	return in.FillColumn(t.Column, parse.FormatNumber(med)), nil
}

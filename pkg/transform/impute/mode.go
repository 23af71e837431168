package impute

import (
	"context"
	"strings"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// Mode fills with the most frequent non-empty value; ties go to the value seen first.
type Mode struct {
	Column string `json:"column"`
}

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	col, ok := in.Index().Resolve(t.Column)
	if !ok {
		return nil, nil
	}
	counts := map[string]int{}
	var best string
	var bestc int
	for _, r := range in.Rows {
		v := tablekit.Cell(r, col)
		if strings.TrimSpace(v) == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestc {
			bestc = counts[v]
			best = v
		}
	}
	if bestc == 0 {
		return nil, nil
	}
	return in.FillColumn(t.Column, best), nil
}

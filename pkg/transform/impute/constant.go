// Package impute fills empty cells of one column. Constant is row-local; the
// statistical fills read the whole column first.
package impute

import (
	"context"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Constant struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

func (t *Constant) Name() string   { return "impute_constant" }
func (t *Constant) RowLocal() bool { return true }

func (t *Constant) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	return in.FillColumn(t.Column, t.Value), nil
}

package standardize

import (
	"context"
	"strings"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Lower struct {
	Column string `json:"column"`
}

func (t *Lower) Name() string   { return "lower" }
func (t *Lower) RowLocal() bool { return true }

func (t *Lower) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	return in.MapColumn(t.Column, strings.ToLower), nil
}

// Package standardize holds row-local cell rewrites that tidy raw values
// before they are filtered, grouped or pivoted.
package standardize

import (
	"context"
	"strings"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Trim struct {
	Column string `json:"column"`
}

func (t *Trim) Name() string   { return "trim" }
func (t *Trim) RowLocal() bool { return true }

func (t *Trim) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	return in.MapColumn(t.Column, strings.TrimSpace), nil
}

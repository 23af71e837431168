package standardize

import (
	"context"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// MapValues replaces cells that exactly match a key of Map.
type MapValues struct {
	Column string            `json:"column"`
	Map    map[string]string `json:"map"`
}

func (t *MapValues) Name() string   { return "map_values" }
func (t *MapValues) RowLocal() bool { return true }

func (t *MapValues) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	if len(t.Map) == 0 {
		return nil, nil
	}
	return in.MapColumn(t.Column, func(v string) string {
		if nv, ok := t.Map[v]; ok {
			return nv
		}
		return v
	}), nil
}

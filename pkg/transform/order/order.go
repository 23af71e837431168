// Package order sorts rows by one or more columns using a numeric-aware collation.
package order

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Level is one sort key. Levels are applied in order; later levels break ties.
type Level struct {
	ColumnID  string    `json:"columnId"`
	Direction Direction `json:"direction"`
}

// Rows returns a stably sorted copy of rows. Levels whose column cannot be
// resolved are skipped.
func Rows(rows [][]string, levels []Level, idx tablekit.Index) [][]string {
	out := make([][]string, len(rows))
	copy(out, rows)

	type key struct {
		pos  int
		desc bool
	}
	keys := make([]key, 0, len(levels))
	for _, l := range levels {
		if pos, ok := idx.Resolve(l.ColumnID); ok {
			keys = append(keys, key{pos: pos, desc: l.Direction == Desc})
		}
	}
	if len(keys) == 0 {
		return out
	}

	coll := NewCollator()
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			c := coll.CompareString(tablekit.Cell(out[i], k.pos), tablekit.Cell(out[j], k.pos))
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// NewCollator returns the collation used for sorting: locale-neutral, with
// digit runs compared by numeric value so "2" sorts before "10".
// A Collator is not safe for concurrent use.
func NewCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric)
}

// Sort is the pipeline step wrapping Rows.
type Sort struct {
	Levels []Level `json:"levels"`
}

func (t *Sort) Name() string { return "sort" }

func (t *Sort) Apply(ctx context.Context, in *tablekit.Table) (*tablekit.Table, error) {
	if len(t.Levels) == 0 {
		return nil, nil
	}
	return &tablekit.Table{Headers: tablekit.Stamp(in.Headers), Rows: Rows(in.Rows, t.Levels, in.Index())}, nil
}

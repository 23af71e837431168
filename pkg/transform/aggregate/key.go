package aggregate

import (
	"strings"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// keySep joins the parts of a composite group key.
const keySep = "\x1f"

// KeyColumn is a dimension resolved against a header list.
type KeyColumn struct {
	Dim    tablekit.Dimension
	Pos    int
	Source tablekit.Header
	// Unit is the effective time unit; it is dropped for non-date columns.
	Unit tablekit.TimeUnit
}

// ResolveDimensions binds dimensions to row positions, skipping unknown columns.
func ResolveDimensions(dims []tablekit.Dimension, headers []tablekit.Header, idx tablekit.Index) []KeyColumn {
	out := make([]KeyColumn, 0, len(dims))
	for _, d := range dims {
		pos, ok := idx.Resolve(d.ID)
		if !ok {
			pos, ok = idx.Resolve(d.Name)
		}
		if !ok || pos >= len(headers) {
			continue
		}
		kc := KeyColumn{Dim: d, Pos: pos, Source: headers[pos]}
		if kc.Source.IsDate() {
			kc.Unit = d.TimeUnit
		}
		out = append(out, kc)
	}
	return out
}

// Value is the grouping value of row for this column.
func (k KeyColumn) Value(row []string) string {
	v := tablekit.Cell(row, k.Pos)
	if k.Unit != tablekit.UnitNone {
		return parse.TimeBucket(v, k.Unit, k.Source.DateFormat)
	}
	return v
}

// Header is the output header for this dimension; bucketed dates get a "(unit)" suffix.
func (k KeyColumn) Header() tablekit.Header {
	h := tablekit.Header{
		ID:         k.Source.ID,
		Name:       k.Source.Name,
		Type:       k.Source.Type,
		DateFormat: k.Source.DateFormat,
	}
	if h.ID == "" {
		h.ID = k.Dim.ID
	}
	if h.Name == "" {
		h.Name = k.Dim.Name
	}
	if k.Unit != tablekit.UnitNone {
		h.Name += " (" + string(k.Unit) + ")"
		h.DateFormat = parse.BucketFormat(k.Unit)
		if h.DateFormat == "" {
			h.Type = tablekit.TypeText
		}
	}
	return h
}

// Key computes the composite key and its parts for row.
func Key(cols []KeyColumn, row []string) (string, []string) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.Value(row)
	}
	return strings.Join(parts, keySep), parts
}

package tablekit

import "strings"

// ColumnType enumerates the logical types a column can declare.
type ColumnType string

const (
	TypeText   ColumnType = "text"
	TypeNumber ColumnType = "number"
	TypeDate   ColumnType = "date"
)

// HeaderKind tells dimension columns apart from generated metric columns.
type HeaderKind int

const (
	// KindDimension is a grouping key or a plain input column.
	KindDimension HeaderKind = iota
	// KindColumnDimension is a pivot column-combination header emitted without values.
	KindColumnDimension
	// KindMetric is an aggregated value column; its ValueID points at the metric that produced it.
	KindMetric
)

func (k HeaderKind) String() string {
	switch k {
	case KindColumnDimension:
		return "column_dimension"
	case KindMetric:
		return "metric"
	default:
		return "dimension"
	}
}

func (k HeaderKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *HeaderKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "column_dimension":
		*k = KindColumnDimension
	case "metric":
		*k = KindMetric
	default:
		*k = KindDimension
	}
	return nil
}

// Header describes one column of a Table.
type Header struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	DateFormat string     `json:"dateFormat,omitempty"`
	Kind       HeaderKind `json:"kind,omitempty"`
	ValueID    string     `json:"valueId,omitempty"`
	Index      int        `json:"index"`
}

// IsMetric reports whether the header was generated from a metric specification.
func (h Header) IsMetric() bool { return h.ValueID != "" }

func (h Header) IsNumber() bool { return h.Type == TypeNumber }
func (h Header) IsDate() bool   { return h.Type == TypeDate }

// Table is a header list plus positionally aligned string rows.
type Table struct {
	Headers []Header   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func NewTable(headers []Header, rows [][]string) *Table {
	return &Table{Headers: Stamp(headers), Rows: rows}
}

func (t *Table) NumRows() int { return len(t.Rows) }
func (t *Table) NumCols() int { return len(t.Headers) }

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	return Cell(t.Rows[row], col)
}

// Index builds the id/name lookup for the table's headers.
func (t *Table) Index() Index { return BuildIndex(t.Headers) }

// Header returns the header addressed by id or name.
func (t *Table) Header(key string) (Header, bool) {
	i, ok := t.Index().Resolve(key)
	if !ok {
		return Header{}, false
	}
	return t.Headers[i], true
}

// Clone returns a table whose header and row slices can be changed without touching t.
func (t *Table) Clone() *Table {
	out := &Table{Headers: make([]Header, len(t.Headers)), Rows: make([][]string, len(t.Rows))}
	copy(out.Headers, t.Headers)
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// Cell returns row[col], treating a missing cell as empty.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Stamp returns a copy of headers with Index set to each header's position.
func Stamp(headers []Header) []Header {
	out := make([]Header, len(headers))
	for i, h := range headers {
		h.Index = i
		out[i] = h
	}
	return out
}

// MapColumn returns a copy of t with fn applied to every non-empty cell of
// the column addressed by key. It returns nil when key does not resolve.
// Rows whose cell does not change are shared with t.
func (t *Table) MapColumn(key string, fn func(string) string) *Table {
	col, ok := t.Index().Resolve(key)
	if !ok {
		return nil
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r
		v := Cell(r, col)
		if v == "" {
			continue
		}
		if nv := fn(v); nv != v {
			cp := append([]string(nil), r...)
			cp[col] = nv
			rows[i] = cp
		}
	}
	return &Table{Headers: t.Headers, Rows: rows}
}

// FillColumn returns a copy of t whose empty cells in the addressed column
// are set to value, or nil when key does not resolve. Short rows are padded.
func (t *Table) FillColumn(key, value string) *Table {
	col, ok := t.Index().Resolve(key)
	if !ok {
		return nil
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r
		if strings.TrimSpace(Cell(r, col)) != "" {
			continue
		}
		cp := make([]string, max(len(r), col+1))
		copy(cp, r)
		cp[col] = value
		rows[i] = cp
	}
	return &Table{Headers: t.Headers, Rows: rows}
}

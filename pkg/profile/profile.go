// Package profile collects per-column summaries of a table, chunk by chunk.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type NumStats struct {
	Count   int     `json:"count"`
	Invalid int     `json:"invalid"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Sum     float64 `json:"sum"`
}

func (n *NumStats) Mean() float64 {
	if n.Count == 0 {
		return 0
	}
	return n.Sum / float64(n.Count)
}

type DateStats struct {
	Count   int       `json:"count"`
	Invalid int       `json:"invalid"`
	Min     time.Time `json:"min"`
	Max     time.Time `json:"max"`
}

type ColumnProfile struct {
	Name   string              `json:"name"`
	Type   tablekit.ColumnType `json:"type"`
	Filled int                 `json:"filled"`
	Empty  int                 `json:"empty"`
	Num    *NumStats           `json:"num,omitempty"`
	Date   *DateStats          `json:"date,omitempty"`
	Top    []ValueCount        `json:"top,omitempty"`

	dateFormat string
	freqs      map[string]int
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Collector struct {
	cols []ColumnProfile
	topK int
	rows int
}

// NewCollector prepares one profile per header. topK bounds the number of
// most frequent values reported per column; 0 disables frequency tracking.
func NewCollector(headers []tablekit.Header, topK int) *Collector {
	c := &Collector{topK: topK, cols: make([]ColumnProfile, len(headers))}
	for i, h := range headers {
		cp := ColumnProfile{Name: h.Name, Type: h.Type, dateFormat: h.DateFormat}
		switch h.Type {
		case tablekit.TypeNumber:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		case tablekit.TypeDate:
			cp.Date = &DateStats{}
		}
		if topK > 0 {
			cp.freqs = make(map[string]int)
		}
		c.cols[i] = cp
	}
	return c
}

// Consume adds every row of t. Tables must share the collector's header layout.
func (c *Collector) Consume(t *tablekit.Table) {
	for _, row := range t.Rows {
		c.rows++
		for i := range c.cols {
			c.cols[i].add(strings.TrimSpace(tablekit.Cell(row, i)))
		}
	}
}

// Write lets a Collector act as a streaming sink.
func (c *Collector) Write(t *tablekit.Table) error {
	c.Consume(t)
	return nil
}

func (c *Collector) Close() error { return nil }

func (cp *ColumnProfile) add(v string) {
	if v == "" {
		cp.Empty++
		return
	}
	cp.Filled++
	if cp.freqs != nil {
		cp.freqs[v]++
	}
	switch {
	case cp.Num != nil:
		x, ok := parse.NumberOK(v)
		if !ok {
			cp.Num.Invalid++
			return
		}
		cp.Num.Count++
		cp.Num.Sum += x
		cp.Num.Min = math.Min(cp.Num.Min, x)
		cp.Num.Max = math.Max(cp.Num.Max, x)
	case cp.Date != nil:
		d, ok := parse.Date(v, cp.dateFormat)
		if !ok {
			cp.Date.Invalid++
			return
		}
		if cp.Date.Count == 0 || d.Before(cp.Date.Min) {
			cp.Date.Min = d
		}
		if cp.Date.Count == 0 || d.After(cp.Date.Max) {
			cp.Date.Max = d
		}
		cp.Date.Count++
	}
}

func (c *Collector) Rows() int { return c.rows }

// Columns returns the finished profiles with Top filled in, most frequent
// first and ties broken by value.
func (c *Collector) Columns() []ColumnProfile {
	out := make([]ColumnProfile, len(c.cols))
	for i, cp := range c.cols {
		cp.Top = c.top(cp.freqs)
		out[i] = cp
	}
	return out
}

func (c *Collector) top(freqs map[string]int) []ValueCount {
	if len(freqs) == 0 {
		return nil
	}
	arr := make([]ValueCount, 0, len(freqs))
	for k, v := range freqs {
		arr = append(arr, ValueCount{Value: k, Count: v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].Count != arr[j].Count {
			return arr[i].Count > arr[j].Count
		}
		return arr[i].Value < arr[j].Value
	})
	if len(arr) > c.topK {
		arr = arr[:c.topK]
	}
	return arr
}

func (c *Collector) ReportText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile Summary (%d rows)\n", c.rows)
	for _, cp := range c.Columns() {
		fmt.Fprintf(&b, "- %s (%s): filled=%d empty=%d", cp.Name, cp.Type, cp.Filled, cp.Empty)
		switch {
		case cp.Num != nil && cp.Num.Count > 0:
			fmt.Fprintf(&b, " invalid=%d min=%.6g max=%.6g mean=%.6g", cp.Num.Invalid, cp.Num.Min, cp.Num.Max, cp.Num.Mean())
		case cp.Date != nil && cp.Date.Count > 0:
			fmt.Fprintf(&b, " invalid=%d min=%s max=%s", cp.Date.Invalid, cp.Date.Min.Format(time.RFC3339), cp.Date.Max.Format(time.RFC3339))
		}
		b.WriteByte('\n')
		for _, vc := range cp.Top {
			fmt.Fprintf(&b, "  • %q: %d\n", vc.Value, vc.Count)
		}
	}
	return b.String()
}

type JSONProfile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

func (c *Collector) ReportJSON() JSONProfile {
	cols := c.Columns()
	for i := range cols {
		// infinities from an all-invalid column do not marshal
		if cols[i].Num != nil && cols[i].Num.Count == 0 {
			cols[i].Num.Min, cols[i].Num.Max = 0, 0
		}
	}
	return JSONProfile{Rows: c.rows, Columns: cols}
}

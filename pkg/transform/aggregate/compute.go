package aggregate

import (
	"strings"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// Compute applies op over values. rows is the group size and is what count reports.
// An empty value list yields 0 for every other operation.
func Compute(op tablekit.AggregationType, values []float64, rows int) float64 {
	if op == tablekit.AggCount {
		return float64(rows)
	}
	if len(values) == 0 {
		return 0
	}
	switch op {
	case tablekit.AggSum, tablekit.AggAverage:
		var sum float64
		for _, v := range values {
			sum += v
		}
		if op == tablekit.AggAverage {
			return sum / float64(len(values))
		}
		return sum
	case tablekit.AggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case tablekit.AggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	}
	return 0
}

// Numbers parses column pos of each row, skipping empty cells. Non-numeric
// cells count as 0.
func Numbers(rows [][]string, pos int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		cell := tablekit.Cell(row, pos)
		if strings.TrimSpace(cell) == "" {
			continue
		}
		out = append(out, parse.Number(cell))
	}
	return out
}

package parse

import (
	"strings"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// InferTypes assigns number, date or text to each of ncol columns by majority
// over the non-empty sampled cells. Numbers win ties with dates.
func InferTypes(rows [][]string, ncol int, dateFormat string) []tablekit.ColumnType {
	types := make([]tablekit.ColumnType, ncol)
	for c := 0; c < ncol; c++ {
		num, date, str := 0, 0, 0
		for _, row := range rows {
			v := strings.TrimSpace(tablekit.Cell(row, c))
			if v == "" {
				continue
			}
			if _, ok := NumberStrict(v); ok {
				num++
			} else if _, ok := Date(v, dateFormat); ok {
				date++
			} else {
				str++
			}
		}
		switch {
		case num > 0 && num >= date && num > str:
			types[c] = tablekit.TypeNumber
		case date > str:
			types[c] = tablekit.TypeDate
		default:
			types[c] = tablekit.TypeText
		}
	}
	return types
}

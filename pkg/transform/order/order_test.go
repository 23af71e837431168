package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

var headers = []tablekit.Header{
	{ID: "name", Name: "Name", Type: tablekit.TypeText},
	{ID: "qty", Name: "Qty", Type: tablekit.TypeNumber},
	{ID: "seq", Name: "Seq", Type: tablekit.TypeText},
}

func TestRowsNumericCollation(t *testing.T) {
	rows := [][]string{{"a", "10", "1"}, {"b", "2", "2"}, {"c", "1", "3"}}
	got := Rows(rows, []Level{{ColumnID: "qty", Direction: Asc}}, tablekit.BuildIndex(headers))
	assert.Equal(t, []string{"1", "2", "10"}, column(got, 1))
	assert.Equal(t, "a", rows[0][0], "input must not be reordered")
}

func TestRowsDescending(t *testing.T) {
	rows := [][]string{{"a", "10", "1"}, {"b", "2", "2"}, {"c", "1", "3"}}
	got := Rows(rows, []Level{{ColumnID: "Qty", Direction: Desc}}, tablekit.BuildIndex(headers))
	assert.Equal(t, []string{"10", "2", "1"}, column(got, 1))
}

func TestRowsTieBreakAndStability(t *testing.T) {
	rows := [][]string{
		{"x", "1", "first"},
		{"y", "2", "second"},
		{"x", "1", "third"},
		{"x", "0", "fourth"},
	}
	got := Rows(rows, []Level{{ColumnID: "name", Direction: Asc}, {ColumnID: "qty", Direction: Asc}}, tablekit.BuildIndex(headers))
	assert.Equal(t, []string{"fourth", "first", "third", "second"}, column(got, 2))
}

func TestRowsUnknownLevelSkipped(t *testing.T) {
	rows := [][]string{{"b", "1", "1"}, {"a", "2", "2"}}
	got := Rows(rows, []Level{{ColumnID: "missing"}, {ColumnID: "name"}}, tablekit.BuildIndex(headers))
	assert.Equal(t, []string{"a", "b"}, column(got, 0))

	got = Rows(rows, []Level{{ColumnID: "missing"}}, tablekit.BuildIndex(headers))
	assert.Equal(t, rows, got)
}

func TestSortTransform(t *testing.T) {
	in := tablekit.NewTable(headers, [][]string{{"b", "1", "1"}, {"a", "2", "2"}})
	out, err := (&Sort{Levels: []Level{{ColumnID: "name"}}}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "a", out.Cell(0, 0))
	assert.Equal(t, "b", in.Cell(0, 0))
}

func column(rows [][]string, i int) []string {
	out := make([]string, len(rows))
	for r, row := range rows {
		out[r] = row[i]
	}
	return out
}

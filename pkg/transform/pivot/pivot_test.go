package pivot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/tablekit/pkg/tablekit"
	"github.com/wdm0006/tablekit/pkg/transform/aggregate"
)

var (
	salesHeaders = []tablekit.Header{
		{ID: "cat", Name: "Category", Type: tablekit.TypeText},
		{ID: "amt", Name: "Amount", Type: tablekit.TypeNumber},
		{ID: "yr", Name: "Year", Type: tablekit.TypeText},
		{ID: "reg", Name: "Region", Type: tablekit.TypeText},
	}
	salesRows = [][]string{
		{"A", "10", "2023", "North"},
		{"B", "20", "2024", "South"},
		{"A", "5", "2024", "North"},
	}
)

func names(t *tablekit.Table) []string {
	out := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		out[i] = h.Name
	}
	return out
}

func TestTableWithoutColumnsMatchesGroupBy(t *testing.T) {
	idx := tablekit.BuildIndex(salesHeaders)
	out := Table(salesRows, salesHeaders, Spec{
		Rows:   []tablekit.Dimension{{ID: "cat", Name: "Category"}},
		Values: []Value{{ID: "m1", ColumnID: "amt", AggregationType: tablekit.AggSum}},
	}, idx)
	require.NotNil(t, out)

	grouped := aggregate.Table(salesRows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat", Name: "Category"}},
		[]tablekit.Metric{{ID: "m1", ColumnID: "amt", Type: tablekit.AggSum}}, idx)
	require.NotNil(t, grouped)

	assert.ElementsMatch(t, [][]string{{"A", "15"}, {"B", "20"}}, out.Rows)
	assert.Equal(t, grouped.Rows, out.Rows)
	assert.Equal(t, []string{"Category", "Sum of Amount"}, names(out))
	assert.Equal(t, "m1", out.Headers[1].ValueID)
	assert.Equal(t, "m1", out.Headers[1].ID)
}

func TestTableCrossTabIsComplete(t *testing.T) {
	out := Table(salesRows, salesHeaders, Spec{
		Rows:    []tablekit.Dimension{{ID: "cat"}},
		Columns: []tablekit.Dimension{{ID: "yr"}},
		Values: []Value{
			{ID: "s", ColumnID: "amt", AggregationType: tablekit.AggSum},
			{ID: "n", AggregationType: tablekit.AggCount},
		},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)

	assert.Equal(t, []string{
		"Category",
		"Sum of Amount (2023)", "Count (2023)",
		"Sum of Amount (2024)", "Count (2024)",
	}, names(out))
	assert.Equal(t, [][]string{
		{"A", "10", "1", "5", "1"},
		{"B", "0", "0", "20", "1"},
	}, out.Rows)
	for _, row := range out.Rows {
		assert.Len(t, row, len(out.Headers))
	}
	assert.Equal(t, "s|2023", out.Headers[1].ID)
	assert.Equal(t, "s", out.Headers[1].ValueID)
	assert.Equal(t, tablekit.KindMetric, out.Headers[2].Kind)
}

func TestTableMultipleColumnDimensions(t *testing.T) {
	out := Table(salesRows, salesHeaders, Spec{
		Rows:    []tablekit.Dimension{{ID: "cat"}},
		Columns: []tablekit.Dimension{{ID: "yr"}, {ID: "reg"}},
		Values:  []Value{{ID: "s", ColumnID: "amt", AggregationType: tablekit.AggMax, Alias: "Top"}},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, []string{"Category", "Top", "Top_1", "Top_2"}, names(out))
	assert.Equal(t, "s|2023|North", out.Headers[1].ID)

	out = Table(salesRows, salesHeaders, Spec{
		Columns: []tablekit.Dimension{{ID: "yr"}, {ID: "reg"}},
		Values:  []Value{{ID: "s", ColumnID: "amt", AggregationType: tablekit.AggAverage}},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, []string{
		"Average of Amount (2023 | North)",
		"Average of Amount (2024 | South)",
		"Average of Amount (2024 | North)",
	}, names(out))
	assert.Equal(t, [][]string{{"10", "20", "5"}}, out.Rows)
}

func TestTableDimensionOnlyPresence(t *testing.T) {
	out := Table(salesRows, salesHeaders, Spec{
		Rows:    []tablekit.Dimension{{ID: "cat"}},
		Columns: []tablekit.Dimension{{ID: "reg"}},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)

	assert.Equal(t, []string{"Category", "North", "South"}, names(out))
	assert.Equal(t, [][]string{{"A", "0", ""}, {"B", "", "0"}}, out.Rows)
	assert.Equal(t, tablekit.KindColumnDimension, out.Headers[1].Kind)
	assert.False(t, out.Headers[1].IsMetric())
}

func TestTableDistinctRows(t *testing.T) {
	out := Table(salesRows, salesHeaders, Spec{
		Rows: []tablekit.Dimension{{ID: "cat"}, {ID: "reg"}},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, []string{"Category", "Region"}, names(out))
	assert.Equal(t, [][]string{{"A", "North"}, {"B", "South"}}, out.Rows)
}

func TestTableNil(t *testing.T) {
	idx := tablekit.BuildIndex(salesHeaders)
	assert.Nil(t, Table(salesRows, salesHeaders, Spec{}, idx))
	assert.Nil(t, Table(salesRows, nil, Spec{Rows: []tablekit.Dimension{{ID: "cat"}}}, idx))
	assert.Nil(t, Table(salesRows, salesHeaders, Spec{Rows: []tablekit.Dimension{{ID: "unknown"}}}, idx))
}

func TestTableBlankComboLabel(t *testing.T) {
	rows := [][]string{{"A", "1", "", "North"}}
	out := Table(rows, salesHeaders, Spec{
		Columns: []tablekit.Dimension{{ID: "yr"}},
		Values:  []Value{{ID: "s", ColumnID: "amt", AggregationType: tablekit.AggSum}},
	}, tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, "Sum of Amount ((blank))", out.Headers[0].Name)
}

func TestPivotTransform(t *testing.T) {
	in := tablekit.NewTable(salesHeaders, salesRows)
	step := &Pivot{Spec: Spec{Rows: []tablekit.Dimension{{ID: "Region"}}}}
	out, err := step.Apply(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.NumRows())

	out, err = (&Pivot{}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func pipedRows() ([]tablekit.Header, [][]string) {
	headers := []tablekit.Header{
		{ID: "r", Name: "Row", Type: tablekit.TypeText},
		{ID: "a", Name: "A", Type: tablekit.TypeText},
		{ID: "b", Name: "B", Type: tablekit.TypeText},
		{ID: "v", Name: "V", Type: tablekit.TypeNumber},
	}
	return headers, [][]string{{"x", "p|q", "s", "1"}, {"x", "p", "q|s", "2"}}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	headers, rows := pipedRows()
	out := Table(rows, headers, Spec{
		Rows:    []tablekit.Dimension{{ID: "r"}},
		Columns: []tablekit.Dimension{{ID: "a"}, {ID: "b"}},
		Values:  []Value{{ID: "m", ColumnID: "v", AggregationType: tablekit.AggSum}},
	}, tablekit.BuildIndex(headers))
	require.NotNil(t, out)
	require.Len(t, out.Headers, 3)

	assert.Equal(t, "m|p|q|s", out.Headers[1].ID)
	assert.Equal(t, "m|p|q|s_1", out.Headers[2].ID)
	assert.Equal(t, []string{"Row", "Sum of V (p|q | s)", "Sum of V (p | q|s)"}, names(out))
	assert.Equal(t, [][]string{{"x", "1", "2"}}, out.Rows)

	idx := out.Index()
	i, ok := idx.Resolve("m|p|q|s")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	i, ok = idx.Resolve("m|p|q|s_1")
	require.True(t, ok)
	assert.Equal(t, 2, i)
}

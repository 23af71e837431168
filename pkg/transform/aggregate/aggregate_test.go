package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

var (
	salesHeaders = []tablekit.Header{
		{ID: "cat", Name: "Category", Type: tablekit.TypeText},
		{ID: "amt", Name: "Amount", Type: tablekit.TypeNumber},
	}
	salesRows = [][]string{{"A", "10"}, {"B", "20"}, {"A", "5"}}
)

func headerNames(t *tablekit.Table) []string {
	out := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		out[i] = h.Name
	}
	return out
}

func TestTableGroupSum(t *testing.T) {
	out := Table(salesRows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat", Name: "Category"}},
		[]tablekit.Metric{{ID: "m1", ColumnID: "amt", Type: tablekit.AggSum}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)

	assert.Equal(t, []string{"Category", "sum(Amount)"}, headerNames(out))
	assert.ElementsMatch(t, [][]string{{"A", "15"}, {"B", "20"}}, out.Rows)

	metric := out.Headers[1]
	assert.Equal(t, "m1", metric.ValueID)
	assert.Equal(t, tablekit.KindMetric, metric.Kind)
	assert.Equal(t, tablekit.TypeNumber, metric.Type)
	assert.Equal(t, 1, metric.Index)
	assert.False(t, out.Headers[0].IsMetric())
}

func TestTableNoGroupBySingleRow(t *testing.T) {
	rows := [][]string{{"x", "1.5"}, {"y", ""}, {"z", "2.5"}, {"w", "$1,000"}}
	out := Table(rows, salesHeaders, nil,
		[]tablekit.Metric{{ID: "s", ColumnID: "amt", Type: tablekit.AggSum}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, [][]string{{"1004"}}, out.Rows)
}

func TestTableOperations(t *testing.T) {
	rows := [][]string{{"A", "4"}, {"A", ""}, {"A", "abc"}, {"A", "8"}}
	out := Table(rows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat"}},
		[]tablekit.Metric{
			{ID: "avg", ColumnID: "amt", Type: tablekit.AggAverage},
			{ID: "min", ColumnID: "amt", Type: tablekit.AggMin},
			{ID: "max", ColumnID: "amt", Type: tablekit.AggMax},
			{ID: "n", Type: tablekit.AggCount},
		},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	// "abc" parses to 0 and counts; the empty cell does not
	assert.Equal(t, [][]string{{"A", "4", "0", "8", "4"}}, out.Rows)
	assert.Equal(t, []string{"Category", "average(Amount)", "min(Amount)", "max(Amount)", "count()"}, headerNames(out))
}

func TestTableEmptyMetricInputsDefaultToZero(t *testing.T) {
	rows := [][]string{{"A", ""}, {"A", " "}}
	out := Table(rows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat"}},
		[]tablekit.Metric{{ID: "mx", ColumnID: "amt", Type: tablekit.AggMax}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, [][]string{{"A", "0"}}, out.Rows)
}

func TestTableNameCollisionsAreStable(t *testing.T) {
	groupBy := []tablekit.Dimension{{ID: "cat"}}
	metrics := []tablekit.Metric{
		{ID: "a", ColumnID: "amt", Type: tablekit.AggSum, Alias: "Category"},
		{ID: "b", ColumnID: "amt", Type: tablekit.AggSum},
		{ID: "c", ColumnID: "amt", Type: tablekit.AggSum},
	}
	idx := tablekit.BuildIndex(salesHeaders)
	first := Table(salesRows, salesHeaders, groupBy, metrics, idx)
	second := Table(salesRows, salesHeaders, groupBy, metrics, idx)
	require.NotNil(t, first)

	want := []string{"Category", "Category_1", "sum(Amount)", "sum(Amount)_1"}
	assert.Equal(t, want, headerNames(first))
	assert.Equal(t, headerNames(first), headerNames(second))
}

func TestTableTimeBucket(t *testing.T) {
	headers := []tablekit.Header{
		{ID: "d", Name: "Date", Type: tablekit.TypeDate, DateFormat: "YYYY-MM-DD"},
		{ID: "v", Name: "Value", Type: tablekit.TypeNumber},
	}
	rows := [][]string{
		{"2024-01-15", "1"},
		{"2024-02-20", "2"},
		{"2024-04-01", "4"},
		{"garbage", "8"},
	}
	out := Table(rows, headers,
		[]tablekit.Dimension{{ID: "d", TimeUnit: tablekit.UnitQuarter}},
		[]tablekit.Metric{{ID: "s", ColumnID: "v", Type: tablekit.AggSum}},
		tablekit.BuildIndex(headers))
	require.NotNil(t, out)

	assert.Equal(t, [][]string{{"2024-Q1", "3"}, {"2024-Q2", "4"}, {"garbage", "8"}}, out.Rows)
	assert.Equal(t, "Date (quarter)", out.Headers[0].Name)
	assert.Equal(t, tablekit.TypeText, out.Headers[0].Type)

	out = Table(rows, headers,
		[]tablekit.Dimension{{ID: "d", TimeUnit: tablekit.UnitMonth}},
		[]tablekit.Metric{{ID: "s", ColumnID: "v", Type: tablekit.AggSum}},
		tablekit.BuildIndex(headers))
	require.NotNil(t, out)
	assert.Equal(t, "YYYY-MM", out.Headers[0].DateFormat)
	assert.Equal(t, tablekit.TypeDate, out.Headers[0].Type)
}

func TestTableTimeUnitIgnoredOnText(t *testing.T) {
	out := Table(salesRows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat", TimeUnit: tablekit.UnitYear}},
		[]tablekit.Metric{{ID: "n", Type: tablekit.AggCount}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, "Category", out.Headers[0].Name)
}

func TestTablePassThrough(t *testing.T) {
	idx := tablekit.BuildIndex(salesHeaders)
	assert.Nil(t, Table(salesRows, salesHeaders, []tablekit.Dimension{{ID: "cat"}}, nil, idx))
	assert.Nil(t, Table(nil, salesHeaders, nil, []tablekit.Metric{{ID: "n", Type: tablekit.AggCount}}, idx))
	assert.Nil(t, Table(salesRows, nil, nil, []tablekit.Metric{{ID: "n", Type: tablekit.AggCount}}, idx))
	assert.Nil(t, Table(salesRows, salesHeaders, nil, []tablekit.Metric{{ID: "s", ColumnID: "gone", Type: tablekit.AggSum}}, idx))
}

func TestTableUnknownGroupBySkipped(t *testing.T) {
	out := Table(salesRows, salesHeaders,
		[]tablekit.Dimension{{ID: "gone"}, {ID: "cat"}},
		[]tablekit.Metric{{ID: "n", Type: tablekit.AggCount}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)
	assert.Equal(t, []string{"Category", "count()"}, headerNames(out))
	assert.Equal(t, [][]string{{"A", "2"}, {"B", "1"}}, out.Rows)
}

func TestAggregateTransform(t *testing.T) {
	in := tablekit.NewTable(salesHeaders, salesRows)
	step := &Aggregate{Metrics: []tablekit.Metric{{ID: "s", ColumnID: "Amount", Type: tablekit.AggSum}}}
	out, err := step.Apply(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, [][]string{{"35"}}, out.Rows)

	out, err = (&Aggregate{}).Apply(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMetricIDCollidingWithGroupByIsRenamed(t *testing.T) {
	out := Table(salesRows, salesHeaders,
		[]tablekit.Dimension{{ID: "cat"}},
		[]tablekit.Metric{{ID: "cat", ColumnID: "amt", Type: tablekit.AggSum}},
		tablekit.BuildIndex(salesHeaders))
	require.NotNil(t, out)

	assert.Equal(t, "cat", out.Headers[0].ID)
	assert.Equal(t, "cat_1", out.Headers[1].ID)
	assert.Equal(t, "cat", out.Headers[1].ValueID)

	i, ok := out.Index().Resolve("cat")
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

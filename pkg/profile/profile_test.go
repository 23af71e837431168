package profile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

func TestCollector(t *testing.T) {
	headers := []tablekit.Header{
		{ID: "cat", Name: "Category", Type: tablekit.TypeText},
		{ID: "amt", Name: "Amount", Type: tablekit.TypeNumber},
		{ID: "when", Name: "When", Type: tablekit.TypeDate},
	}
	c := NewCollector(headers, 1)
	c.Consume(tablekit.NewTable(headers, [][]string{{"A", "10", "2024-01-15"}, {"B", "n/a", "2024-03-01"}}))
	require.NoError(t, c.Write(tablekit.NewTable(headers, [][]string{{"A", "$1,000", ""}})))

	cols := c.Columns()
	assert.Equal(t, 3, c.Rows())

	assert.Equal(t, 3, cols[0].Filled)
	assert.Equal(t, []ValueCount{{Value: "A", Count: 2}}, cols[0].Top)

	require.NotNil(t, cols[1].Num)
	assert.Equal(t, 2, cols[1].Num.Count)
	assert.Equal(t, 1, cols[1].Num.Invalid)
	assert.Equal(t, 10.0, cols[1].Num.Min)
	assert.Equal(t, 1000.0, cols[1].Num.Max)
	assert.Equal(t, 505.0, cols[1].Num.Mean())

	require.NotNil(t, cols[2].Date)
	assert.Equal(t, 1, cols[2].Empty)
	assert.Equal(t, "2024-01-15", cols[2].Date.Min.Format("2006-01-02"))
	assert.Equal(t, "2024-03-01", cols[2].Date.Max.Format("2006-01-02"))

	text := c.ReportText()
	assert.True(t, strings.HasPrefix(text, "Profile Summary (3 rows)\n"))
	assert.Contains(t, text, "- Amount (number): filled=3 empty=0 invalid=1 min=10 max=1000 mean=505")
}

func TestReportJSONWithoutNumbers(t *testing.T) {
	headers := []tablekit.Header{{ID: "v", Name: "v", Type: tablekit.TypeNumber}}
	c := NewCollector(headers, 0)
	c.Consume(tablekit.NewTable(headers, [][]string{{"x"}, {""}}))
	b, err := json.Marshal(c.ReportJSON())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"invalid":1`)
	assert.NotContains(t, string(b), `"top"`)
}

package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

func TestNumber(t *testing.T) {
	cases := map[string]float64{
		"$1,234.50": 1234.5,
		"abc":       0,
		"":          0,
		"  42 ":     42,
		"€ 1 000":   1000,
		"£3.5":      3.5,
		"¥-7":       -7,
		"₹1e3":      1000,
		"12%":       12,
		".5":        0.5,
	}
	for in, want := range cases {
		assert.Equal(t, want, Number(in), "Number(%q)", in)
	}
}

func TestNumberOK(t *testing.T) {
	_, ok := NumberOK("abc")
	assert.False(t, ok)
	_, ok = NumberOK("   ")
	assert.False(t, ok)
	v, ok := NumberOK("0")
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "15", FormatNumber(15))
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "1000000", FormatNumber(1e6))
}

func TestLayout(t *testing.T) {
	assert.Equal(t, "2006-01-02", Layout("YYYY-MM-DD"))
	assert.Equal(t, "January 2006", Layout("Month YYYY"))
	assert.Equal(t, "Jan 2, 2006", Layout("MMM D, YYYY"))
	assert.Equal(t, "02/01/06 15:04:05", Layout("DD/MM/YY HH:mm:ss"))
	assert.Equal(t, "2006-01-02T15:04", Layout("YYYY-MM-DD[T]HH:mm"))
}

func TestDate(t *testing.T) {
	d, ok := Date("15/03/2024", "DD/MM/YYYY")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = Date("March 2024", "Month YYYY")
	require.True(t, ok)
	assert.Equal(t, time.March, d.Month())

	// format mismatch falls back to ISO
	d, ok = Date("2024-03-15", "DD/MM/YYYY")
	require.True(t, ok)
	assert.Equal(t, 15, d.Day())

	// lenient auto-detect
	d, ok = Date("2024-03-15T10:30:00Z", "")
	require.True(t, ok)
	assert.Equal(t, 10, d.Hour())

	_, ok = Date("not a date", "")
	assert.False(t, ok)
	_, ok = Date("  ", "YYYY")
	assert.False(t, ok)
}

func TestDateEpochMillis(t *testing.T) {
	d, ok := Date("1710460800000", "")
	require.True(t, ok)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
}

func TestTimeBucket(t *testing.T) {
	assert.Equal(t, "2024-Q1", TimeBucket("2024-03-15", tablekit.UnitQuarter, ""))
	assert.Equal(t, "2024-Q4", TimeBucket("2024-10-01", tablekit.UnitQuarter, ""))
	assert.Equal(t, "2024", TimeBucket("2024-03-15", tablekit.UnitYear, ""))
	assert.Equal(t, "2024-03", TimeBucket("2024-03-15", tablekit.UnitMonth, ""))
	assert.Equal(t, "2024-03-15", TimeBucket("15/03/2024", tablekit.UnitDay, "DD/MM/YYYY"))
	assert.Equal(t, "2024-03-15 09", TimeBucket("2024-03-15 09:07:05", tablekit.UnitHour, "YYYY-MM-DD HH:mm:ss"))
	assert.Equal(t, "2024-03-15 09:07", TimeBucket("2024-03-15 09:07:05", tablekit.UnitMinute, "YYYY-MM-DD HH:mm:ss"))
	assert.Equal(t, "2024-03-15 09:07:05", TimeBucket("2024-03-15 09:07:05", tablekit.UnitSecond, "YYYY-MM-DD HH:mm:ss"))

	// unparseable and unbucketed values pass through
	assert.Equal(t, "soon", TimeBucket("soon", tablekit.UnitMonth, ""))
	assert.Equal(t, "2024-03-15", TimeBucket("2024-03-15", tablekit.UnitNone, ""))
}

func TestBucketFormatRoundTrips(t *testing.T) {
	for _, u := range []tablekit.TimeUnit{tablekit.UnitYear, tablekit.UnitMonth, tablekit.UnitDay, tablekit.UnitHour, tablekit.UnitMinute, tablekit.UnitSecond} {
		key := TimeBucket("2024-03-15 09:07:05", u, "YYYY-MM-DD HH:mm:ss")
		_, ok := Date(key, BucketFormat(u))
		assert.True(t, ok, "unit %s key %q", u, key)
	}
	assert.Empty(t, BucketFormat(tablekit.UnitQuarter))
}

func TestNumberStrict(t *testing.T) {
	v, ok := NumberStrict("$1,200")
	assert.True(t, ok)
	assert.Equal(t, 1200.0, v)
	_, ok = NumberStrict("2024-03-15")
	assert.False(t, ok)
	_, ok = NumberStrict("10kg")
	assert.False(t, ok)
}

func TestInferTypes(t *testing.T) {
	rows := [][]string{
		{"A", "$1,200", "2024-01-15", ""},
		{"B", "20", "Mar 3, 2024", "x"},
		{"C", "", "2024-03-15", "1"},
	}
	got := InferTypes(rows, 4, "")
	assert.Equal(t, []tablekit.ColumnType{tablekit.TypeText, tablekit.TypeNumber, tablekit.TypeDate, tablekit.TypeText}, got)
	assert.Equal(t, []tablekit.ColumnType{tablekit.TypeText}, InferTypes(nil, 1, ""))
}

package tablekit

// TimeUnit is a date-truncation granularity used when grouping date columns.
type TimeUnit string

const (
	UnitNone    TimeUnit = ""
	UnitSecond  TimeUnit = "second"
	UnitMinute  TimeUnit = "minute"
	UnitHour    TimeUnit = "hour"
	UnitDay     TimeUnit = "day"
	UnitMonth   TimeUnit = "month"
	UnitQuarter TimeUnit = "quarter"
	UnitYear    TimeUnit = "year"
)

// AggregationType names a metric operation.
type AggregationType string

const (
	AggSum     AggregationType = "sum"
	AggAverage AggregationType = "average"
	AggMin     AggregationType = "min"
	AggMax     AggregationType = "max"
	AggCount   AggregationType = "count"
)

// Dimension is a group-by column, also used for pivot row and column axes.
type Dimension struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TimeUnit TimeUnit `json:"timeUnit,omitempty"`
}

// Metric is one aggregation over a source column. ColumnID may be empty for count.
type Metric struct {
	ID       string          `json:"id"`
	ColumnID string          `json:"columnId,omitempty"`
	Type     AggregationType `json:"type"`
	Alias    string          `json:"alias,omitempty"`
}

package filter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wdm0006/tablekit/pkg/parse"
	"github.com/wdm0006/tablekit/pkg/tablekit"
)

type Operator string

const (
	Equals           Operator = "equals"
	NotEquals        Operator = "not_equals"
	Contains         Operator = "contains"
	NotContains      Operator = "not_contains"
	StartsWith       Operator = "starts_with"
	EndsWith         Operator = "ends_with"
	GreaterThan      Operator = "greater_than"
	GreaterOrEqual   Operator = "greater_or_equal"
	LessThan         Operator = "less_than"
	LessOrEqual      Operator = "less_or_equal"
	After            Operator = "after"
	Before           Operator = "before"
	IsEmpty          Operator = "is_empty"
	IsNotEmpty       Operator = "is_not_empty"
	Between          Operator = "between"
	BetweenExclusive Operator = "between_exclusive"
)

// Values is one or more comparison values. In JSON it may be a scalar or an array.
type Values []string

func (v *Values) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = nil
	case []any:
		out := make(Values, 0, len(t))
		for _, x := range t {
			if x != nil {
				out = append(out, scalar(x))
			}
		}
		*v = out
	default:
		*v = Values{scalar(t)}
	}
	return nil
}

func (v Values) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

func scalar(x any) string {
	switch t := x.(type) {
	case string:
		return t
	case float64:
		return parse.FormatNumber(t)
	default:
		return fmt.Sprint(t)
	}
}

// First returns the first value, or "".
func (v Values) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// present drops blank values.
func (v Values) present() []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Condition is a single predicate on a cell. ValueEnd is used by the range operators.
type Condition struct {
	Operator Operator `json:"operator"`
	Value    Values   `json:"value,omitempty"`
	ValueEnd Values   `json:"valueEnd,omitempty"`
}

// Cond builds a condition with one or more comparison values.
func Cond(op Operator, values ...string) Condition {
	return Condition{Operator: op, Value: Values(values)}
}

// Range builds a between-style condition.
func Range(op Operator, from, to string) Condition {
	return Condition{Operator: op, Value: Values{from}, ValueEnd: Values{to}}
}

// Outcome is the three-valued result of a condition. Indeterminate means the
// condition could not be evaluated and is treated as passing.
type Outcome int

const (
	Fail Outcome = iota
	Pass
	Indeterminate
)

func (o Outcome) Passes() bool { return o != Fail }

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Indeterminate:
		return "indeterminate"
	default:
		return "fail"
	}
}

func outcome(b bool) Outcome {
	if b {
		return Pass
	}
	return Fail
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Evaluate applies cond to cell, using h to decide between text, numeric and date semantics.
func Evaluate(cond Condition, cell string, h tablekit.Header) Outcome {
	switch cond.Operator {
	case IsEmpty:
		return outcome(isBlank(cell))
	case IsNotEmpty:
		return outcome(!isBlank(cell))
	}

	values := cond.Value.present()
	if len(values) == 0 && cond.Operator != Between && cond.Operator != BetweenExclusive {
		return Indeterminate
	}
	dateFormat := ""
	if h.IsDate() {
		dateFormat = h.DateFormat
	}

	switch cond.Operator {
	case Equals:
		return outcome(matchesAny(cell, values, h))
	case NotEquals:
		return outcome(!matchesAny(cell, values, h))
	case Contains:
		return outcome(strings.Contains(strings.ToLower(cell), strings.ToLower(values[0])))
	case NotContains:
		return outcome(!strings.Contains(strings.ToLower(cell), strings.ToLower(values[0])))
	case StartsWith:
		return outcome(strings.HasPrefix(strings.ToLower(cell), strings.ToLower(values[0])))
	case EndsWith:
		return outcome(strings.HasSuffix(strings.ToLower(cell), strings.ToLower(values[0])))
	case GreaterThan, GreaterOrEqual, LessThan, LessOrEqual:
		if h.IsDate() {
			return compareDates(cond.Operator, cell, values[0], dateFormat)
		}
		return compareNumbers(cond.Operator, cell, values[0])
	case After:
		return compareDates(GreaterThan, cell, values[0], dateFormat)
	case Before:
		return compareDates(LessThan, cell, values[0], dateFormat)
	case Between, BetweenExclusive:
		exclusive := cond.Operator == BetweenExclusive
		from, to := cond.Value.First(), cond.ValueEnd.First()
		// numeric range first, on any column type
		if x, ok := parse.NumberStrict(cell); ok {
			lo, loOK := parse.NumberStrict(from)
			hi, hiOK := parse.NumberStrict(to)
			if loOK || hiOK {
				return within(x, lo, hi, loOK, hiOK, exclusive)
			}
		}
		return dateRange(cell, from, to, dateFormat, exclusive)
	}
	return Indeterminate
}

// matchesAny compares by timestamp on date columns when both sides parse,
// and by raw string otherwise.
func matchesAny(cell string, values []string, h tablekit.Header) bool {
	var cellTime time.Time
	cellIsDate := false
	if h.IsDate() {
		cellTime, cellIsDate = parse.Date(cell, h.DateFormat)
	}
	for _, v := range values {
		if cellIsDate {
			if vt, ok := parse.Date(v, h.DateFormat); ok {
				if cellTime.Equal(vt) {
					return true
				}
				continue
			}
		}
		if strings.TrimSpace(cell) == strings.TrimSpace(v) {
			return true
		}
	}
	return false
}

func compareNumbers(op Operator, cell, value string) Outcome {
	x, ok := parse.NumberStrict(cell)
	if !ok {
		return Indeterminate
	}
	y, ok := parse.NumberStrict(value)
	if !ok {
		return Indeterminate
	}
	return outcome(ordered(op, cmpFloat(x, y)))
}

func compareDates(op Operator, cell, value, dateFormat string) Outcome {
	x, ok := parse.Date(cell, dateFormat)
	if !ok {
		return Indeterminate
	}
	y, ok := parse.Date(value, dateFormat)
	if !ok {
		return Indeterminate
	}
	return outcome(ordered(op, x.Compare(y)))
}

func dateRange(cell, from, to, dateFormat string, exclusive bool) Outcome {
	x, ok := parse.Date(cell, dateFormat)
	if !ok {
		return Indeterminate
	}
	lo, loOK := parse.Date(from, dateFormat)
	hi, hiOK := parse.Date(to, dateFormat)
	ms := func(t time.Time) float64 { return float64(t.UnixMilli()) }
	return within(ms(x), ms(lo), ms(hi), loOK, hiOK, exclusive)
}

// within checks x against whichever bounds parsed.
func within(x, lo, hi float64, loOK, hiOK, exclusive bool) Outcome {
	if !loOK && !hiOK {
		return Indeterminate
	}
	if loOK && (x < lo || exclusive && x == lo) {
		return Fail
	}
	if hiOK && (x > hi || exclusive && x == hi) {
		return Fail
	}
	return Pass
}

func ordered(op Operator, c int) bool {
	switch op {
	case GreaterThan:
		return c > 0
	case GreaterOrEqual:
		return c >= 0
	case LessThan:
		return c < 0
	case LessOrEqual:
		return c <= 0
	}
	return true
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

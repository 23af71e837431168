package parse

import (
	"fmt"

	"github.com/wdm0006/tablekit/pkg/tablekit"
)

// TimeBucket converts a raw date value into a grouping key for unit.
// Values that do not parse as dates are returned unchanged.
func TimeBucket(raw string, unit tablekit.TimeUnit, dateFormat string) string {
	if unit == tablekit.UnitNone {
		return raw
	}
	t, ok := Date(raw, dateFormat)
	if !ok {
		return raw
	}
	switch unit {
	case tablekit.UnitYear:
		return t.Format("2006")
	case tablekit.UnitQuarter:
		return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case tablekit.UnitMonth:
		return t.Format("2006-01")
	case tablekit.UnitDay:
		return t.Format("2006-01-02")
	case tablekit.UnitHour:
		return t.Format("2006-01-02 15")
	case tablekit.UnitMinute:
		return t.Format("2006-01-02 15:04")
	case tablekit.UnitSecond:
		return t.Format("2006-01-02 15:04:05")
	}
	return raw
}

// BucketFormat is the moment-style format of TimeBucket keys, or "" when the
// keys are not dates (quarters, unknown units).
func BucketFormat(unit tablekit.TimeUnit) string {
	switch unit {
	case tablekit.UnitYear:
		return "YYYY"
	case tablekit.UnitMonth:
		return "YYYY-MM"
	case tablekit.UnitDay:
		return "YYYY-MM-DD"
	case tablekit.UnitHour:
		return "YYYY-MM-DD HH"
	case tablekit.UnitMinute:
		return "YYYY-MM-DD HH:mm"
	case tablekit.UnitSecond:
		return "YYYY-MM-DD HH:mm:ss"
	}
	return ""
}

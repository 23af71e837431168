package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

// Date parses raw using dateFormat first, then strict ISO, then a lenient
// auto-detect, then integer epoch milliseconds. All results are UTC.
// ok is false only when every attempt fails.
func Date(raw, dateFormat string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if dateFormat != "" {
		if t, err := time.ParseInLocation(Layout(dateFormat), s, time.UTC); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation(isoDate, s, time.UTC); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC(), true
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// momentTokens maps moment-style tokens to Go layout fragments, longest first.
var momentTokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"D", "2"},
	{"HH", "15"},
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"SSS", "000"},
	{"A", "PM"},
	{"a", "pm"},
	{"ZZ", "-0700"},
	{"Z", "-07:00"},
}

// Layout converts a moment-style date format ("YYYY-MM-DD", "MMM D, YYYY") into a Go
// time layout. The human-readable token "Month" means the full month name.
// Text in square brackets is copied literally.
func Layout(format string) string {
	format = strings.ReplaceAll(format, "Month", "MMMM")
	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end > 0 {
				b.WriteString(format[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		matched := false
		for _, mt := range momentTokens {
			if strings.HasPrefix(format[i:], mt.token) {
				b.WriteString(mt.layout)
				i += len(mt.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

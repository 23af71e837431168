// Package parse holds the locale-tolerant value parsers shared by every stage.
// Parsers never fail loudly: callers get a zero value or an ok=false flag.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numericPrefix = regexp.MustCompile(`^[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?`)

// clean drops thousands separators, whitespace and the supported currency symbols.
func clean(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', '€', '£', '¥', '₹':
			return -1
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// NumberOK parses the leading numeric part of raw after cleanup.
// ok is false when no number can be read.
func NumberOK(raw string) (float64, bool) {
	s := clean(raw)
	if s == "" {
		return 0, false
	}
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NumberStrict is like NumberOK but requires the whole cleaned value to be numeric,
// so "2024-03-15" or "10 kg" are rejected.
func NumberStrict(raw string) (float64, bool) {
	s := clean(raw)
	if s == "" {
		return 0, false
	}
	if m := numericPrefix.FindString(s); m != s {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Number is NumberOK with unparseable input mapped to 0.
func Number(raw string) float64 {
	v, _ := NumberOK(raw)
	return v
}

// FormatNumber renders v as a plain decimal string without exponent or grouping.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package dates parses the calendar dates entered for trips and hotel stays.
// Comparisons are date-only: any time-of-day or offset component is dropped.
package dates

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

var layouts = []string{
	Layout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Parse returns the calendar day of s as midnight UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: "unable to parse date",
	}
}

func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Before reports whether a falls on a strictly earlier day than b.
// Unparseable input is never before anything.
func Before(a, b string) bool {
	ta, err := Parse(a)
	if err != nil {
		return false
	}
	tb, err := Parse(b)
	if err != nil {
		return false
	}
	return ta.Before(tb)
}

// Same reports whether a and b fall on the same day.
func Same(a, b string) bool {
	ta, err := Parse(a)
	if err != nil {
		return false
	}
	tb, err := Parse(b)
	if err != nil {
		return false
	}
	return ta.Equal(tb)
}

// Format renders t's calendar day in Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddDays renders the day n days after t.
func AddDays(t time.Time, n int) string {
	return Format(t.AddDate(0, 0, n))
}

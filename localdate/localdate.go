// Package localdate buckets instants into calendar days and ISO weeks of a local
// time zone. Keys are "YYYY-MM-DD" strings so they sort chronologically.
package localdate

import (
	"time"
)

const KeyLayout = "2006-01-02"

type Calendar struct {
	location *time.Location
}

// New returns a calendar for the given location. A nil location is UTC.
func New(location *time.Location) Calendar {
	if location == nil {
		location = time.UTC
	}
	return Calendar{location: location}
}

func (c Calendar) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// DateKey is the wall clock date of t in the calendar's zone.
func (c Calendar) DateKey(t time.Time) string {
	return t.In(c.Location()).Format(KeyLayout)
}

// WeekStart is the Monday of the ISO week containing t's local date.
func (c Calendar) WeekStart(t time.Time) string {
	return WeekStartOfKey(c.DateKey(t))
}

// Today is the local date key of now.
func (c Calendar) Today(now time.Time) string {
	return c.DateKey(now)
}

// StartOfDay returns the first instant of the key's date in the calendar's zone.
func (c Calendar) StartOfDay(key string) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, c.Location())
}

// Date keys are compared with civil arithmetic in UTC so daylight saving transitions
// never add or drop a day.
func civil(key string) (time.Time, bool) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts a date key by n calendar days. Invalid keys are returned unchanged.
func AddDays(key string, n int) string {
	t, ok := civil(key)
	if !ok {
		return key
	}
	return t.AddDate(0, 0, n).Format(KeyLayout)
}

// DaysBetween is the number of calendar days from a to b; negative when b precedes a.
func DaysBetween(a, b string) int {
	ta, okA := civil(a)
	tb, okB := civil(b)
	if !okA || !okB {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

func WeekStartOfKey(key string) string {
	t, ok := civil(key)
	if !ok {
		return key
	}
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1)).Format(KeyLayout)
}

// LastDays returns the n date keys ending at today, oldest first.
func LastDays(today string, n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, AddDays(today, -i))
	}
	return keys
}

// InRange reports whether from <= key <= to for date keys.
func InRange(key, from, to string) bool {
	return key >= from && key <= to
}

package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar date format used for fixture start dates.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, plain date, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// MidnightUTC truncates a timestamp to its calendar day in UTC.
// Fixture dates are day-granular; keeping them at UTC midnight makes
// the day arithmetic immune to DST and zone offsets.
func MidnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar day n days after t, at UTC midnight.
func AddDays(t time.Time, n int) time.Time {
	return MidnightUTC(t).AddDate(0, 0, n)
}

// FormatDate renders a timestamp as a calendar date string.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

package model

import "time"

// DateFormat is the wire format for date-only values.
const DateFormat = "2006-01-02"

// Date truncates t to a date-only value: UTC midnight of the same
// calendar day. All hold dates pass through this before persistence.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToDate drops the time-of-day component of t, keeping its calendar day
// in UTC.
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Date(y, m, d)
}

// ParseDate parses a date-only string in DateFormat.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// IsDateOnly reports whether t carries no time-of-day component.
func IsDateOnly(t time.Time) bool {
	return t.Equal(ToDate(t))
}

// MonthBounds returns the first and last day of the month containing t,
// both as date-only values.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := Date(t.Year(), t.Month(), 1)
	end := start.AddDate(0, 1, -1)
	return start, end
}

package models

import "time"

// DateLayout is the calendar date format used for every persisted date
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsDate reports whether s is a valid calendar date
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

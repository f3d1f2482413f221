package chart

import "time"

// DateLayout is the compact date format used for axis labels and score files.
const DateLayout = "20060102"

// sentinelDate is the domain date used when a chart holds no data.
var sentinelDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Day returns the calendar day y-m-d at UTC midnight.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time-of-day part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// ParseDate parses a YYYYMMDD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders d as YYYYMMDD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

package chart

import (
	"fmt"
	"time"
)

// DataPoint is a single (date, value) sample of a series.
type DataPoint struct {
	Date  time.Time
	Value float64
}

// Point builds a DataPoint for the calendar day of date.
func Point(date time.Time, value float64) DataPoint {
	return DataPoint{Date: Truncate(date), Value: value}
}

func (p DataPoint) String() string {
	return fmt.Sprintf("(%s, %g)", FormatDate(p.Date), p.Value)
}

// Domain is the date and value range a chart currently displays.
type Domain struct {
	MinDate  time.Time
	MaxDate  time.Time
	MinValue float64
	MaxValue float64
}

// EmptyDomain returns the domain of a chart without data.
func EmptyDomain() Domain {
	return Domain{MinDate: sentinelDate, MaxDate: sentinelDate}
}

// Days returns the number of days covered by the date range.
func (d Domain) Days() int {
	return DaysBetween(d.MinDate, d.MaxDate)
}

// ValueSpan returns the width of the value range.
func (d Domain) ValueSpan() float64 {
	return d.MaxValue - d.MinValue
}

// ContainsDate reports whether t falls inside [MinDate, MaxDate].
func (d Domain) ContainsDate(t time.Time) bool {
	return !t.Before(d.MinDate) && !t.After(d.MaxDate)
}

// IsEmpty reports whether d is the sentinel domain of an empty chart.
func (d Domain) IsEmpty() bool {
	return d.MinDate.Equal(sentinelDate) && d.MaxDate.Equal(sentinelDate) &&
		d.MinValue == 0 && d.MaxValue == 0
}

// Size is the pixel size of the plotting area.
type Size struct {
	Width  float64
	Height float64
}

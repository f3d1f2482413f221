package chart

import (
	"math"
	"time"
)

const (
	// Date ranges longer than this get a tick every other month.
	longSpanDays = 400

	// A generated tick closer than this to the maximum is replaced by it.
	trailingMergeDays = 7

	// Fewer value ticks than this triggers a finer step size.
	minValueTicks = 3
)

// DateSteps returns the date axis ticks for [minDate, maxDate]: one tick per
// calendar month anchored on minDate's day of month (every two months when
// the range exceeds 400 days), always ending at maxDate. The result has at
// least two entries and is strictly increasing, except for a single-day
// range: when minDate equals maxDate the result is [minDate, minDate].
func DateSteps(minDate, maxDate time.Time) []time.Time {
	minDate, maxDate = Truncate(minDate), Truncate(maxDate)
	if maxDate.Before(minDate) {
		minDate, maxDate = maxDate, minDate
	}

	interval := 1
	if DaysBetween(minDate, maxDate) > longSpanDays {
		interval = 2
	}

	steps := monthly(minDate, maxDate, interval)

	last := steps[len(steps)-1]
	if len(steps) > 2 && DaysBetween(last, maxDate) < trailingMergeDays {
		steps = steps[:len(steps)-1]
		last = steps[len(steps)-1]
	}
	if !last.Equal(maxDate) || len(steps) == 1 {
		steps = append(steps, maxDate)
	}
	return steps
}

// monthly lists the days from start to until (inclusive) that fall every
// interval months on start's day of month. Months that lack that day are
// skipped rather than clamped.
func monthly(start, until time.Time, interval int) []time.Time {
	var out []time.Time
	for i := 0; ; i += interval {
		month := start.Month() + time.Month(i)
		t := time.Date(start.Year(), month, start.Day(), 0, 0, 0, 0, time.UTC)
		if t.Day() != start.Day() {
			if time.Date(start.Year(), month, 1, 0, 0, 0, 0, time.UTC).After(until) {
				break
			}
			continue
		}
		if t.After(until) {
			break
		}
		out = append(out, t)
	}
	return out
}

// ValueSteps returns the value axis ticks starting at minValue with a power
// of ten step chosen from the magnitude of the range. Ticks never exceed
// maxValue, so the last tick can fall short of it.
func ValueSteps(minValue, maxValue float64) []float64 {
	if maxValue < minValue {
		minValue, maxValue = maxValue, minValue
	}
	magnitude := valueMagnitude(minValue, maxValue)
	steps := valueRange(minValue, maxValue, math.Pow(10, magnitude))
	if len(steps) < minValueTicks && magnitude > 0 {
		steps = valueRange(minValue, maxValue, math.Pow(10, magnitude-1))
	}
	return steps
}

// valueMagnitude returns floor(log10(range + 1)); range+1 >= 1 keeps the
// logarithm non-negative.
func valueMagnitude(minValue, maxValue float64) float64 {
	x := maxValue - minValue + 1
	m := math.Floor(math.Log10(x))
	// math.Log10 can land just below an exact power of ten.
	if math.Pow(10, m+1) <= x {
		m++
	} else if m > 0 && math.Pow(10, m) > x {
		m--
	}
	return m
}

func valueRange(minValue, maxValue, step float64) []float64 {
	n := int(math.Floor((maxValue-minValue)/step + 1e-9))
	out := make([]float64, 0, n+1)
	for k := 0; k <= n; k++ {
		out = append(out, minValue+float64(k)*step)
	}
	return out
}

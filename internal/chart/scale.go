package chart

import "time"

// PixelsPerDay returns the horizontal pixel distance between two consecutive
// days. A zero-width date range counts as one day.
func PixelsPerDay(width float64, d Domain) float64 {
	days := d.Days()
	if days < 1 {
		days = 1
	}
	return width / float64(days)
}

// PixelsPerStep returns the vertical pixel distance of one value unit. A
// zero-width value range counts as one unit.
func PixelsPerStep(height float64, d Domain) float64 {
	span := d.ValueSpan()
	if span <= 0 {
		span = 1
	}
	return height / span
}

// MapDate returns the x offset of date t.
func MapDate(t time.Time, d Domain, pixelsPerDay float64) float64 {
	return float64(DaysBetween(d.MinDate, t)) * pixelsPerDay
}

// MapValue returns the y offset of v, clamped to [0, height].
func MapValue(v float64, d Domain, pixelsPerStep, height float64) float64 {
	return clamp((v-d.MinValue)*pixelsPerStep, 0, height)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

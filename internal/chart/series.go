package chart

import "slices"

// Series is one named line of a chart.
type Series struct {
	name   string
	color  RGB
	points []DataPoint
	pixels []float64
	chart  *Chart
}

// NewSeries creates a series that is not attached to any chart yet.
func NewSeries(name string, color RGB, points []DataPoint) *Series {
	return &Series{
		name:   name,
		color:  color,
		points: slices.Clone(points),
	}
}

// Name returns the series name shown in the legend.
func (s *Series) Name() string { return s.name }

// Color returns the line color.
func (s *Series) Color() RGB { return s.color }

// Points returns a copy of the series data.
func (s *Series) Points() []DataPoint { return slices.Clone(s.points) }

// Len returns the number of data points.
func (s *Series) Len() int { return len(s.points) }

// Pixels returns the projected line geometry as alternating x, y values.
func (s *Series) Pixels() []float64 { return slices.Clone(s.pixels) }

// Reproject recomputes the cached pixel geometry from the owning chart's
// domain and size. It does nothing while the series is detached.
func (s *Series) Reproject() {
	if s.chart == nil {
		return
	}
	s.pixels = Project(s.points, s.chart.Domain(), s.chart.size)
}

// Project maps points onto pixel space and returns the flattened sequence
// x0, y0, x1, y1, ... Points outside the domain's date range are dropped.
func Project(points []DataPoint, d Domain, size Size) []float64 {
	ppd := PixelsPerDay(size.Width, d)
	pps := PixelsPerStep(size.Height, d)

	out := make([]float64, 0, 2*len(points))
	for _, p := range points {
		if !d.ContainsDate(p.Date) {
			continue
		}
		out = append(out,
			MapDate(p.Date, d, ppd),
			MapValue(p.Value, d, pps, size.Height),
		)
	}
	return out
}

// Package chart computes the geometry of a time-series line chart: axis
// steps, the displayed domain and the pixel coordinates of every series. It
// has no rendering code; adapters subscribe to a Chart and draw what it
// computed.
package chart

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"
)

// Mode selects how a chart derives its domain. It is fixed at construction.
type Mode int

const (
	// Manual charts display whatever steps the caller sets.
	Manual Mode = iota
	// Auto charts derive their steps from the data as series are added.
	Auto
)

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	// DefaultMinAutoWidth is the narrowest plot an auto chart keeps.
	DefaultMinAutoWidth = 400
	// DefaultHeight is the plot height of a chart created without WithSize.
	DefaultHeight = 300
)

// ErrUnorderedSteps is returned when caller supplied steps are not ascending.
var ErrUnorderedSteps = errors.New("steps must be in ascending order")

// LegendEntry names a series and its color.
type LegendEntry struct {
	Name  string
	Color RGB
}

// DateTick is a labelled tick on the date axis.
type DateTick struct {
	Date   time.Time
	Label  string
	Offset float64 // pixels from the first tick
}

// ValueTick is a labelled tick on the value axis.
type ValueTick struct {
	Value  float64
	Label  string
	Offset float64 // pixels from the first tick
}

// Option configures a Chart.
type Option func(*Chart)

// WithSize sets the initial plot area size in pixels.
func WithSize(width, height float64) Option {
	return func(c *Chart) {
		c.size = Size{Width: max(width, 0), Height: max(height, 0)}
	}
}

// WithMinAutoWidth sets the narrowest plot width an auto chart widens to.
func WithMinAutoWidth(px float64) Option {
	return func(c *Chart) { c.minAutoWidth = max(px, 0) }
}

// WithRand sets the random source used for default series colors.
func WithRand(r *rand.Rand) Option {
	return func(c *Chart) { c.rng = r }
}

// SeriesOption configures a series passed to AddSeries.
type SeriesOption func(*seriesConfig)

type seriesConfig struct {
	color *RGB
}

// WithColor gives the series an explicit line color.
func WithColor(color RGB) SeriesOption {
	return func(cfg *seriesConfig) { cfg.color = &color }
}

// Chart owns a set of series and the domain they are drawn in. Every
// mutation synchronously recomputes the affected steps and projections and
// then notifies subscribers. A Chart must be used from a single goroutine.
type Chart struct {
	mode         Mode
	size         Size
	minAutoWidth float64
	rng          *rand.Rand

	series     []*Series
	legend     []LegendEntry
	dateSteps  []time.Time
	valueSteps []float64

	subs    []subscriber
	nextSub int
}

// New creates an empty chart.
func New(mode Mode, opts ...Option) *Chart {
	c := &Chart{
		mode:         mode,
		size:         Size{Width: DefaultMinAutoWidth, Height: DefaultHeight},
		minAutoWidth: DefaultMinAutoWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return c
}

// Mode returns the chart's scaling mode.
func (c *Chart) Mode() Mode { return c.mode }

// Size returns the plot area size.
func (c *Chart) Size() Size { return c.size }

// Series returns the chart's series in insertion order.
func (c *Chart) Series() []*Series { return slices.Clone(c.series) }

// Legend returns one entry per series in insertion order.
func (c *Chart) Legend() []LegendEntry { return slices.Clone(c.legend) }

// DateSteps returns the current date axis steps.
func (c *Chart) DateSteps() []time.Time { return slices.Clone(c.dateSteps) }

// ValueSteps returns the current value axis steps.
func (c *Chart) ValueSteps() []float64 { return slices.Clone(c.valueSteps) }

// Domain returns the displayed range, taken from the first and last steps of
// each axis. Axes without steps fall back to the empty domain.
func (c *Chart) Domain() Domain {
	d := EmptyDomain()
	if n := len(c.dateSteps); n > 0 {
		d.MinDate, d.MaxDate = c.dateSteps[0], c.dateSteps[n-1]
	}
	if n := len(c.valueSteps); n > 0 {
		d.MinValue, d.MaxValue = c.valueSteps[0], c.valueSteps[n-1]
	}
	return d
}

// PixelsPerDay returns the horizontal scale of the current domain.
func (c *Chart) PixelsPerDay() float64 {
	return PixelsPerDay(c.size.Width, c.Domain())
}

// PixelsPerStep returns the vertical scale of the current domain.
func (c *Chart) PixelsPerStep() float64 {
	return PixelsPerStep(c.size.Height, c.Domain())
}

// AddSeries appends a series and its legend entry. Without WithColor the
// series gets a random pastel color. Manual charts leave the domain alone;
// auto charts rescale both axes to cover all data.
func (c *Chart) AddSeries(points []DataPoint, name string, opts ...SeriesOption) *Series {
	var cfg seriesConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var color RGB
	if cfg.color != nil {
		color = *cfg.color
	} else {
		color = RandomPastel(c.rng)
	}

	normalized := make([]DataPoint, len(points))
	for i, p := range points {
		normalized[i] = Point(p.Date, p.Value)
	}

	s := NewSeries(name, color, normalized)
	s.chart = c
	c.series = append(c.series, s)
	c.legend = append(c.legend, LegendEntry{Name: name, Color: color})

	changed := ChangeSeries | ChangeLegend
	if c.mode == Auto {
		changed |= c.autoscale()
	}
	c.recompute(changed)
	return s
}

// ClearSeries removes every series and legend entry. Steps are kept.
func (c *Chart) ClearSeries() {
	for _, s := range c.series {
		s.chart = nil
	}
	c.series = nil
	c.legend = nil
	c.recompute(ChangeSeries | ChangeLegend)
}

// SetDateSteps replaces the date axis steps.
func (c *Chart) SetDateSteps(steps []time.Time) error {
	normalized := make([]time.Time, len(steps))
	for i, s := range steps {
		normalized[i] = Truncate(s)
	}
	if !slices.IsSortedFunc(normalized, func(a, b time.Time) int { return a.Compare(b) }) {
		return fmt.Errorf("set date steps: %w", ErrUnorderedSteps)
	}
	c.dateSteps = normalized
	c.recompute(ChangeDomain)
	return nil
}

// SetValueSteps replaces the value axis steps.
func (c *Chart) SetValueSteps(steps []float64) error {
	if !slices.IsSorted(steps) {
		return fmt.Errorf("set value steps: %w", ErrUnorderedSteps)
	}
	c.valueSteps = slices.Clone(steps)
	c.recompute(ChangeDomain)
	return nil
}

// SetDomain sets both axes to the two-step ranges of d.
func (c *Chart) SetDomain(d Domain) error {
	minDate, maxDate := Truncate(d.MinDate), Truncate(d.MaxDate)
	if maxDate.Before(minDate) || d.MaxValue < d.MinValue {
		return fmt.Errorf("set domain: %w", ErrUnorderedSteps)
	}
	c.dateSteps = []time.Time{minDate, maxDate}
	c.valueSteps = []float64{d.MinValue, d.MaxValue}
	c.recompute(ChangeDomain)
	return nil
}

// Resize sets the plot area size. Negative dimensions are treated as zero.
// An auto chart holding data never narrows below its minimum auto width.
func (c *Chart) Resize(width, height float64) {
	size := Size{Width: max(width, 0), Height: max(height, 0)}
	if c.mode == Auto && len(c.dateSteps) > 0 {
		size.Width = max(size.Width, c.autoWidth())
	}
	if size == c.size {
		return
	}
	c.size = size
	c.recompute(ChangeSize)
}

// DateTicks returns the date steps with labels and pixel offsets.
func (c *Chart) DateTicks() []DateTick {
	if len(c.dateSteps) == 0 {
		return nil
	}
	ppd := c.PixelsPerDay()
	first := c.dateSteps[0]
	ticks := make([]DateTick, len(c.dateSteps))
	for i, d := range c.dateSteps {
		ticks[i] = DateTick{
			Date:   d,
			Label:  FormatDate(d),
			Offset: float64(DaysBetween(first, d)) * ppd,
		}
	}
	return ticks
}

// ValueTicks returns the value steps with labels and pixel offsets.
func (c *Chart) ValueTicks() []ValueTick {
	if len(c.valueSteps) == 0 {
		return nil
	}
	pps := c.PixelsPerStep()
	first := c.valueSteps[0]
	ticks := make([]ValueTick, len(c.valueSteps))
	for i, v := range c.valueSteps {
		ticks[i] = ValueTick{
			Value:  v,
			Label:  strconv.FormatFloat(v, 'f', -1, 64),
			Offset: (v - first) * pps,
		}
	}
	return ticks
}

// Subscribe registers fn to be called after every recompute. The returned
// function removes the subscription.
func (c *Chart) Subscribe(fn func(Event)) (cancel func()) {
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber) bool { return s.id == id })
	}
}

// autoscale derives steps from the data and reports what it changed.
func (c *Chart) autoscale() Change {
	var changed Change
	current := c.Domain()

	minDate, maxDate, ok := c.dateExtent()
	if !ok {
		if c.dateSteps != nil || c.valueSteps != nil {
			c.dateSteps, c.valueSteps = nil, nil
			changed |= ChangeDomain
		}
		return changed
	}

	if !minDate.Equal(current.MinDate) || !maxDate.Equal(current.MaxDate) {
		c.dateSteps = DateSteps(minDate, maxDate)
		changed |= ChangeDomain
	}
	if w := c.autoWidth(); c.size.Width < w {
		c.size.Width = w
		changed |= ChangeSize
	}

	minValue, maxValue := c.valueExtent()
	if minValue != current.MinValue || maxValue != current.MaxValue {
		c.valueSteps = ValueSteps(minValue, maxValue)
		changed |= ChangeDomain
	}
	return changed
}

func (c *Chart) autoWidth() float64 {
	return max(c.minAutoWidth, float64(len(c.dateSteps)))
}

// dateExtent returns the earliest and latest date over all series.
func (c *Chart) dateExtent() (lo, hi time.Time, ok bool) {
	for _, s := range c.series {
		for _, p := range s.points {
			if !ok || p.Date.Before(lo) {
				lo = p.Date
			}
			if !ok || p.Date.After(hi) {
				hi = p.Date
			}
			ok = true
		}
	}
	return lo, hi, ok
}

type pointKey struct {
	day   int64
	value float64
}

// valueExtent returns the smallest and largest value over the union of all
// series' points, counting identical (date, value) samples once. It must
// only be called when at least one point exists.
func (c *Chart) valueExtent() (lo, hi float64) {
	seen := make(map[pointKey]struct{})
	first := true
	for _, s := range c.series {
		for _, p := range s.points {
			key := pointKey{day: p.Date.Unix() / 86400, value: p.Value}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if first || p.Value < lo {
				lo = p.Value
			}
			if first || p.Value > hi {
				hi = p.Value
			}
			first = false
		}
	}
	return lo, hi
}

// recompute reprojects every series and notifies subscribers.
func (c *Chart) recompute(changed Change) {
	for _, s := range c.series {
		s.Reproject()
	}
	ev := Event{Chart: c, Changed: changed}
	for _, sub := range slices.Clone(c.subs) {
		sub.fn(ev)
	}
}

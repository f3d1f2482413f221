package chart

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func series(start time.Time, values ...float64) []DataPoint {
	pts := make([]DataPoint, len(values))
	for i, v := range values {
		pts[i] = DataPoint{Date: start.AddDate(0, i, 0), Value: v}
	}
	return pts
}

func TestNew_EmptyDomain(t *testing.T) {
	c := New(Auto, seeded())
	d := c.Domain()
	assert.True(t, d.IsEmpty())
	assert.Equal(t, Day(1900, 1, 1), d.MinDate)
	assert.Nil(t, c.DateTicks())
	assert.Nil(t, c.ValueTicks())
}

func TestAutoChart_SinglePoint(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries([]DataPoint{{Date: Day(2024, 1, 1), Value: 5}}, "mood")

	steps := c.DateSteps()
	require.GreaterOrEqual(t, len(steps), 2)
	assert.Equal(t, Day(2024, 1, 1), steps[0])
	assert.Equal(t, Day(2024, 1, 1), steps[len(steps)-1])
	assert.Contains(t, c.ValueSteps(), 5.0)

	s := c.Series()[0]
	px := s.Pixels()
	require.Len(t, px, 2)
	assert.Equal(t, 0.0, px[0])
	assert.Equal(t, 0.0, px[1])
}

func TestAutoChart_LongSpanUsesTwoMonthTicks(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries([]DataPoint{
		{Date: Day(2023, 1, 1), Value: 3},
		{Date: Day(2023, 8, 15), Value: 7},
	}, "sleep")
	c.AddSeries([]DataPoint{
		{Date: Day(2023, 5, 1), Value: 4},
		{Date: Day(2024, 6, 1), Value: 9},
	}, "energy")

	steps := c.DateSteps()
	require.Greater(t, len(steps), 2)
	assert.Equal(t, Day(2023, 1, 1), steps[0])
	assert.Equal(t, Day(2023, 3, 1), steps[1])
	assert.Equal(t, Day(2024, 6, 1), steps[len(steps)-1])

	d := c.Domain()
	assert.Equal(t, 3.0, d.MinValue)
	assert.Equal(t, 9.0, d.MaxValue)
}

func TestAutoChart_ValueRangeHundreds(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries(series(Day(2024, 1, 1), 0, 400, 950), "steps")

	assert.Equal(t, []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}, c.ValueSteps())

	// 950 lies above the last tick and is clamped to the plot height.
	px := c.Series()[0].Pixels()
	require.Len(t, px, 6)
	assert.Equal(t, c.Size().Height, px[5])
}

func TestAutoChart_WidensToMinimumWidth(t *testing.T) {
	c := New(Auto, seeded(), WithSize(120, 40))
	c.AddSeries(series(Day(2024, 1, 1), 1, 2), "a")
	assert.Equal(t, float64(DefaultMinAutoWidth), c.Size().Width)
	assert.Equal(t, 40.0, c.Size().Height)

	wide := New(Auto, seeded(), WithSize(900, 40))
	wide.AddSeries(series(Day(2024, 1, 1), 1, 2), "a")
	assert.Equal(t, 900.0, wide.Size().Width)
}

func TestAutoChart_EmptySeries(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries(nil, "nothing")
	assert.True(t, c.Domain().IsEmpty())
	assert.Len(t, c.Legend(), 1)

	c.AddSeries(series(Day(2024, 2, 1), 2, 4), "something")
	assert.Equal(t, Day(2024, 2, 1), c.Domain().MinDate)
	assert.Equal(t, Day(2024, 3, 1), c.Domain().MaxDate)
	assert.Empty(t, c.Series()[0].Pixels())
}

func TestAutoChart_EmptySeriesResetsToSentinel(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries(series(Day(2024, 2, 1), 2, 4), "old")
	c.ClearSeries()
	require.False(t, c.Domain().IsEmpty(), "clear keeps the domain")

	c.AddSeries(nil, "empty")
	assert.True(t, c.Domain().IsEmpty())
}

func TestAutoChart_DuplicatePointsAcrossSeries(t *testing.T) {
	c := New(Auto, seeded())
	shared := DataPoint{Date: Day(2024, 1, 1), Value: 4}
	c.AddSeries([]DataPoint{shared, {Date: Day(2024, 2, 1), Value: 12}}, "a")
	c.AddSeries([]DataPoint{shared}, "b")

	d := c.Domain()
	assert.Equal(t, 4.0, d.MinValue)
	assert.Equal(t, 12.0, d.MaxValue)
}

func TestAutoChart_ReplotIsIdempotent(t *testing.T) {
	c := New(Auto, seeded())
	c.AddSeries(series(Day(2023, 11, 3), 4, 9, 15, 2, 11), "a")
	c.AddSeries(series(Day(2024, 1, 20), 30, 1), "b")

	dates, values := c.DateTicks(), c.ValueTicks()
	var pixels [][]float64
	for _, s := range c.Series() {
		pixels = append(pixels, s.Pixels())
	}

	for i := 0; i < 2; i++ {
		c.ClearSeries()
		c.AddSeries(series(Day(2023, 11, 3), 4, 9, 15, 2, 11), "a")
		c.AddSeries(series(Day(2024, 1, 20), 30, 1), "b")
		assert.Equal(t, dates, c.DateTicks())
		assert.Equal(t, values, c.ValueTicks())
		for j, s := range c.Series() {
			assert.Equal(t, pixels[j], s.Pixels())
		}
	}
}

func TestManualChart_AddSeriesKeepsDomain(t *testing.T) {
	c := New(Manual, seeded())
	c.AddSeries(series(Day(2024, 1, 1), 1, 2, 3), "a")
	assert.True(t, c.Domain().IsEmpty())
	assert.Len(t, c.Series(), 1)
}

func TestManualChart_DropsPointsOutsideDomain(t *testing.T) {
	c := New(Manual, seeded(), WithSize(300, 100))
	require.NoError(t, c.SetDomain(Domain{
		MinDate:  Day(2024, 1, 1),
		MaxDate:  Day(2024, 1, 31),
		MinValue: 0,
		MaxValue: 10,
	}))

	s := c.AddSeries([]DataPoint{
		{Date: Day(2023, 12, 31), Value: 1},
		{Date: Day(2024, 1, 15), Value: 5},
		{Date: Day(2024, 2, 1), Value: 5},
	}, "a")

	assert.Equal(t, []float64{140, 50}, s.Pixels())
}

func TestManualChart_SetStepsValidation(t *testing.T) {
	c := New(Manual)
	err := c.SetValueSteps([]float64{3, 1, 2})
	assert.ErrorIs(t, err, ErrUnorderedSteps)

	err = c.SetDateSteps([]time.Time{Day(2024, 2, 1), Day(2024, 1, 1)})
	assert.ErrorIs(t, err, ErrUnorderedSteps)

	err = c.SetDomain(Domain{MinDate: Day(2024, 1, 1), MaxDate: Day(2024, 2, 1), MinValue: 5, MaxValue: 1})
	assert.ErrorIs(t, err, ErrUnorderedSteps)

	require.NoError(t, c.SetValueSteps([]float64{0, 5, 10}))
	require.NoError(t, c.SetDateSteps([]time.Time{Day(2024, 1, 1), Day(2024, 3, 1)}))
	d := c.Domain()
	assert.Equal(t, 10.0, d.MaxValue)
	assert.Equal(t, Day(2024, 3, 1), d.MaxDate)
}

func TestClearSeries(t *testing.T) {
	c := New(Auto, seeded())
	s := c.AddSeries(series(Day(2024, 1, 1), 1, 5), "a")
	before := c.Domain()

	c.ClearSeries()
	assert.Empty(t, c.Series())
	assert.Empty(t, c.Legend())
	assert.Equal(t, before, c.Domain())

	// A detached series no longer follows the chart.
	px := s.Pixels()
	c.Resize(1000, 1000)
	assert.Equal(t, px, s.Pixels())
}

func TestSeries_ReprojectDetachedIsNoop(t *testing.T) {
	s := NewSeries("loose", RGB{R: 1}, series(Day(2024, 1, 1), 1, 2))
	s.Reproject()
	assert.Nil(t, s.Pixels())
}

func TestResize_Reprojects(t *testing.T) {
	c := New(Manual, WithSize(100, 100))
	require.NoError(t, c.SetDomain(Domain{
		MinDate: Day(2024, 1, 1), MaxDate: Day(2024, 1, 11), MinValue: 0, MaxValue: 10,
	}))
	s := c.AddSeries([]DataPoint{{Date: Day(2024, 1, 11), Value: 10}}, "a")
	assert.Equal(t, []float64{100, 100}, s.Pixels())

	c.Resize(200, 50)
	assert.Equal(t, []float64{200, 50}, s.Pixels())
}

func TestLegendAndColors(t *testing.T) {
	c := New(Manual, seeded())
	red := RGB{R: 1}
	c.AddSeries(nil, "first", WithColor(red))
	c.AddSeries(nil, "second")

	legend := c.Legend()
	require.Len(t, legend, 2)
	assert.Equal(t, LegendEntry{Name: "first", Color: red}, legend[0])
	assert.Equal(t, "second", legend[1].Name)

	for _, ch := range []float64{legend[1].Color.R, legend[1].Color.G, legend[1].Color.B} {
		assert.GreaterOrEqual(t, ch, 0.3)
		assert.LessOrEqual(t, ch, 1.0)
	}

	// The same seed yields the same default colors.
	again := New(Manual, seeded())
	again.AddSeries(nil, "first", WithColor(red))
	again.AddSeries(nil, "second")
	assert.Equal(t, legend, again.Legend())
}

func TestSubscribe(t *testing.T) {
	c := New(Auto, seeded())
	var events []Event
	cancel := c.Subscribe(func(ev Event) { events = append(events, ev) })

	c.AddSeries(series(Day(2024, 1, 1), 1, 2), "a")
	require.Len(t, events, 1)
	assert.True(t, events[0].Changed.Has(ChangeSeries|ChangeLegend|ChangeDomain))
	assert.Same(t, c, events[0].Chart)

	c.Resize(800, 200)
	require.Len(t, events, 2)
	assert.True(t, events[1].Changed.Has(ChangeSize))

	// Resizing to the same size is not a change.
	c.Resize(800, 200)
	assert.Len(t, events, 2)

	cancel()
	c.ClearSeries()
	assert.Len(t, events, 2)
}

func TestTicks(t *testing.T) {
	c := New(Manual, WithSize(310, 100))
	require.NoError(t, c.SetDateSteps([]time.Time{Day(2024, 1, 1), Day(2024, 1, 11), Day(2024, 2, 1)}))
	require.NoError(t, c.SetValueSteps([]float64{0, 2.5, 5, 7.5, 10}))

	dates := c.DateTicks()
	require.Len(t, dates, 3)
	assert.Equal(t, "20240101", dates[0].Label)
	assert.Equal(t, 0.0, dates[0].Offset)
	assert.Equal(t, 100.0, dates[1].Offset)
	assert.Equal(t, 310.0, dates[2].Offset)

	values := c.ValueTicks()
	require.Len(t, values, 5)
	assert.Equal(t, "2.5", values[1].Label)
	assert.Equal(t, 25.0, values[1].Offset)
	assert.Equal(t, 100.0, values[4].Offset)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "manual", Manual.String())
	assert.Equal(t, "auto", Auto.String())
}

func TestResize_AutoKeepsMinimumWidth(t *testing.T) {
	c := New(Auto, WithSize(100, 100))
	c.Resize(50, 80)
	assert.Equal(t, Size{Width: 50, Height: 80}, c.Size())

	c.AddSeries(series(Day(2024, 1, 1), 1, 2, 3), "a")
	c.Resize(120, 80)
	assert.Equal(t, Size{Width: DefaultMinAutoWidth, Height: 80}, c.Size())

	c.Resize(900, 80)
	assert.Equal(t, 900.0, c.Size().Width)
}

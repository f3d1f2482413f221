package components

import (
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/ui/theme"
)

// Braille cells hold a 2x4 dot matrix.
const (
	dotsPerCol  = 2
	dotsPerRow  = 4
	brailleBase = 0x2800
)

// brailleBits[y][x] is the bit for dot (x, y) within a cell.
var brailleBits = [dotsPerRow][dotsPerCol]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// canvas is a grid of braille cells addressed in dots.
type canvas struct {
	cols, rows int
	cells      []rune
	colors     []color.Color
}

func newCanvas(cols, rows int) *canvas {
	return &canvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]rune, cols*rows),
		colors: make([]color.Color, cols*rows),
	}
}

func (c *canvas) width() int  { return c.cols * dotsPerCol }
func (c *canvas) height() int { return c.rows * dotsPerRow }

// set lights dot (x, y), y counted from the top. Dots off the canvas are
// ignored.
func (c *canvas) set(x, y int, col color.Color) {
	if x < 0 || y < 0 || x >= c.width() || y >= c.height() {
		return
	}
	i := (y/dotsPerRow)*c.cols + x/dotsPerCol
	c.cells[i] |= brailleBits[y%dotsPerRow][x%dotsPerCol]
	c.colors[i] = col
}

// line draws a straight segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// row renders cells [from, to) of row r, coloring runs of equal color once.
func (c *canvas) row(r, from, to int) string {
	var b strings.Builder
	var run strings.Builder
	var runColor color.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runColor == nil {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
		}
		run.Reset()
	}
	for x := from; x < to; x++ {
		i := r*c.cols + x
		ch, col := ' ', color.Color(nil)
		if x >= 0 && x < c.cols && c.cells[i] != 0 {
			ch, col = brailleBase+c.cells[i], c.colors[i]
		}
		if col != runColor {
			flush()
			runColor = col
		}
		run.WriteRune(ch)
	}
	flush()
	return b.String()
}

// ChartView renders a chart.Chart in the terminal: braille lines, value
// labels on the left, date labels underneath and a legend. Charts wider
// than the viewport scroll horizontally.
type ChartView struct {
	chart  *chart.Chart
	cancel func()

	offset   int
	maxShift int
	atEnd    bool

	version   int
	cacheKey  [4]int
	cacheView string
}

// NewChartView attaches a view to c. Call Close to detach it.
func NewChartView(c *chart.Chart) *ChartView {
	v := &ChartView{chart: c, cacheKey: [4]int{-1}, atEnd: true}
	v.cancel = c.Subscribe(func(chart.Event) { v.version++ })
	return v
}

// Close stops listening to chart events.
func (v *ChartView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Chart returns the chart being drawn.
func (v *ChartView) Chart() *chart.Chart { return v.chart }

// Offset returns the first visible plot column.
func (v *ChartView) Offset() int { return v.offset }

// Pan scrolls by cols plot columns; negative values scroll left.
func (v *ChartView) Pan(cols int) {
	v.offset = clampInt(v.offset+cols, 0, v.maxShift)
	v.atEnd = v.offset == v.maxShift
}

// PanStart scrolls to the earliest date.
func (v *ChartView) PanStart() {
	v.offset = 0
	v.atEnd = v.maxShift == 0
}

// PanEnd scrolls to the latest date and keeps following it as the chart
// grows. A new view starts here.
func (v *ChartView) PanEnd() {
	v.offset = v.maxShift
	v.atEnd = true
}

// CanPan reports whether the chart is wider than the viewport.
func (v *ChartView) CanPan() bool { return v.maxShift > 0 }

// chartLayout is the cell geometry of one render.
type chartLayout struct {
	labelWidth int
	plotCols   int
	plotRows   int
	legend     bool
}

func (v *ChartView) layout(width, height int, compact bool) chartLayout {
	labelWidth := 0
	for _, t := range v.chart.ValueTicks() {
		labelWidth = max(labelWidth, lipgloss.Width(t.Label))
	}
	l := chartLayout{labelWidth: labelWidth + 1, legend: !compact}
	// axis column, then x-axis and date label rows
	l.plotCols = width - l.labelWidth - 1
	l.plotRows = height - 2
	if l.legend {
		l.plotRows--
	}
	return l
}

// Fit resizes the chart to fill a width x height cell viewport. Auto charts
// may stay wider than the viewport.
func (v *ChartView) Fit(width, height int, compact bool) {
	l := v.layout(width, height, compact)
	if l.plotCols < 1 || l.plotRows < 1 {
		return
	}
	// Pixel coordinates run 0..size inclusive, so leave room for the last dot.
	v.chart.Resize(float64(l.plotCols*dotsPerCol-1), float64(l.plotRows*dotsPerRow-1))
}

// View fits the chart to the viewport and renders it.
func (v *ChartView) View(width, height int, compact bool) string {
	v.Fit(width, height, compact)

	key := [4]int{width, height, v.offset, v.version}
	if compact {
		key[0] = -width
	}
	if key == v.cacheKey {
		return v.cacheView
	}

	out := v.render(width, height, compact)
	key[2] = v.offset
	v.cacheKey, v.cacheView = key, out
	return out
}

func (v *ChartView) render(width, height int, compact bool) string {
	c := v.chart
	if c.Domain().IsEmpty() || len(c.Series()) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No scores recorded yet."))
	}

	l := v.layout(width, height, compact)
	if l.plotCols < 1 || l.plotRows < 1 {
		return ""
	}

	size := c.Size()
	totalCols := int(math.Ceil((math.Floor(size.Width) + 1) / dotsPerCol))
	totalCols = max(totalCols, l.plotCols)
	v.maxShift = totalCols - l.plotCols
	if v.atEnd {
		v.offset = v.maxShift
	}
	v.offset = clampInt(v.offset, 0, v.maxShift)

	cv := newCanvas(totalCols, l.plotRows)
	bottom := cv.height() - 1
	toDot := func(x, y float64) (int, int) {
		return int(math.Round(x)), bottom - int(math.Round(y))
	}
	for _, s := range c.Series() {
		px := s.Pixels()
		col := s.Color()
		for i := 0; i+1 < len(px); i += 2 {
			x, y := toDot(px[i], px[i+1])
			if i == 0 {
				cv.set(x, y, col)
				continue
			}
			x0, y0 := toDot(px[i-2], px[i-1])
			cv.line(x0, y0, x, y, col)
		}
	}

	// Value labels by canvas row.
	labels := make(map[int]string)
	for _, t := range c.ValueTicks() {
		labels[(bottom-int(math.Round(t.Offset)))/dotsPerRow] = t.Label
	}

	var lines []string
	for r := 0; r < l.plotRows; r++ {
		label, tick := labels[r]
		axis := "│"
		if tick {
			axis = "┤"
		}
		lines = append(lines,
			theme.AxisLabel.Render(padLeft(label, l.labelWidth))+
				theme.Axis.Render(axis)+
				cv.row(r, v.offset, v.offset+l.plotCols))
	}

	axisRow, labelRow := v.dateAxis(l)
	lines = append(lines,
		strings.Repeat(" ", l.labelWidth)+theme.Axis.Render(axisRow),
		strings.Repeat(" ", l.labelWidth+1)+theme.AxisLabel.Render(labelRow))

	if l.legend {
		lines = append(lines, v.legend(width))
	}
	return strings.Join(lines, "\n")
}

// dateAxis builds the x-axis line and the date label line for the visible
// columns.
func (v *ChartView) dateAxis(l chartLayout) (string, string) {
	axis := []rune("└" + strings.Repeat("─", l.plotCols))
	labels := []rune(strings.Repeat(" ", l.plotCols))

	nextFree := 0
	for _, t := range v.chart.DateTicks() {
		col := int(math.Round(t.Offset))/dotsPerCol - v.offset
		if col < 0 || col >= l.plotCols {
			continue
		}
		axis[col+1] = '┴'
		if col < nextFree || col+len(t.Label) > l.plotCols {
			continue
		}
		copy(labels[col:], []rune(t.Label))
		nextFree = col + len(t.Label) + 1
	}
	return string(axis), string(labels)
}

func (v *ChartView) legend(width int) string {
	var parts []string
	for _, e := range v.chart.Legend() {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(e.Color).Render("●")+" "+
				theme.Body.Render(e.Name))
	}
	legend := " " + strings.Join(parts, "   ")

	if v.CanPan() {
		var arrows string
		if v.offset > 0 {
			arrows += "◀"
		} else {
			arrows += " "
		}
		if v.offset < v.maxShift {
			arrows += "▶"
		}
		gap := max(width-lipgloss.Width(legend)-lipgloss.Width(arrows)-1, 1)
		legend += strings.Repeat(" ", gap) + theme.Hint.Render(arrows)
	}
	return legend
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package export writes score documents to spreadsheets.
package export

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/scores"
)

// SheetName is the worksheet holding the score table.
const SheetName = "Scores"

// ErrEmptyDocument is returned when there is nothing to export.
var ErrEmptyDocument = errors.New("score document has no entries")

// Workbook builds a workbook with one row per recorded day and one column
// per group, plus a line chart scaled and sized like an auto chart built
// with opts. The caller owns the returned file and must Close it.
func Workbook(doc scores.Document, title string, opts ...chart.Option) (*excelize.File, error) {
	groups := doc.Groups()
	days := recordedDays(doc)
	if len(days) == 0 {
		return nil, ErrEmptyDocument
	}

	f := excelize.NewFile()
	idx, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := writeTable(f, doc, groups, days); err != nil {
		f.Close()
		return nil, err
	}
	if err := addLineChart(f, plotted(doc, opts...), groups, len(days), title); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteFile exports doc to an .xlsx file at path.
func WriteFile(path string, doc scores.Document, title string, opts ...chart.Option) error {
	f, err := Workbook(doc, title, opts...)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// recordedDays returns every distinct entry day, ascending.
func recordedDays(doc scores.Document) []time.Time {
	var days []time.Time
	for _, entries := range doc {
		for _, e := range entries {
			days = append(days, chart.Truncate(e.Date))
		}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}

func writeTable(f *excelize.File, doc scores.Document, groups []string, days []time.Time) error {
	header := make([]any, 0, len(groups)+1)
	header = append(header, "Date")
	for _, g := range groups {
		header = append(header, g)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rowOf := make(map[time.Time]int, len(days))
	for i, d := range days {
		rowOf[d] = i + 2
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellStr(SheetName, cell, chart.FormatDate(d)); err != nil {
			return fmt.Errorf("write date: %w", err)
		}
	}

	for col, g := range groups {
		// A later entry for the same day wins.
		for _, e := range doc[g] {
			cell, _ := excelize.CoordinatesToCellName(col+2, rowOf[chart.Truncate(e.Date)])
			if err := f.SetCellInt(SheetName, cell, int64(e.Score)); err != nil {
				return fmt.Errorf("write score: %w", err)
			}
		}
	}
	return nil
}

// plotted builds the auto chart the exported line chart copies its axes and
// size from.
func plotted(doc scores.Document, opts ...chart.Option) *chart.Chart {
	c := chart.New(chart.Auto, opts...)
	scores.Plot(c, doc)
	return c
}

func addLineChart(f *excelize.File, c *chart.Chart, groups []string, rows int, title string) error {
	d := c.Domain()
	yMin := d.MinValue
	// Value ticks may stop short of the largest score; keep every point visible.
	yMax := max(d.MaxValue, maxValue(c))

	lastRow := rows + 1
	series := make([]excelize.ChartSeries, 0, len(groups))
	for i := range groups {
		col, _ := excelize.ColumnNumberToName(i + 2)
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", SheetName, col),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetName, col, col, lastRow),
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(len(groups)+3, 2)
	err := f.AddChart(SheetName, anchor, &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		YAxis: excelize.ChartAxis{
			Minimum: &yMin,
			Maximum: &yMax,
		},
		Dimension: dimension(c.Size()),
	})
	if err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}

func dimension(size chart.Size) excelize.ChartDimension {
	return excelize.ChartDimension{
		Width:  uint(math.Round(size.Width)),
		Height: uint(math.Round(size.Height)),
	}
}

func maxValue(c *chart.Chart) float64 {
	var hi float64
	first := true
	for _, s := range c.Series() {
		for _, p := range s.Points() {
			if first || p.Value > hi {
				hi, first = p.Value, false
			}
		}
	}
	return hi
}

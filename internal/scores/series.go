package scores

import (
	"context"
	"log/slog"

	"github.com/abhisek/quirk/internal/chart"
)

// GroupSeries is the chart input for one question group.
type GroupSeries struct {
	Name   string
	Points []chart.DataPoint
}

// ToSeries converts a document into one series per group, in group name
// order. Entries keep their recorded order.
func ToSeries(doc Document) []GroupSeries {
	out := make([]GroupSeries, 0, len(doc))
	for _, group := range doc.Groups() {
		entries := doc[group]
		pts := make([]chart.DataPoint, len(entries))
		for i, e := range entries {
			pts[i] = chart.Point(e.Date, float64(e.Score))
		}
		out = append(out, GroupSeries{Name: group, Points: pts})
	}
	return out
}

// Plot replaces the chart's series with the document's groups.
func Plot(c *chart.Chart, doc Document) {
	c.ClearSeries()
	for _, gs := range ToSeries(doc) {
		c.AddSeries(gs.Points, gs.Name)
	}
}

// LoadOrEmpty loads the named document and substitutes an empty one when
// it cannot be read, logging the failure.
func LoadOrEmpty(ctx context.Context, st Store, name string, logger *slog.Logger) Document {
	doc, err := st.Load(ctx, name)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("score document unreadable, showing empty chart",
			slog.String("document", name),
			slog.String("error", err.Error()),
		)
		return Document{}
	}
	return doc
}

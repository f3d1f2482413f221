package chart

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/scores"
	"github.com/abhisek/quirk/internal/screen"
	"github.com/abhisek/quirk/internal/ui/components"
	"github.com/abhisek/quirk/internal/ui/keys"
	"github.com/abhisek/quirk/internal/ui/layout"
)

// panStep is how many columns one arrow press scrolls.
const panStep = 4

// Options configures a chart screen.
type Options struct {
	Store    scores.Store
	Document string
	Logger   *slog.Logger

	// MinAutoWidth overrides the chart's minimum auto width when positive.
	MinAutoWidth float64

	// Watch reloads the chart when the document changes on disk.
	Watch bool
}

// loadedMsg carries a freshly loaded document.
type loadedMsg struct {
	doc scores.Document
}

// changedMsg signals that the document changed on disk.
type changedMsg struct{}

// ChartScreen shows one score document as an auto-scaling chart.
type ChartScreen struct {
	opts   Options
	logger *slog.Logger

	chart   *chart.Chart
	view    *components.ChartView
	entries int
	loaded  bool

	unsubscribe func()
	stopWatch   context.CancelFunc
	changes     <-chan struct{}
}

var _ screen.Screen = (*ChartScreen)(nil)
var _ screen.KeyHintProvider = (*ChartScreen)(nil)
var _ screen.StatusProvider = (*ChartScreen)(nil)
var _ screen.Closer = (*ChartScreen)(nil)

// New creates a chart screen for opts.Document.
func New(opts Options) *ChartScreen {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("document", opts.Document))

	var chartOpts []chart.Option
	if opts.MinAutoWidth > 0 {
		chartOpts = append(chartOpts, chart.WithMinAutoWidth(opts.MinAutoWidth))
	}
	c := chart.New(chart.Auto, chartOpts...)

	s := &ChartScreen{
		opts:   opts,
		logger: logger,
		chart:  c,
		view:   components.NewChartView(c),
	}
	s.unsubscribe = c.Subscribe(s.logRescale)
	return s
}

func (s *ChartScreen) logRescale(ev chart.Event) {
	if !ev.Changed.Has(chart.ChangeDomain) {
		return
	}
	d := ev.Chart.Domain()
	s.logger.Debug("chart rescaled",
		slog.String("from", chart.FormatDate(d.MinDate)),
		slog.String("to", chart.FormatDate(d.MaxDate)),
		slog.Float64("min", d.MinValue),
		slog.Float64("max", d.MaxValue),
		slog.Float64("width", ev.Chart.Size().Width),
	)
}

// Chart returns the chart backing the screen.
func (s *ChartScreen) Chart() *chart.Chart { return s.chart }

func (s *ChartScreen) Init() tea.Cmd {
	if s.opts.Watch {
		s.startWatch()
	}
	return tea.Batch(s.load, s.waitForChange())
}

func (s *ChartScreen) startWatch() {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := scores.Watch(ctx, s.opts.Store.Path(s.opts.Document))
	if err != nil {
		cancel()
		s.logger.Warn("live reload unavailable", slog.String("error", err.Error()))
		return
	}
	s.stopWatch, s.changes = cancel, ch
}

func (s *ChartScreen) load() tea.Msg {
	doc := scores.LoadOrEmpty(context.Background(), s.opts.Store, s.opts.Document, s.logger)
	return loadedMsg{doc: doc}
}

// waitForChange blocks on the watcher until the next change. It returns nil
// when nothing is watched.
func (s *ChartScreen) waitForChange() tea.Cmd {
	ch := s.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (s *ChartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		scores.Plot(s.chart, msg.doc)
		s.entries = 0
		for _, series := range s.chart.Series() {
			s.entries += series.Len()
		}
		s.loaded = true
		return s, nil

	case changedMsg:
		s.logger.Info("score document changed, reloading")
		return s, tea.Batch(s.load, s.waitForChange())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Left):
			s.view.Pan(-panStep)
		case key.Matches(msg, keys.Default.Right):
			s.view.Pan(panStep)
		case key.Matches(msg, keys.Default.Start):
			s.view.PanStart()
		case key.Matches(msg, keys.Default.End):
			s.view.PanEnd()
		case key.Matches(msg, keys.Default.Reload):
			return s, s.load
		}
	}
	return s, nil
}

func (s *ChartScreen) View(width, height int) string {
	if !s.loaded {
		return ""
	}
	return s.view.View(width, height, layout.IsCompactHeight(height))
}

func (s *ChartScreen) Title() string {
	return s.opts.Document
}

// Status shows the entry count.
func (s *ChartScreen) Status() string {
	if !s.loaded {
		return ""
	}
	if s.entries == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", s.entries)
}

func (s *ChartScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Pan"},
		{Key: "g/G", Description: "First/Last"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
	if !s.view.CanPan() {
		hints = hints[2:]
	}
	return hints
}

// Close stops the watcher and detaches from the chart.
func (s *ChartScreen) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.view.Close()
}

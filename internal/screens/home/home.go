package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quirk/internal/router"
	"github.com/abhisek/quirk/internal/scores"
	"github.com/abhisek/quirk/internal/screen"
	chartscreen "github.com/abhisek/quirk/internal/screens/chart"
	"github.com/abhisek/quirk/internal/ui/components"
	"github.com/abhisek/quirk/internal/ui/layout"
	"github.com/abhisek/quirk/internal/ui/theme"
)

// documentsMsg carries the stored document list.
type documentsMsg struct {
	docs []documentInfo
	err  error
}

type documentInfo struct {
	name    string
	entries int
}

// HomeScreen lists the stored score documents.
type HomeScreen struct {
	store  scores.Store
	logger *slog.Logger
	chart  chartscreen.Options

	menu    components.Menu
	loading bool
	err     error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. chartOpts is the template for the chart
// screens it opens; its Document is filled per selection.
func New(st scores.Store, logger *slog.Logger, chartOpts chartscreen.Options) *HomeScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeScreen{
		store:   st,
		logger:  logger,
		chart:   chartOpts,
		loading: true,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDocuments
}

func (h *HomeScreen) loadDocuments() tea.Msg {
	ctx := context.Background()
	names, err := h.store.List(ctx)
	if err != nil {
		return documentsMsg{err: err}
	}
	docs := make([]documentInfo, 0, len(names))
	for _, n := range names {
		doc := scores.LoadOrEmpty(ctx, h.store, n, h.logger)
		docs = append(docs, documentInfo{name: n, entries: countEntries(doc)})
	}
	return documentsMsg{docs: docs}
}

func countEntries(doc scores.Document) int {
	n := 0
	for _, entries := range doc {
		n += len(entries)
	}
	return n
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case documentsMsg:
		h.loading = false
		h.err = msg.err
		if msg.err != nil {
			h.logger.Error("list score documents", slog.String("error", msg.err.Error()))
			return h, nil
		}
		h.menu = components.NewMenu(h.menuItems(msg.docs))
		return h, nil

	case router.ResumedMsg:
		// Entries may have been recorded while the chart was open.
		return h, h.loadDocuments
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) menuItems(docs []documentInfo) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(docs)+1)
	for _, d := range docs {
		opts := h.chart
		opts.Document = d.name
		items = append(items, components.MenuItem{
			Label:  d.name,
			Detail: entriesLabel(d.entries),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: chartscreen.New(opts)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})
	return items
}

func entriesLabel(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Your questionnaires"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Pick one to see how your scores changed over time"))
	b.WriteString("\n\n")

	switch {
	case h.loading:
		b.WriteString(theme.Hint.Render("  Loading…"))
	case h.err != nil:
		b.WriteString(theme.Warning.Render("  Could not list score documents: " + h.err.Error()))
	case len(h.menu.Items) <= 1:
		b.WriteString(theme.Hint.Render("  Nothing recorded yet. Run `quirk record` to add scores."))
		b.WriteString("\n\n")
		b.WriteString(h.menu.View())
	default:
		b.WriteString(h.menu.View())
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open chart"},
		{Key: "q", Description: "Quit"},
	}
}

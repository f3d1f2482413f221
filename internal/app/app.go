package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quirk/internal/router"
	"github.com/abhisek/quirk/internal/scores"
	"github.com/abhisek/quirk/internal/screen"
	chartscreen "github.com/abhisek/quirk/internal/screens/chart"
	"github.com/abhisek/quirk/internal/screens/home"
	"github.com/abhisek/quirk/internal/ui/keys"
	"github.com/abhisek/quirk/internal/ui/layout"
)

// Options holds dependencies for the application.
type Options struct {
	Store  scores.Store
	Logger *slog.Logger

	// MinAutoWidth is passed to every chart screen.
	MinAutoWidth float64

	// Document, when set, opens that document's chart on top of the home
	// screen.
	Document string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	// opening is pushed above home by Init.
	opening screen.Screen
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	chartOpts := chartscreen.Options{
		Store:        opts.Store,
		Logger:       logger,
		MinAutoWidth: opts.MinAutoWidth,
		Watch:        true,
	}

	m := AppModel{router: router.New(home.New(opts.Store, logger, chartOpts))}
	if opts.Document != "" {
		chartOpts.Document = opts.Document
		m.opening = chartscreen.New(chartOpts)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Init()}
	if m.opening != nil {
		cmds = append(cmds, m.router.Push(m.opening))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Quit):
			m.router.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Default.Back):
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "q", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

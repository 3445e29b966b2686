package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/metrics"
	"github.com/abhisek/golfdrills/internal/recommend"
	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/screens/home"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/store"
	"github.com/abhisek/golfdrills/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Catalog         *catalog.Catalog
	Skills          *skills.Registry
	Sessions        *store.SessionStore
	Budget          recommend.Budget
	DefaultLocation string
	Metrics         *metrics.Metrics
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	deps := screen.Deps{
		Ctx:             ctx,
		Catalog:         opts.Catalog,
		Skills:          opts.Skills,
		Sessions:        opts.Sessions,
		Budget:          opts.Budget,
		DefaultLocation: opts.DefaultLocation,
		Metrics:         opts.Metrics,
	}
	return AppModel{
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
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

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	if _, err := p.Run(); err != nil {
		pslog.Ctx(ctx).Error("tui exited with error", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

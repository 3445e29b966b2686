package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/screens/history"
	"github.com/abhisek/golfdrills/internal/screens/library"
	"github.com/abhisek/golfdrills/internal/screens/planner"
	"github.com/abhisek/golfdrills/internal/session"
	"github.com/abhisek/golfdrills/internal/ui/components"
	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

type summaryLoadedMsg struct {
	Stats session.Stats
	Last  *session.Record
	Err   error
}

// HomeScreen is the main menu with a short practice summary.
type HomeScreen struct {
	deps    screen.Deps
	menu    components.Menu
	stats   session.Stats
	last    *session.Record
	loaded  bool
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	items := []components.MenuItem{
		{
			Label:  "PLAN SESSION",
			Hint:   "Pick skills, fit drills to your time, log results",
			Action: push(func() screen.Screen { return planner.New(deps) }),
		},
		{
			Label:  "HISTORY",
			Hint:   "Past sessions, newest first",
			Action: push(func() screen.Screen { return history.New(deps) }),
		},
		{
			Label:  "DRILL LIBRARY",
			Hint:   "Browse every drill by category",
			Action: push(func() screen.Screen { return library.New(deps) }),
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	if deps.Sessions == nil {
		items[0].Disabled = true
		items[1].Disabled = true
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadSummary
}

func (h *HomeScreen) loadSummary() tea.Msg {
	if h.deps.Sessions == nil {
		return summaryLoadedMsg{}
	}
	records, err := h.deps.Sessions.Load(h.deps.Context())
	if err != nil {
		return summaryLoadedMsg{Err: err}
	}
	msg := summaryLoadedMsg{Stats: session.Summarize(records)}
	if len(records) > 0 {
		session.SortNewestFirst(records)
		msg.Last = &records[0]
	}
	return msg
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		h.loaded = true
		h.loadErr = ""
		if msg.Err != nil {
			h.loadErr = msg.Err.Error()
			return h, nil
		}
		h.stats = msg.Stats
		h.last = msg.Last
		return h, nil

	case router.RefreshMsg:
		return h, h.loadSummary
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 60)

	var sections []string
	sections = append(sections, theme.Title.Render("Practice with a plan"))
	sections = append(sections, h.renderSummary())
	sections = append(sections, h.menu.View())

	card := theme.Card.Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) renderSummary() string {
	switch {
	case h.loadErr != "":
		return theme.ErrorText.Render("Could not load history: " + h.loadErr)
	case !h.loaded:
		return theme.Hint.Render("Loading history...")
	case h.stats.Sessions == 0:
		return theme.Hint.Render("No sessions yet. Plan your first one!")
	}

	lines := []string{
		theme.Body.Render(fmt.Sprintf("%d sessions  ·  %d drills run", h.stats.Sessions, h.stats.DrillsRun)),
	}
	if h.last != nil {
		lines = append(lines, theme.Muted.Render(fmt.Sprintf("Last: %s at %s", h.last.Date, h.last.Location)))
	}
	if top := session.Ranked(h.stats.DrillCount); len(top) > 0 {
		lines = append(lines, theme.Muted.Render("Favourite drill: "+h.stats.DrillNames[top[0]]))
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Status reports the number of logged sessions.
func (h *HomeScreen) Status() string {
	if !h.loaded {
		return ""
	}
	return fmt.Sprintf("%d sessions", h.stats.Sessions)
}

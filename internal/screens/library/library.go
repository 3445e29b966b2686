package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/session"
	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowDrill
)

type row struct {
	kind     rowKind
	category catalog.CategoryInfo
	drill    *catalog.Drill
}

type usageLoadedMsg struct {
	Counts map[string]int
}

// LibraryScreen lists every catalog drill grouped by category.
type LibraryScreen struct {
	deps         screen.Deps
	rows         []row
	cursor       int
	scrollOffset int
	logged       map[string]int
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.StatusProvider = (*LibraryScreen)(nil)

// New creates a new LibraryScreen.
func New(deps screen.Deps) *LibraryScreen {
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	deps.Catalog = cat

	var rows []row
	for _, c := range cat.Categories() {
		drills := cat.ByCategory(c.ID)
		if len(drills) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowCategoryHeader, category: c})
		for _, d := range drills {
			rows = append(rows, row{kind: rowDrill, category: c, drill: d})
		}
	}

	s := &LibraryScreen{
		deps:   deps,
		rows:   rows,
		logged: make(map[string]int),
	}
	for i, r := range s.rows {
		if r.kind == rowDrill {
			s.cursor = i
			break
		}
	}
	return s
}

// Init counts how often each drill appears in the session history.
func (s *LibraryScreen) Init() tea.Cmd {
	if s.deps.Sessions == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := s.deps.Sessions.Load(s.deps.Context())
		if err != nil {
			return usageLoadedMsg{}
		}
		return usageLoadedMsg{Counts: session.Summarize(records).DrillCount}
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usageLoadedMsg:
		if msg.Counts != nil {
			s.logged = msg.Counts
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextCategory()
		case "shift+tab":
			s.prevCategory()
		case "enter":
			return s, s.selectDrill()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *LibraryScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  The drill catalog is empty.")
	}

	s.adjustScroll(height)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < height; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowDrill:
			lines = append(lines, s.renderDrillRow(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *LibraryScreen) Title() string {
	return "Drill Library"
}

func (s *LibraryScreen) Status() string {
	return fmt.Sprintf("%d drills", s.deps.Catalog.Len())
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *LibraryScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowDrill {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextCategory jumps to the first drill of the next category.
func (s *LibraryScreen) nextCategory() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].category.ID
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowDrill && s.rows[i].category.ID != current {
			s.cursor = i
			return
		}
	}
}

// prevCategory jumps to the first drill of the previous category.
func (s *LibraryScreen) prevCategory() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].category.ID
	prev := ""
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowDrill && s.rows[i].category.ID != current {
			prev = s.rows[i].category.ID
			break
		}
	}
	if prev == "" {
		return
	}
	for i, r := range s.rows {
		if r.kind == rowDrill && r.category.ID == prev {
			s.cursor = i
			return
		}
	}
}

// adjustScroll keeps the cursor and its category header in view.
func (s *LibraryScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *LibraryScreen) selectDrill() tea.Cmd {
	if len(s.rows) == 0 {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowDrill || r.drill == nil {
		return nil
	}
	detail := newDrillDetail(s.deps, r.drill, r.category, s.logged[r.drill.ID])
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderCategoryHeader(c catalog.CategoryInfo, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(c.Label))
}

func (s *LibraryScreen) renderDrillRow(r row, selected bool, width int) string {
	d := r.drill

	durWidth := 8
	loggedWidth := 10
	nameWidth := max(width-4-2-durWidth-loggedWidth-4, 10)

	name := d.Name
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	durStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	loggedStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if n := s.logged[d.ID]; n > 0 {
		loggedStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}
	cursor := "  "
	if selected {
		cursor = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		durStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	}

	logged := ""
	if n := s.logged[d.ID]; n > 0 {
		logged = fmt.Sprintf("logged ×%d", n)
	}

	return fmt.Sprintf("  %s%s  %s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		durStyle.Render(fmt.Sprintf("%3d min", d.Duration)),
		loggedStyle.Render(fmt.Sprintf("%*s", loggedWidth, logged)),
	)
}

package history

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/session"
	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records []session.Record
	Err     error
}

// HistoryScreen displays past sessions, newest first.
type HistoryScreen struct {
	deps     screen.Deps
	records  []session.Record
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	if s.deps.Sessions == nil {
		return historyLoadedMsg{}
	}
	records, err := s.deps.Sessions.Load(s.deps.Context())
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	session.SortNewestFirst(records)
	return historyLoadedMsg{Records: records}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return fmt.Sprintf("%d sessions", len(s.records))
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Drills"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.errMsg = ""
		}
		s.loaded = true
		return s, nil

	case router.RefreshMsg:
		return s, s.load

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter", "space", " ":
			if len(s.records) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Plan one from the home screen!")
	}

	var lines []string
	for i, rec := range s.records {
		lines = append(lines, s.renderRow(i, rec))
		if s.expanded[i] {
			lines = append(lines, renderDrills(rec)...)
		}
	}

	// Keep the selected row on screen; rows before it may include expanded
	// drill lines, so window over the flattened list.
	cursor := s.lineOf(s.selected)
	start, end := layout.Window(len(lines), cursor, max(height-2, 3))

	var b strings.Builder
	b.WriteString("\n")
	cw := layout.ContentWidth(width)
	for _, line := range lines[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderRow(i int, rec session.Record) string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	noun := "drills"
	if len(rec.Drills) == 1 {
		noun = "drill"
	}
	line := fmt.Sprintf("%s%s  %-20s %d %s", prefix, displayDate(rec.Date), truncate(rec.Location, 20), len(rec.Drills), noun)
	return style.Render(line)
}

func renderDrills(rec session.Record) []string {
	var out []string
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(rec.Drills) == 0 {
		out = append(out, dim.Render("      No drills recorded"))
	}
	for _, d := range rec.Drills {
		score := d.Score.String()
		if score == "" {
			score = "-"
		}
		if d.Metric != "" {
			score += " " + d.Metric
		}
		line := fmt.Sprintf("      %-28s %s", truncate(d.Name, 28), score)
		var fg color.Color = theme.Text
		if d.Rate != nil {
			line += fmt.Sprintf("  (%.0f%%)", *d.Rate*100)
			fg = rateColor(*d.Rate)
		}
		out = append(out, lipgloss.NewStyle().Foreground(fg).Render(line))
		if d.Notes != "" {
			out = append(out, dim.Render("        "+d.Notes))
		}
	}
	if rec.Notes != "" {
		out = append(out, dim.Render("      Notes: "+rec.Notes))
	}
	return out
}

// lineOf returns the flattened line index of record i.
func (s *HistoryScreen) lineOf(i int) int {
	line := 0
	for j := range i {
		line++
		if s.expanded[j] {
			line += len(renderDrills(s.records[j]))
		}
	}
	return line
}

func displayDate(date string) string {
	t, err := time.Parse(session.DateLayout, date)
	if err != nil {
		return fmt.Sprintf("%-12s", date)
	}
	return t.Format("Jan 02, 2006")
}

func rateColor(rate float64) color.Color {
	switch {
	case rate >= 0.8:
		return theme.Success
	case rate >= 0.5:
		return theme.Secondary
	default:
		return theme.Sand
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

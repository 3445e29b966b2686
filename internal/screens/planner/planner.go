package planner

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/recommend"
	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/session"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/ui/components"
	"github.com/abhisek/golfdrills/internal/ui/layout"
)

type phase int

const (
	phaseSkills phase = iota
	phaseHours
	phaseDrills
	phaseResults
	phaseDetails
	phaseSaved
)

const (
	fieldDate = iota
	fieldLocation
	fieldNotes
)

// savedMsg is sent when the record has been written to the store.
type savedMsg struct {
	Record *session.Record
	Err    error
}

// PlannerScreen walks the user from skill selection to a saved session. It
// owns the session draft for its lifetime.
type PlannerScreen struct {
	deps   screen.Deps
	budget recommend.Budget
	draft  *session.Draft
	phase  phase

	skillList components.Checklist
	hours     components.TextInput
	plan      recommend.Plan
	drillList components.Checklist

	resultIdx   int
	score       components.TextInput
	resultNotes components.TextInput

	details []components.TextInput
	focus   int

	saving bool
	saved  *session.Record
	errMsg string
}

var _ screen.Screen = (*PlannerScreen)(nil)
var _ screen.KeyHintProvider = (*PlannerScreen)(nil)
var _ screen.EscHandler = (*PlannerScreen)(nil)
var _ screen.StatusProvider = (*PlannerScreen)(nil)

// New creates a PlannerScreen with an empty draft.
func New(deps screen.Deps) *PlannerScreen {
	budget := deps.Budget
	if budget.FallbackCount <= 0 {
		budget = recommend.DefaultBudget()
	}
	location := deps.DefaultLocation
	if location == "" {
		location = session.DefaultLocation
	}

	hours := components.NewTextInput("Hours available", "e.g. 1.5 (blank for the top picks)", 6)
	hours.DecimalOnly = true

	return &PlannerScreen{
		deps:        deps,
		budget:      budget,
		draft:       session.NewDraft(),
		skillList:   components.NewChecklist(skillItems(deps.Skills)),
		hours:       hours,
		score:       components.NewTextInput("Score", "", 40),
		resultNotes: components.NewTextInput("Notes", "optional", 120),
		details: []components.TextInput{
			fieldDate:     components.NewTextInput("Date", "YYYY-MM-DD (blank for today)", 10),
			fieldLocation: components.NewTextInput("Location", location, 60),
			fieldNotes:    components.NewTextInput("Session notes", "optional", 200),
		},
	}
}

func skillItems(reg *skills.Registry) []components.ChecklistItem {
	if reg == nil {
		reg = skills.Default()
	}
	var items []components.ChecklistItem
	for _, c := range reg.Categories() {
		items = append(items, components.ChecklistItem{Label: skills.CategoryDisplayName(c), Header: true})
		for _, s := range reg.ByCategory(c) {
			items = append(items, components.ChecklistItem{ID: s.ID, Label: s.Label})
		}
	}
	return items
}

func (s *PlannerScreen) Init() tea.Cmd {
	return nil
}

func (s *PlannerScreen) Title() string {
	return "Plan Session"
}

// HandlesEsc lets the planner step back through its phases.
func (s *PlannerScreen) HandlesEsc() bool {
	return true
}

// Status shows the minutes of the currently selected drills.
func (s *PlannerScreen) Status() string {
	if s.phase < phaseDrills || s.phase == phaseSaved {
		return ""
	}
	return fmt.Sprintf("%d min planned", s.selectedMinutes())
}

func (s *PlannerScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSkills, phaseDrills:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseHours:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Recommend"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseResults, phaseDetails:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseSaved:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "N", Description: "Plan another"},
		}
	}
	return nil
}

func (s *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ToggleMsg:
		switch s.phase {
		case phaseSkills:
			s.draft.ToggleSkill(msg.ID)
		case phaseDrills:
			s.draft.ToggleDrill(msg.ID)
		}
		s.errMsg = ""
		return s, nil

	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = "Could not save session: " + msg.Err.Error()
			return s, nil
		}
		s.saved = msg.Record
		s.draft.Reset()
		s.phase = phaseSaved
		s.errMsg = ""
		return s, nil

	case tea.KeyPressMsg:
		if s.saving {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, s.back()
		}
		return s, s.handleKey(msg)
	}

	return s, s.updateFocused(msg)
}

func (s *PlannerScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch s.phase {
	case phaseSkills:
		if key == "enter" {
			if len(s.draft.Skills()) == 0 {
				s.errMsg = "Select at least one skill."
				return nil
			}
			s.errMsg = ""
			s.phase = phaseHours
			return s.hours.Focus()
		}
		var cmd tea.Cmd
		s.skillList, cmd = s.skillList.Update(msg)
		return cmd

	case phaseHours:
		if key == "enter" {
			return s.recommend()
		}
		var cmd tea.Cmd
		s.hours, cmd = s.hours.Update(msg)
		return cmd

	case phaseDrills:
		if key == "enter" {
			if len(s.draft.Drills()) == 0 {
				s.errMsg = "Select at least one drill."
				return nil
			}
			s.errMsg = ""
			s.phase = phaseResults
			s.resultIdx = 0
			return s.loadResult()
		}
		var cmd tea.Cmd
		s.drillList, cmd = s.drillList.Update(msg)
		return cmd

	case phaseResults:
		switch key {
		case "tab", "shift+tab":
			return s.toggleResultFocus()
		case "enter":
			s.storeResult()
			if s.resultIdx < len(s.draft.Drills())-1 {
				s.resultIdx++
				return s.loadResult()
			}
			s.phase = phaseDetails
			return s.focusDetail(fieldDate)
		}
		return s.updateFocused(msg)

	case phaseDetails:
		switch key {
		case "tab", "down":
			return s.focusDetail((s.focus + 1) % len(s.details))
		case "shift+tab", "up":
			return s.focusDetail((s.focus + len(s.details) - 1) % len(s.details))
		case "enter":
			if s.focus < len(s.details)-1 {
				return s.focusDetail(s.focus + 1)
			}
			return s.save()
		}
		return s.updateFocused(msg)

	case phaseSaved:
		switch key {
		case "enter":
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "n":
			next := New(s.deps)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return nil
}

// back steps to the previous phase, leaving the screen from the first one.
func (s *PlannerScreen) back() tea.Cmd {
	s.errMsg = ""
	switch s.phase {
	case phaseHours:
		s.hours.Blur()
		s.phase = phaseSkills
	case phaseDrills:
		s.phase = phaseHours
		return s.hours.Focus()
	case phaseResults:
		s.storeResult()
		if s.resultIdx > 0 {
			s.resultIdx--
			return s.loadResult()
		}
		s.score.Blur()
		s.resultNotes.Blur()
		s.phase = phaseDrills
	case phaseDetails:
		s.details[s.focus].Blur()
		s.phase = phaseResults
		s.resultIdx = max(len(s.draft.Drills())-1, 0)
		return s.loadResult()
	default:
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

// recommend filters the catalog by the chosen skills, fits the result to
// the typed hours and preselects the fitted drills.
func (s *PlannerScreen) recommend() tea.Cmd {
	hours := recommend.ParseHours(s.hours.Value())
	plan := s.budget.Plan(s.deps.Catalog, s.draft.Skills(), hours)
	if len(plan.Candidates) == 0 {
		s.errMsg = "No drills train these skills. Pick different skills."
		s.hours.Blur()
		s.phase = phaseSkills
		return nil
	}
	s.deps.Metrics.Recommended(plan.TotalMinutes, plan.Fallback)

	s.plan = plan
	s.draft.ClearDrills()
	for _, d := range plan.Selected {
		s.draft.SelectDrill(d.ID)
	}
	s.drillList = components.NewChecklist(s.drillItems(plan.Candidates))
	s.hours.Blur()
	s.errMsg = ""
	s.phase = phaseDrills
	return nil
}

func (s *PlannerScreen) drillItems(drills []*catalog.Drill) []components.ChecklistItem {
	items := make([]components.ChecklistItem, len(drills))
	for i, d := range drills {
		labels := make([]string, len(d.Skills))
		for j, id := range d.Skills {
			labels[j] = s.skillLabel(id)
		}
		items[i] = components.ChecklistItem{
			ID:     d.ID,
			Label:  fmt.Sprintf("%-28s %3d min", d.Name, d.Duration),
			Detail: joinLabels(labels),
		}
	}
	return items
}

func joinLabels(labels []string) string { return strings.Join(labels, ", ") }

func (s *PlannerScreen) skillLabel(id string) string {
	if s.deps.Skills == nil {
		return skills.Label(id)
	}
	return s.deps.Skills.Label(id)
}

func (s *PlannerScreen) currentDrill() (*catalog.Drill, bool) {
	ids := s.draft.Drills()
	if s.resultIdx < 0 || s.resultIdx >= len(ids) {
		return nil, false
	}
	return s.deps.Catalog.DrillByID(ids[s.resultIdx])
}

func (s *PlannerScreen) loadResult() tea.Cmd {
	d, ok := s.currentDrill()
	if !ok {
		return nil
	}
	r := s.draft.Result(d.ID)
	s.score.SetValue(r.Score)
	s.score.Model.Placeholder = d.Metric()
	s.resultNotes.SetValue(r.Notes)
	s.resultNotes.Blur()
	return s.score.Focus()
}

func (s *PlannerScreen) storeResult() {
	if d, ok := s.currentDrill(); ok {
		s.draft.SetResult(d.ID, s.score.Value(), s.resultNotes.Value())
	}
}

func (s *PlannerScreen) toggleResultFocus() tea.Cmd {
	if s.score.Focused() {
		s.score.Blur()
		return s.resultNotes.Focus()
	}
	s.resultNotes.Blur()
	return s.score.Focus()
}

func (s *PlannerScreen) focusDetail(i int) tea.Cmd {
	for j := range s.details {
		s.details[j].Blur()
	}
	s.focus = i
	return s.details[i].Focus()
}

// updateFocused forwards msg to whichever text input has focus.
func (s *PlannerScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.phase {
	case phaseHours:
		s.hours, cmd = s.hours.Update(msg)
	case phaseResults:
		if s.score.Focused() {
			s.score, cmd = s.score.Update(msg)
		} else {
			s.resultNotes, cmd = s.resultNotes.Update(msg)
		}
	case phaseDetails:
		s.details[s.focus], cmd = s.details[s.focus].Update(msg)
	}
	return cmd
}

// save builds the record from the draft and writes it in the background.
func (s *PlannerScreen) save() tea.Cmd {
	s.draft.Date = s.details[fieldDate].Value()
	s.draft.Location = s.details[fieldLocation].Value()
	s.draft.Notes = s.details[fieldNotes].Value()

	ctx := s.deps.Context()
	b := session.NewBuilder(s.deps.Catalog)
	b.DefaultLocation = s.deps.DefaultLocation
	b.OnUnresolved = func(id string) {
		s.deps.Metrics.UnresolvedDrill()
		pslog.Ctx(ctx).Debug("drill not in catalog, skipped", "drill", id)
	}

	rec, err := b.Build(s.draft.Input())
	if err != nil {
		s.errMsg = err.Error()
		if errors.Is(err, session.ErrInvalidDate) {
			return s.focusDetail(fieldDate)
		}
		return nil
	}
	if s.deps.Sessions == nil {
		s.errMsg = "No session store configured."
		return nil
	}

	s.saving = true
	s.errMsg = ""
	store := s.deps.Sessions
	return func() tea.Msg {
		return savedMsg{Record: rec, Err: store.Save(ctx, rec)}
	}
}

func (s *PlannerScreen) selectedMinutes() int {
	total := 0
	for _, id := range s.draft.Drills() {
		if d, ok := s.deps.Catalog.DrillByID(id); ok {
			total += d.Duration
		}
	}
	return total
}

package planner

import (
	"fmt"
	"strings"

	"github.com/abhisek/golfdrills/internal/ui/components"
	"github.com/abhisek/golfdrills/internal/ui/layout"
	"github.com/abhisek/golfdrills/internal/ui/theme"
)

func (s *PlannerScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseSkills:
		body = s.viewSkills(cw, height)
	case phaseHours:
		body = s.viewHours()
	case phaseDrills:
		body = s.viewDrills(cw, height)
	case phaseResults:
		body = s.viewResults()
	case phaseDetails:
		body = s.viewDetails()
	case phaseSaved:
		body = s.viewSaved()
	}

	if s.errMsg != "" {
		body += "\n\n" + theme.ErrorText.Render(s.errMsg)
	}
	return layout.Center(width, body)
}

func (s *PlannerScreen) viewSkills(width, height int) string {
	header := theme.Title.Render("What do you want to work on?") + "\n" +
		theme.Hint.Render(fmt.Sprintf("%d selected", len(s.draft.Skills())))
	list := s.skillList.View(width, max(height-6, 3), s.draft.HasSkill)
	return header + "\n\n" + list
}

func (s *PlannerScreen) viewHours() string {
	return theme.Title.Render("How much time do you have?") + "\n\n" +
		s.hours.View() + "\n\n" +
		theme.Hint.Render(fmt.Sprintf("Plans may run up to %d min over. Leave blank for the top %d drills.",
			s.budget.ToleranceMinutes, s.budget.FallbackCount))
}

func (s *PlannerScreen) viewDrills(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Recommended drills"))
	b.WriteString("\n")
	switch {
	case !s.plan.Budgeted:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("No time budget, top %d preselected", len(s.plan.Selected))))
	case s.plan.Fallback:
		b.WriteString(theme.Hint.Render("Nothing fits that budget, showing the top picks instead"))
	default:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Fitted to %d min", s.plan.TargetMinutes)))
	}
	b.WriteString("\n\n")

	bar := components.MinutesBar{Planned: s.selectedMinutes(), Target: s.plan.TargetMinutes, Width: min(width, 60)}
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(s.drillList.View(width, max(height-9, 3), s.draft.HasDrill))
	return b.String()
}

func (s *PlannerScreen) viewResults() string {
	d, ok := s.currentDrill()
	if !ok {
		return ""
	}
	ids := s.draft.Drills()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Drill %d of %d", s.resultIdx+1, len(ids))))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(d.Name))
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(theme.Muted.Render(d.Description))
		b.WriteString("\n")
	}
	if m := d.Metric(); m != "" {
		b.WriteString(theme.Hint.Render("Scored as: " + m))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.score.View())
	b.WriteString("\n\n")
	b.WriteString(s.resultNotes.View())
	return b.String()
}

func (s *PlannerScreen) viewDetails() string {
	parts := []string{theme.Title.Render("Session details")}
	for _, in := range s.details {
		parts = append(parts, in.View())
	}
	parts = append(parts, theme.Hint.Render("Enter on the last field saves the session"))
	if s.saving {
		parts = append(parts, theme.Hint.Render("Saving..."))
	}
	return strings.Join(parts, "\n\n")
}

func (s *PlannerScreen) viewSaved() string {
	if s.saved == nil {
		return ""
	}
	lines := []string{
		theme.Title.Render("Session saved"),
		theme.Body.Render(fmt.Sprintf("%d drills on %s at %s", len(s.saved.Drills), s.saved.Date, s.saved.Location)),
		"",
	}
	for _, r := range s.saved.Drills {
		score := r.Score.String()
		if r.Score.IsNull() || score == "" {
			score = "-"
		}
		lines = append(lines, fmt.Sprintf("  %-28s %s", r.Name, theme.Checked.Render(score)))
	}
	return strings.Join(lines, "\n")
}

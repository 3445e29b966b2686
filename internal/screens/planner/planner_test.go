package planner

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golfdrills/internal/catalog"
	"github.com/abhisek/golfdrills/internal/recommend"
	"github.com/abhisek/golfdrills/internal/router"
	"github.com/abhisek/golfdrills/internal/screen"
	"github.com/abhisek/golfdrills/internal/skills"
	"github.com/abhisek/golfdrills/internal/store"
)

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyX     = tea.KeyPressMsg{Code: 'x', Text: "x"}
)

func newTestPlanner(t *testing.T) (*PlannerScreen, *store.SessionStore) {
	t.Helper()
	sessions := store.NewSessionStore(store.NewMemoryKV())
	deps := screen.Deps{
		Ctx:             context.Background(),
		Catalog:         catalog.Default(),
		Skills:          skills.Default(),
		Sessions:        sessions,
		Budget:          recommend.DefaultBudget(),
		DefaultLocation: "range",
	}
	return New(deps), sessions
}

func press(s *PlannerScreen, msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

// toggle presses x and feeds the resulting ToggleMsg back.
func toggle(t *testing.T, s *PlannerScreen) {
	t.Helper()
	cmd := press(s, keyX)
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	s.Update(cmd())
}

// selectPaceAndGreenReading picks the two putting skills below the header.
func selectPaceAndGreenReading(t *testing.T, s *PlannerScreen) {
	t.Helper()
	press(s, keyDown, keyDown)
	toggle(t, s)
	press(s, keyDown)
	toggle(t, s)
}

func TestNew_StartsOnFirstSkill(t *testing.T) {
	s, _ := newTestPlanner(t)
	if s.phase != phaseSkills {
		t.Fatalf("expected skills phase, got %d", s.phase)
	}
	item, ok := s.skillList.Current()
	if !ok || item.ID != "start_line" {
		t.Errorf("expected cursor on start_line, got %+v", item)
	}
	if s.Title() != "Plan Session" {
		t.Errorf("unexpected title %q", s.Title())
	}
}

func TestSkills_EnterRequiresSelection(t *testing.T) {
	s, _ := newTestPlanner(t)
	press(s, keyEnter)
	if s.phase != phaseSkills {
		t.Errorf("expected to stay on skills, got %d", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestSkills_ToggleTwiceDeselects(t *testing.T) {
	s, _ := newTestPlanner(t)
	toggle(t, s)
	if !s.draft.HasSkill("start_line") {
		t.Fatal("expected start_line selected")
	}
	toggle(t, s)
	if s.draft.HasSkill("start_line") {
		t.Error("expected start_line deselected")
	}
}

func TestRecommend_PreselectsFittedDrills(t *testing.T) {
	s, _ := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter)
	if s.phase != phaseHours {
		t.Fatalf("expected hours phase, got %d", s.phase)
	}

	s.hours.SetValue("0.5")
	press(s, keyEnter)
	if s.phase != phaseDrills {
		t.Fatalf("expected drills phase, got %d", s.phase)
	}

	if len(s.drillList.Items) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(s.drillList.Items))
	}
	got := s.draft.Drills()
	want := []string{"ladder_lag", "clock_drill"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("drill %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if s.plan.TargetMinutes != 30 || s.plan.Fallback {
		t.Errorf("unexpected plan %+v", s.plan)
	}
	if s.Status() != "35 min planned" {
		t.Errorf("unexpected status %q", s.Status())
	}
}

func TestRecommend_DrillRowsListSkillLabels(t *testing.T) {
	s, _ := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter)
	s.hours.SetValue("0.5")
	press(s, keyEnter)

	for _, item := range s.drillList.Items {
		if item.ID != "clock_drill" {
			continue
		}
		want := "Start Line Control, Green Reading, Performing Under Pressure"
		if item.Detail != want {
			t.Errorf("clock_drill detail = %q, want %q", item.Detail, want)
		}
		return
	}
	t.Fatal("clock_drill not among candidates")
}

func TestRecommend_BlankHoursFallsBack(t *testing.T) {
	s, _ := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter, keyEnter)

	if !s.plan.Fallback {
		t.Error("expected fallback plan")
	}
	if len(s.draft.Drills()) != 3 {
		t.Errorf("expected all 3 candidates preselected, got %v", s.draft.Drills())
	}
}

func TestFullFlow_SavesSession(t *testing.T) {
	s, sessions := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter)
	s.hours.SetValue("0.5")
	press(s, keyEnter)

	// Add circle_of_pace on top of the fitted pair.
	press(s, keyDown, keyDown)
	toggle(t, s)
	if s.Status() != "50 min planned" {
		t.Errorf("unexpected status %q", s.Status())
	}

	press(s, keyEnter)
	if s.phase != phaseResults {
		t.Fatalf("expected results phase, got %d", s.phase)
	}
	s.score.SetValue("3 rungs")
	press(s, keyEnter)

	s.score.SetValue("12")
	press(s, keyTab)
	if !s.resultNotes.Focused() {
		t.Fatal("expected tab to focus notes")
	}
	s.resultNotes.SetValue("windy")
	press(s, keyEnter, keyEnter)
	if s.phase != phaseDetails {
		t.Fatalf("expected details phase, got %d", s.phase)
	}

	s.details[fieldDate].SetValue("2026-03-14")
	press(s, keyEnter)
	s.details[fieldLocation].SetValue("Home green")
	cmd := press(s, keyEnter, keyEnter)
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	if s.phase != phaseSaved {
		t.Fatalf("expected saved phase, got %d (err %q)", s.phase, s.errMsg)
	}
	if len(s.draft.Drills()) != 0 || len(s.draft.Skills()) != 0 {
		t.Error("expected draft reset after save")
	}

	records, err := sessions.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Date != "2026-03-14" || rec.Location != "Home green" {
		t.Errorf("unexpected date/location %q %q", rec.Date, rec.Location)
	}
	if len(rec.Skills) != 2 || rec.Skills[0] != "pace" || rec.Skills[1] != "green_reading" {
		t.Errorf("unexpected skills %v", rec.Skills)
	}
	if len(rec.Drills) != 3 {
		t.Fatalf("expected 3 drills, got %d", len(rec.Drills))
	}
	if rec.Drills[0].Score.String() != "3 rungs" {
		t.Errorf("unexpected first score %q", rec.Drills[0].Score)
	}
	if rec.Drills[1].DrillID != "clock_drill" || rec.Drills[1].Score.String() != "12" || rec.Drills[1].Notes != "windy" {
		t.Errorf("unexpected second result %+v", rec.Drills[1])
	}
	if rec.Drills[2].DrillID != "circle_of_pace" || rec.Drills[2].Score.String() != "" {
		t.Errorf("unexpected third result %+v", rec.Drills[2])
	}

	cmd = press(s, keyEnter)
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected enter on saved screen to pop")
	}
}

func TestDetails_InvalidDateBlocksSave(t *testing.T) {
	s, sessions := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter, keyEnter, keyEnter)
	for range s.draft.Drills() {
		press(s, keyEnter)
	}
	if s.phase != phaseDetails {
		t.Fatalf("expected details phase, got %d", s.phase)
	}

	s.details[fieldDate].SetValue("14/03/2026")
	press(s, keyEnter, keyEnter, keyEnter)

	if s.phase != phaseDetails {
		t.Errorf("expected to stay on details, got %d", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected a date error")
	}
	if s.focus != fieldDate {
		t.Errorf("expected focus back on date, got %d", s.focus)
	}
	records, _ := sessions.Load(context.Background())
	if len(records) != 0 {
		t.Errorf("expected nothing saved, got %d", len(records))
	}
}

func TestEsc_StepsBackThenPops(t *testing.T) {
	s, _ := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter, keyEnter)
	if s.phase != phaseDrills {
		t.Fatalf("expected drills phase, got %d", s.phase)
	}

	press(s, keyEsc)
	if s.phase != phaseHours {
		t.Errorf("expected hours phase, got %d", s.phase)
	}
	press(s, keyEsc)
	if s.phase != phaseSkills {
		t.Errorf("expected skills phase, got %d", s.phase)
	}
	if !s.draft.HasSkill("pace") {
		t.Error("expected skill selection kept when stepping back")
	}

	cmd := press(s, keyEsc)
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if !s.HandlesEsc() {
		t.Error("expected planner to handle esc")
	}
}

func TestResults_EscKeepsTypedScore(t *testing.T) {
	s, _ := newTestPlanner(t)
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter, keyEnter, keyEnter)

	s.score.SetValue("4")
	press(s, keyEnter)
	press(s, keyEsc)

	if s.resultIdx != 0 {
		t.Fatalf("expected first drill, got %d", s.resultIdx)
	}
	if s.score.Value() != "4" {
		t.Errorf("expected typed score restored, got %q", s.score.Value())
	}
}

func TestView_RendersEveryPhase(t *testing.T) {
	s, _ := newTestPlanner(t)
	if s.View(100, 30) == "" {
		t.Error("empty skills view")
	}
	selectPaceAndGreenReading(t, s)
	press(s, keyEnter)
	if s.View(100, 30) == "" {
		t.Error("empty hours view")
	}
	press(s, keyEnter)
	if s.View(100, 30) == "" {
		t.Error("empty drills view")
	}
	press(s, keyEnter)
	if s.View(100, 30) == "" {
		t.Error("empty results view")
	}
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

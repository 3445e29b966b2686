package skills

import (
	"strings"
	"testing"
)

func TestGetSkill_Exists(t *testing.T) {
	s, err := GetSkill("start_line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Label != "Start Line Control" {
		t.Errorf("got label %q, want %q", s.Label, "Start Line Control")
	}
	if s.Category != CategoryPutting {
		t.Errorf("got category %q, want %q", s.Category, CategoryPutting)
	}
}

func TestGetSkill_NotFound(t *testing.T) {
	_, err := GetSkill("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent skill, got nil")
	}
}

func TestAllSkills_Count(t *testing.T) {
	all := AllSkills()
	if len(all) != 15 {
		t.Errorf("got %d skills, want 15", len(all))
	}
}

func TestAllSkills_ReturnsCopy(t *testing.T) {
	all := AllSkills()
	all[0].Label = "mutated"
	if AllSkills()[0].Label == "mutated" {
		t.Error("AllSkills exposed internal state")
	}
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     int
	}{
		{CategoryPutting, 4},
		{CategoryShortGame, 5},
		{CategoryFullSwing, 4},
		{CategoryMental, 2},
		{Category("unknown"), 0},
	}
	for _, tt := range tests {
		got := ByCategory(tt.category)
		if len(got) != tt.want {
			t.Errorf("ByCategory(%q): got %d skills, want %d", tt.category, len(got), tt.want)
		}
		for _, s := range got {
			if s.Category != tt.category {
				t.Errorf("ByCategory(%q) returned skill %q in %q", tt.category, s.ID, s.Category)
			}
		}
	}
}

func TestCategories_Order(t *testing.T) {
	want := []Category{CategoryPutting, CategoryShortGame, CategoryFullSwing, CategoryMental}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLabel_UnknownFallsBackToID(t *testing.T) {
	if got := Label("face_control"); got != "Face Control" {
		t.Errorf("Label(face_control) = %q", got)
	}
	if got := Label("retired_skill"); got != "retired_skill" {
		t.Errorf("Label(retired_skill) = %q, want the raw id", got)
	}
}

func TestCategoryDisplayName(t *testing.T) {
	if got := CategoryDisplayName(CategoryShortGame); got != "Short Game" {
		t.Errorf("got %q", got)
	}
	if got := CategoryDisplayName(Category("range")); got != "range" {
		t.Errorf("unknown category should display raw value, got %q", got)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("categories: [")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidateSkills_DetectsDuplicates(t *testing.T) {
	list := []Skill{
		{ID: "a", Label: "A", Category: CategoryPutting},
		{ID: "a", Label: "A again", Category: CategoryPutting},
	}
	err := validateSkills(list)
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidateSkills_ReportsAllProblems(t *testing.T) {
	list := []Skill{
		{ID: "", Label: "Nameless", Category: CategoryPutting},
		{ID: "b", Label: "", Category: ""},
	}
	err := validateSkills(list)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"empty ID", "empty label", "no category"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should mention %q, got: %v", want, msg)
		}
	}
}

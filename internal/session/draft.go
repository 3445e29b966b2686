package session

import "slices"

// Draft is the in-progress selection for one session. It belongs to a
// single controller (a screen or a command invocation) and is not safe for
// concurrent use.
type Draft struct {
	skills  []string
	drills  []string
	results map[string]ResultInput

	Date     string
	Location string
	Notes    string
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{results: make(map[string]ResultInput)}
}

// ToggleSkill flips a skill's selection and reports whether it is now selected.
func (d *Draft) ToggleSkill(id string) bool {
	var on bool
	d.skills, on = toggle(d.skills, id)
	return on
}

// SelectSkill adds a skill if it is not already selected.
func (d *Draft) SelectSkill(id string) {
	if !slices.Contains(d.skills, id) {
		d.skills = append(d.skills, id)
	}
}

// HasSkill reports whether a skill is selected.
func (d *Draft) HasSkill(id string) bool { return slices.Contains(d.skills, id) }

// Skills returns the selected skills in selection order.
func (d *Draft) Skills() []string { return slices.Clone(d.skills) }

// ToggleDrill flips a drill's selection and reports whether it is now selected.
func (d *Draft) ToggleDrill(id string) bool {
	var on bool
	d.drills, on = toggle(d.drills, id)
	return on
}

// SelectDrill adds a drill if it is not already selected.
func (d *Draft) SelectDrill(id string) {
	if !slices.Contains(d.drills, id) {
		d.drills = append(d.drills, id)
	}
}

// HasDrill reports whether a drill is selected.
func (d *Draft) HasDrill(id string) bool { return slices.Contains(d.drills, id) }

// Drills returns the selected drills in selection order.
func (d *Draft) Drills() []string { return slices.Clone(d.drills) }

// ClearDrills deselects every drill, keeping typed results.
func (d *Draft) ClearDrills() { d.drills = nil }

// SetResult records the score and notes for a drill.
func (d *Draft) SetResult(drillID, score, notes string) {
	if d.results == nil {
		d.results = make(map[string]ResultInput)
	}
	d.results[drillID] = ResultInput{Score: score, Notes: notes}
}

// Result returns the typed result for a drill.
func (d *Draft) Result(drillID string) ResultInput { return d.results[drillID] }

// Input snapshots the draft for the builder.
func (d *Draft) Input() Input {
	results := make(map[string]ResultInput, len(d.drills))
	for _, id := range d.drills {
		if r, ok := d.results[id]; ok {
			results[id] = r
		}
	}
	return Input{
		Date:     d.Date,
		Location: d.Location,
		SkillIDs: d.Skills(),
		DrillIDs: d.Drills(),
		Results:  results,
		Notes:    d.Notes,
	}
}

// Reset clears the draft. Callers do this after a successful save.
func (d *Draft) Reset() {
	*d = Draft{results: make(map[string]ResultInput)}
}

func toggle(ids []string, id string) ([]string, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1), false
	}
	return append(ids, id), true
}

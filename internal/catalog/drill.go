package catalog

import "slices"

// Drill is a single practice exercise. Drills are immutable reference data;
// callers must not modify values obtained from a Catalog.
type Drill struct {
	ID          string
	Name        string
	Description string
	Skills      []string
	Duration    int // minutes
	Category    string
	Environment []string
	Scoring     Scoring
}

// TrainsSkill reports whether the drill is tagged with skill id.
func (d *Drill) TrainsSkill(id string) bool {
	return slices.Contains(d.Skills, id)
}

// MatchCount returns how many of the drill's skills are in selected.
func (d *Drill) MatchCount(selected map[string]struct{}) int {
	n := 0
	for _, id := range d.Skills {
		if _, ok := selected[id]; ok {
			n++
		}
	}
	return n
}

// Metric returns the scoring metric label, or "" when the drill has no
// scoring descriptor.
func (d *Drill) Metric() string {
	if d.Scoring == nil {
		return ""
	}
	return d.Scoring.Metric()
}

// dedupe returns ids with blanks and repeats removed, keeping first occurrence.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

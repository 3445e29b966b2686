package session

import (
	"cmp"
	"slices"
	"time"
)

// SortNewestFirst orders records by creation time, newest first, using the
// session date when a record has no creation time. Equal keys keep their
// relative order. records is sorted in place.
func SortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return recency(b).Compare(recency(a))
	})
}

func recency(r Record) time.Time {
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	if t, err := time.Parse(DateLayout, r.Date); err == nil {
		return t
	}
	return time.Time{}
}

// Stats aggregates a history for the stats view.
type Stats struct {
	Sessions   int
	DrillsRun  int
	DrillCount map[string]int // by drill id
	DrillNames map[string]string
	SkillCount map[string]int // by skill id
	Locations  map[string]int
}

// Summarize counts drills, skills and locations across records.
func Summarize(records []Record) Stats {
	st := Stats{
		Sessions:   len(records),
		DrillCount: make(map[string]int),
		DrillNames: make(map[string]string),
		SkillCount: make(map[string]int),
		Locations:  make(map[string]int),
	}
	for _, r := range records {
		st.Locations[r.Location]++
		for _, s := range r.Skills {
			st.SkillCount[s]++
		}
		for _, d := range r.Drills {
			st.DrillsRun++
			st.DrillCount[d.DrillID]++
			if _, ok := st.DrillNames[d.DrillID]; !ok {
				st.DrillNames[d.DrillID] = d.Name
			}
		}
	}
	return st
}

// Ranked returns map keys ordered by descending count, then by key.
func Ranked(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return cmp.Compare(a, b)
	})
	return keys
}

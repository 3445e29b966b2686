package recommend

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/golfdrills/internal/catalog"
)

// Default budget policy.
const (
	DefaultFallbackCount    = 4
	DefaultToleranceMinutes = 15
)

// Budget configures how a ranked drill list is fitted to available time.
type Budget struct {
	// FallbackCount is how many top drills are proposed when no time is
	// given or nothing fits.
	FallbackCount int
	// ToleranceMinutes is how far the plan may run over the target.
	ToleranceMinutes int
}

// DefaultBudget returns the standard fallback-of-4, 15-minute-tolerance policy.
func DefaultBudget() Budget {
	return Budget{
		FallbackCount:    DefaultFallbackCount,
		ToleranceMinutes: DefaultToleranceMinutes,
	}
}

// FilterDrills returns every drill sharing at least one skill with selected,
// ordered by descending match count. Equal counts keep catalog order.
// An empty selection yields no drills.
func FilterDrills(p catalog.Provider, selected []string) []*catalog.Drill {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}

	type scored struct {
		drill *catalog.Drill
		count int
	}
	var matches []scored
	for _, d := range p.AllDrills() {
		if n := d.MatchCount(set); n > 0 {
			matches = append(matches, scored{drill: d, count: n})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		return b.count - a.count
	})

	out := make([]*catalog.Drill, len(matches))
	for i, m := range matches {
		out[i] = m.drill
	}
	return out
}

// FitToTimeBudget fits ranked drills to hours using DefaultBudget.
func FitToTimeBudget(ranked []*catalog.Drill, hours float64) []*catalog.Drill {
	out, _ := DefaultBudget().Fit(ranked, hours)
	return out
}

// Fit walks ranked in order and keeps every drill that leaves the running
// total within hours*60 + ToleranceMinutes; drills that would overflow are
// skipped and the walk continues. When hours is not a positive finite
// number, or nothing fits, the first FallbackCount drills are returned and
// fallback is true.
func (b Budget) Fit(ranked []*catalog.Drill, hours float64) (out []*catalog.Drill, fallback bool) {
	if !validHours(hours) {
		return b.head(ranked), true
	}

	ceiling := hours*60 + float64(b.ToleranceMinutes)
	total := 0
	for _, d := range ranked {
		if float64(total+d.Duration) <= ceiling {
			out = append(out, d)
			total += d.Duration
		}
	}
	if len(out) == 0 {
		return b.head(ranked), true
	}
	return out, false
}

func (b Budget) head(ranked []*catalog.Drill) []*catalog.Drill {
	n := min(b.FallbackCount, len(ranked))
	if n <= 0 {
		return nil
	}
	return slices.Clone(ranked[:n])
}

func validHours(h float64) bool {
	return h > 0 && !math.IsInf(h, 0)
}

// ParseHours turns user text into an hours value. Blank or unparseable text
// yields 0, which Fit treats as "no budget".
func ParseHours(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || !validHours(h) {
		return 0
	}
	return h
}

// TotalMinutes sums drill durations.
func TotalMinutes(drills []*catalog.Drill) int {
	total := 0
	for _, d := range drills {
		total += d.Duration
	}
	return total
}

// Plan is a filtered candidate list together with the budget-fitted subset.
type Plan struct {
	Candidates    []*catalog.Drill
	Selected      []*catalog.Drill
	TargetMinutes int
	TotalMinutes  int
	// Budgeted is false when hours was blank or not a positive number.
	Budgeted bool
	Fallback bool
}

// Plan filters the catalog by skills and fits the result to hours.
func (b Budget) Plan(p catalog.Provider, selectedSkills []string, hours float64) Plan {
	candidates := FilterDrills(p, selectedSkills)
	selected, fallback := b.Fit(candidates, hours)
	plan := Plan{
		Candidates:   candidates,
		Selected:     selected,
		TotalMinutes: TotalMinutes(selected),
		Fallback:     fallback,
	}
	if validHours(hours) {
		plan.Budgeted = true
		plan.TargetMinutes = int(math.Round(hours * 60))
	}
	return plan
}

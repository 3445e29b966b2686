package catalog

import (
	"fmt"
	"strings"
)

// validateDrills checks drill structure. Hard problems (missing or
// duplicate ids, non-positive durations) fail the load; unknown skill ids are
// returned as warnings since the drill should still be listed.
func validateDrills(drills []Drill, known SkillChecker) ([]string, error) {
	var errs, warnings []string

	ids := make(map[string]bool, len(drills))
	for _, d := range drills {
		if strings.TrimSpace(d.ID) == "" {
			errs = append(errs, fmt.Sprintf("drill %q has an empty ID", d.Name))
			continue
		}
		if ids[d.ID] {
			errs = append(errs, fmt.Sprintf("duplicate drill ID: %q", d.ID))
		}
		ids[d.ID] = true

		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Sprintf("drill %q has an empty name", d.ID))
		}
		if d.Duration <= 0 {
			errs = append(errs, fmt.Sprintf("drill %q: duration must be > 0, got %d", d.ID, d.Duration))
		}
		if known == nil {
			continue
		}
		for _, sid := range d.Skills {
			if !known.Exists(sid) {
				warnings = append(warnings, fmt.Sprintf("drill %q references unknown skill %q", d.ID, sid))
			}
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("drill catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}

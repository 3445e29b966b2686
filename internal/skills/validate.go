package skills

import (
	"fmt"
	"strings"
)

// validateSkills performs the structural checks on a skill set.
// Returns a combined error describing all problems found, or nil if valid.
func validateSkills(list []Skill) error {
	var errs []string

	idSet := make(map[string]bool, len(list))
	for _, s := range list {
		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, fmt.Sprintf("skill with label %q has an empty ID", s.Label))
			continue
		}
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		idSet[s.ID] = true

		if strings.TrimSpace(s.Label) == "" {
			errs = append(errs, fmt.Sprintf("skill %q has an empty label", s.ID))
		}
		if s.Category == "" {
			errs = append(errs, fmt.Sprintf("skill %q has no category", s.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

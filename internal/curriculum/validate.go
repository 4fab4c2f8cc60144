package curriculum

import (
	"fmt"
	"strings"
)

// validateCurriculum performs structural checks on the loaded tree.
// Returns a combined error describing all problems found, or nil.
func validateCurriculum(categories []Category, materials map[string]Material) error {
	var errs []string

	skillSet := make(map[string]bool)
	total := 0
	for _, cat := range categories {
		if len(cat.Skills) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has no skills", cat.Name))
		}
		for _, s := range cat.Skills {
			if skillSet[s.Name] {
				errs = append(errs, fmt.Sprintf("duplicate skill name: %q", s.Name))
			}
			skillSet[s.Name] = true
			total++
		}
	}

	if total == 0 {
		errs = append(errs, "curriculum has no skills")
	}

	// Materials must belong to a cataloged skill.
	for name := range materials {
		if !skillSet[name] {
			errs = append(errs, fmt.Sprintf("material %q has no backing skill in the catalog", name))
		}
	}

	// Exercise ids must be unique within a material and must not collide
	// with the reserved completion sentinel.
	for name, m := range materials {
		seen := make(map[string]bool, len(m.Practice.Examples))
		for _, ex := range m.Practice.Examples {
			if seen[ex.ID] {
				errs = append(errs, fmt.Sprintf("material %q: duplicate exercise id %q", name, ex.ID))
			}
			seen[ex.ID] = true
			if ex.ID == "completed_all" {
				errs = append(errs, fmt.Sprintf("material %q: exercise id %q is reserved", name, ex.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

package curriculum

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// materialsDirName is the subdirectory holding per-skill material documents.
const materialsDirName = "learning_materials"

// Load reads a curriculum directory and returns the validated Index.
//
// The directory layout follows the catalog format: skills.json holds the
// category tree, and learning_materials/ holds one document per skill,
// named after the skill with spaces replaced by underscores. A skill
// whose material file is missing is logged to stderr and left without
// exercises rather than failing the whole load.
func Load(dir string) (*Index, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "skills.json"))
	if err != nil {
		return nil, fmt.Errorf("read skills catalog: %w", err)
	}

	if err := validateDocument("skills-catalog", skillsSchema, raw); err != nil {
		return nil, fmt.Errorf("skills.json: %w", err)
	}

	var categories []Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode skills catalog: %w", err)
	}

	materials := make(map[string]Material)
	for _, cat := range categories {
		for _, s := range cat.Skills {
			m, err := loadMaterial(dir, s.Name)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(os.Stderr, "warning: no material file for skill %q\n", s.Name)
					continue
				}
				return nil, fmt.Errorf("material for %q: %w", s.Name, err)
			}
			materials[s.Name] = m
		}
	}

	if err := validateCurriculum(categories, materials); err != nil {
		return nil, err
	}

	return New(categories, materials), nil
}

// loadMaterial reads and validates a single learning-material document.
func loadMaterial(dir, skillName string) (Material, error) {
	path := filepath.Join(dir, materialsDirName, MaterialFileName(skillName))
	raw, err := os.ReadFile(path)
	if err != nil {
		return Material{}, err
	}

	if err := validateDocument("learning-material", materialSchema, raw); err != nil {
		return Material{}, err
	}

	var m Material
	if err := json.Unmarshal(raw, &m); err != nil {
		return Material{}, fmt.Errorf("decode material: %w", err)
	}
	return m, nil
}

// MaterialFileName maps a skill name to its document file name.
func MaterialFileName(skillName string) string {
	return strings.ReplaceAll(skillName, " ", "_") + ".json"
}

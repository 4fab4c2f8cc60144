package curriculum

import "slices"

// Index is the read-only curriculum tree with precomputed lookups.
// It is built once at startup and shared by reference; nothing mutates
// it after New returns.
type Index struct {
	categories []Category
	order      []string // flattened skill names, category order then skill order
	materials  map[string]Material
}

// New builds an Index from a category tree and the materials keyed by
// skill name. The inputs are copied so later mutation by the caller
// cannot leak into the Index.
func New(categories []Category, materials map[string]Material) *Index {
	ix := &Index{
		categories: slices.Clone(categories),
		materials:  make(map[string]Material, len(materials)),
	}
	for _, cat := range ix.categories {
		for _, s := range cat.Skills {
			ix.order = append(ix.order, s.Name)
		}
	}
	for name, m := range materials {
		ix.materials[name] = m
	}
	return ix
}

// Categories returns the category tree in curriculum order.
func (ix *Index) Categories() []Category {
	return slices.Clone(ix.categories)
}

// SkillNames returns the flattened, category-ordered skill sequence.
func (ix *Index) SkillNames() []string {
	return slices.Clone(ix.order)
}

// FirstSkill returns the first skill in the curriculum, or "" when the
// curriculum is empty. Fresh progress records start here.
func (ix *Index) FirstSkill() string {
	if len(ix.order) == 0 {
		return ""
	}
	return ix.order[0]
}

// NextSkill returns the skill immediately following the first occurrence
// of name in the flattened sequence. The second return is false when name
// is the last skill or not present at all; the two cases are deliberately
// not distinguished.
func (ix *Index) NextSkill(name string) (string, bool) {
	for i, s := range ix.order {
		if s == name {
			if i+1 < len(ix.order) {
				return ix.order[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// HasSkill reports whether name appears anywhere in the curriculum.
func (ix *Index) HasSkill(name string) bool {
	return slices.Contains(ix.order, name)
}

// Material returns the learning material for a skill. The second return
// is false when the skill has no backing material; callers treat that as
// an empty exercise list.
func (ix *Index) Material(name string) (Material, bool) {
	m, ok := ix.materials[name]
	return m, ok
}

// ExerciseCount returns the number of exercises in a skill's material,
// or 0 when the material is missing.
func (ix *Index) ExerciseCount(name string) int {
	m, ok := ix.materials[name]
	if !ok {
		return 0
	}
	return len(m.Practice.Examples)
}

// FindExercise looks up an exercise by id within a skill's material.
func (ix *Index) FindExercise(skill, exerciseID string) (Exercise, bool) {
	m, ok := ix.materials[skill]
	if !ok {
		return Exercise{}, false
	}
	for _, ex := range m.Practice.Examples {
		if ex.ID == exerciseID {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Package progress holds the per-learner progress record and the
// statistics update rules applied after each evaluated submission.
package progress

import (
	"maps"
	"slices"
)

// Record is the persistent progress state for one learner identity.
// It is a plain value: engine operations take it in and hand it back,
// and the store adapter owns load/save at the request boundary.
type Record struct {
	// CompletedSkills lists skills fully finished, in completion order.
	CompletedSkills []string `json:"completed_skills"`

	// CurrentSkill is the skill currently presented to the learner.
	CurrentSkill string `json:"current_skill"`

	// CompletedExercises counts successful submissions per skill.
	// Monotonic non-decreasing; failures do not count.
	CompletedExercises map[string]int `json:"completed_exercises"`

	// AverageTime is reserved for future per-skill timing stats.
	AverageTime map[string]float64 `json:"average_time"`

	// SuccessRate is the running average per skill, in [0,100].
	SuccessRate map[string]float64 `json:"success_rate"`

	// CompletedExerciseIDs records which exercises were successfully
	// completed per skill, to avoid repeats. Grows only.
	CompletedExerciseIDs map[string][]string `json:"completed_exercise_ids"`
}

// NewRecord returns the default record a learner starts with.
func NewRecord(firstSkill string) Record {
	return Record{
		CompletedSkills:      []string{},
		CurrentSkill:         firstSkill,
		CompletedExercises:   map[string]int{},
		AverageTime:          map[string]float64{},
		SuccessRate:          map[string]float64{},
		CompletedExerciseIDs: map[string][]string{},
	}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.CompletedSkills = slices.Clone(r.CompletedSkills)
	out.CompletedExercises = maps.Clone(r.CompletedExercises)
	out.AverageTime = maps.Clone(r.AverageTime)
	out.SuccessRate = maps.Clone(r.SuccessRate)
	out.CompletedExerciseIDs = make(map[string][]string, len(r.CompletedExerciseIDs))
	for k, v := range r.CompletedExerciseIDs {
		out.CompletedExerciseIDs[k] = slices.Clone(v)
	}
	return out
}

// CompletedIDs returns the exercise ids completed for a skill.
func (r Record) CompletedIDs(skill string) []string {
	return r.CompletedExerciseIDs[skill]
}

// HasCompletedSkill reports whether a skill is in the completed set.
func (r Record) HasCompletedSkill(skill string) bool {
	return slices.Contains(r.CompletedSkills, skill)
}

// normalize repairs nil maps/slices after JSON decoding of older or
// hand-edited records so the updater can mutate them safely.
func (r *Record) normalize() {
	if r.CompletedSkills == nil {
		r.CompletedSkills = []string{}
	}
	if r.CompletedExercises == nil {
		r.CompletedExercises = map[string]int{}
	}
	if r.AverageTime == nil {
		r.AverageTime = map[string]float64{}
	}
	if r.SuccessRate == nil {
		r.SuccessRate = map[string]float64{}
	}
	if r.CompletedExerciseIDs == nil {
		r.CompletedExerciseIDs = map[string][]string{}
	}
}

// Normalize is the exported entry point for store adapters decoding
// records from persistence.
func (r *Record) Normalize() { r.normalize() }

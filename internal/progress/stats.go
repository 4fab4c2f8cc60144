package progress

import (
	"slices"

	"github.com/okrylov/praktik/internal/curriculum"
)

// Outcome reports the post-update state of the submitted skill.
type Outcome struct {
	// SkillCompleted is true when every exercise of the skill has a
	// successful completion on record. It is an id-count comparison,
	// independent of whether advancement happened on this submission.
	SkillCompleted bool

	// AdvancedTo is the skill CurrentSkill moved to, or "" when no
	// advancement occurred.
	AdvancedTo string
}

// Apply folds one evaluated submission into the record.
//
// The success-rate recurrence is deliberately asymmetric: the counter
// tracks successes only, yet a failure still dilutes the rate over a
// virtual n+1 denominator. With n the success count before this
// submission and r the old rate:
//
//	success: r' = (r*n + 100) / (n+1), counter becomes n+1
//	failure: r' = (r*n) / (n+1),       counter stays n
//
// Failed attempts never enter the completed-id set, so a failed
// exercise remains selectable.
func Apply(rec *Record, ix *curriculum.Index, skill, exerciseID string, success bool) Outcome {
	rec.normalize()

	// First submission for this skill.
	if _, ok := rec.CompletedExercises[skill]; !ok {
		rec.CompletedExercises[skill] = 0
		rec.SuccessRate[skill] = 0
		if _, ok := rec.CompletedExerciseIDs[skill]; !ok {
			rec.CompletedExerciseIDs[skill] = []string{}
		}
	}

	n := rec.CompletedExercises[skill]
	rate := rec.SuccessRate[skill]

	if success {
		rec.SuccessRate[skill] = (rate*float64(n) + 100) / float64(n+1)
		rec.CompletedExercises[skill] = n + 1
		if !slices.Contains(rec.CompletedExerciseIDs[skill], exerciseID) {
			rec.CompletedExerciseIDs[skill] = append(rec.CompletedExerciseIDs[skill], exerciseID)
		}
	} else {
		rec.SuccessRate[skill] = (rate * float64(n)) / float64(n+1)
	}

	total := ix.ExerciseCount(skill)
	done := len(rec.CompletedExerciseIDs[skill])

	out := Outcome{SkillCompleted: done >= total}

	if success && done >= total {
		if !slices.Contains(rec.CompletedSkills, skill) {
			rec.CompletedSkills = append(rec.CompletedSkills, skill)
		}
		if next, ok := ix.NextSkill(skill); ok {
			rec.CurrentSkill = next
			out.AdvancedTo = next
		}
	}

	return out
}

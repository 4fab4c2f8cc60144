// Package practice picks the next exercise for a skill.
package practice

import (
	"math/rand/v2"
	"slices"

	"github.com/okrylov/praktik/internal/curriculum"
)

// CompletedAllID is the reserved pseudo-exercise id returned once every
// exercise in a skill has been completed. It never collides with a real
// exercise id; the curriculum loader rejects catalogs that use it.
const CompletedAllID = "completed_all"

// State classifies a selection result.
type State int

const (
	// StatePicked means Exercise is a real, not-yet-completed exercise.
	StatePicked State = iota
	// StateAllCompleted means every exercise in the skill is done;
	// Exercise carries the congratulatory placeholder.
	StateAllCompleted
	// StateNoExercises means the skill has no exercises at all.
	StateNoExercises
)

// Selection is the outcome of picking an exercise.
type Selection struct {
	Exercise curriculum.Exercise
	State    State
}

// Pick chooses uniformly at random among the exercises of material whose
// id is not in completedIDs. It is a pure function of its inputs apart
// from the random choice; no fixed seed is used.
func Pick(material curriculum.Material, completedIDs []string) Selection {
	all := material.Practice.Examples

	available := make([]curriculum.Exercise, 0, len(all))
	for _, ex := range all {
		if !slices.Contains(completedIDs, ex.ID) {
			available = append(available, ex)
		}
	}

	switch {
	case len(available) > 0:
		return Selection{
			Exercise: available[rand.IntN(len(available))],
			State:    StatePicked,
		}
	case len(all) > 0:
		return Selection{
			Exercise: curriculum.Exercise{
				ID:          CompletedAllID,
				Code:        "# You have completed every exercise for this skill!",
				Description: "Congratulations! You finished all exercises for this skill. Move on to the next skill or revisit the material.",
			},
			State: StateAllCompleted,
		}
	default:
		return Selection{
			Exercise: curriculum.Exercise{
				Code: "# No exercises available for this skill",
			},
			State: StateNoExercises,
		}
	}
}

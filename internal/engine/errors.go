package engine

import (
	"errors"
	"fmt"

	"github.com/okrylov/praktik/internal/practice"
)

// ErrMissingExerciseID is returned when a submission carries no exercise
// id. It is detected before any model call; the record is untouched.
var ErrMissingExerciseID = errors.New("exercise id missing from submission")

// UnknownExerciseError is returned when a submitted id does not match any
// exercise in the current skill's material. The record is untouched, but
// a next-exercise suggestion is still computed so the caller can recover.
type UnknownExerciseError struct {
	ID         string
	Suggestion practice.Selection
}

func (e *UnknownExerciseError) Error() string {
	return fmt.Sprintf("exercise %q not found in current skill", e.ID)
}

// UnknownSkillError is returned when a skill name is not in the catalog.
type UnknownSkillError struct {
	Name string
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("unknown skill %q", e.Name)
}

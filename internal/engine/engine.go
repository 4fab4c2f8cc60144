// Package engine ties the curriculum, progress store and evaluator into
// the operations the server and CLI expose.
package engine

import (
	"context"
	"fmt"

	"github.com/okrylov/praktik/internal/curriculum"
	"github.com/okrylov/praktik/internal/evaluate"
	"github.com/okrylov/praktik/internal/practice"
	"github.com/okrylov/praktik/internal/progress"
	"github.com/okrylov/praktik/internal/store"
)

// Engine executes learner operations against a static curriculum.
type Engine struct {
	ix       *curriculum.Index
	progress store.ProgressRepo
	eval     *evaluate.Evaluator
}

// New creates an Engine. The index is read-only and shared; all mutable
// state lives in the progress repo.
func New(ix *curriculum.Index, repo store.ProgressRepo, eval *evaluate.Evaluator) *Engine {
	return &Engine{ix: ix, progress: repo, eval: eval}
}

// Index returns the curriculum index the engine serves.
func (e *Engine) Index() *curriculum.Index {
	return e.ix
}

// Snapshot describes a learner's position in the curriculum.
type Snapshot struct {
	Categories                []curriculum.Category `json:"skills_tree"`
	Record                    progress.Record       `json:"progress_record"`
	CurrentSkill              string                `json:"current_skill"`
	TotalExercisesInSkill     int                   `json:"total_exercises_in_skill"`
	CompletedExercisesInSkill int                   `json:"completed_exercises_in_skill"`
}

// Snapshot returns the learner's progress together with the skill tree
// and exercise counts for the current skill.
func (e *Engine) Snapshot(ctx context.Context, identity string) (Snapshot, error) {
	rec, err := e.progress.Get(ctx, identity, e.ix.FirstSkill())
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Categories:                e.ix.Categories(),
		Record:                    rec,
		CurrentSkill:              rec.CurrentSkill,
		TotalExercisesInSkill:     e.ix.ExerciseCount(rec.CurrentSkill),
		CompletedExercisesInSkill: len(rec.CompletedIDs(rec.CurrentSkill)),
	}, nil
}

// SelectSkill makes name the learner's current skill. Unknown names are
// rejected so records never point at a skill outside the catalog.
func (e *Engine) SelectSkill(ctx context.Context, identity, name string) (Snapshot, error) {
	if !e.ix.HasSkill(name) {
		return Snapshot{}, &UnknownSkillError{Name: name}
	}

	rec, err := e.progress.Update(ctx, identity, e.ix.FirstSkill(), func(rec *progress.Record) error {
		rec.CurrentSkill = name
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Categories:                e.ix.Categories(),
		Record:                    rec,
		CurrentSkill:              rec.CurrentSkill,
		TotalExercisesInSkill:     e.ix.ExerciseCount(name),
		CompletedExercisesInSkill: len(rec.CompletedIDs(name)),
	}, nil
}

// NextExercise picks an uncompleted exercise. With skill set to "" the
// learner's current skill is used; a named skill becomes the current one
// first, mirroring what opening a skill's practice page does.
func (e *Engine) NextExercise(ctx context.Context, identity, skill string) (practice.Selection, error) {
	if skill != "" && !e.ix.HasSkill(skill) {
		return practice.Selection{}, &UnknownSkillError{Name: skill}
	}

	rec, err := e.progress.Update(ctx, identity, e.ix.FirstSkill(), func(rec *progress.Record) error {
		if skill != "" {
			rec.CurrentSkill = skill
		}
		return nil
	})
	if err != nil {
		return practice.Selection{}, err
	}

	name := rec.CurrentSkill
	material, ok := e.ix.Material(name)
	if !ok {
		// Missing material degrades to the no-exercises sentinel.
		return practice.Pick(curriculum.Material{}, nil), nil
	}
	return practice.Pick(material, rec.CompletedIDs(name)), nil
}

// SubmitInput is one explanation submitted against the current skill.
type SubmitInput struct {
	ExerciseID  string
	Explanation string
}

// SubmitResult is the full outcome of a submission. Error paths keep the
// same shape so callers always have something well-formed to render.
type SubmitResult struct {
	Success         bool                `json:"success"`
	Feedback        string              `json:"feedback"`
	CoveredConcepts []string            `json:"covered_concepts"`
	MissingConcepts []string            `json:"missing_concepts"`
	NextExercise    *practice.Selection `json:"next_exercise"`
	NextSkill       string              `json:"next_skill"`
	SkillCompleted  bool                `json:"skill_completed"`
}

// Submit evaluates an explanation against the learner's current skill and
// folds the verdict into the progress record. The whole read-evaluate-
// write cycle runs under the identity's update lock.
func (e *Engine) Submit(ctx context.Context, identity string, in SubmitInput) (SubmitResult, error) {
	var result SubmitResult

	_, err := e.progress.Update(ctx, identity, e.ix.FirstSkill(), func(rec *progress.Record) error {
		skill := rec.CurrentSkill

		if in.ExerciseID == "" {
			return ErrMissingExerciseID
		}

		ex, ok := e.ix.FindExercise(skill, in.ExerciseID)
		if !ok {
			return &UnknownExerciseError{
				ID:         in.ExerciseID,
				Suggestion: e.pickFor(skill, rec.CompletedIDs(skill)),
			}
		}

		material, _ := e.ix.Material(skill)
		verdict, err := e.eval.Evaluate(ctx, evaluate.Input{
			Topic:             material.Topic,
			Overview:          material.Theory.Overview,
			ExerciseCode:      ex.Code,
			Explanation:       in.Explanation,
			HiddenExplanation: ex.HiddenExplanation,
			ExpectedConcepts:  ex.ExpectedConcepts,
		})
		if err != nil {
			return fmt.Errorf("evaluate submission: %w", err)
		}

		out := progress.Apply(rec, e.ix, skill, in.ExerciseID, verdict.Success)

		next := e.pickFor(skill, rec.CompletedIDs(skill))
		nextSkill := rec.CurrentSkill
		if out.AdvancedTo != "" {
			nextSkill = out.AdvancedTo
		}

		result = SubmitResult{
			Success:         verdict.Success,
			Feedback:        verdict.Feedback,
			CoveredConcepts: verdict.CoveredConcepts,
			MissingConcepts: verdict.MissingConcepts,
			NextExercise:    &next,
			NextSkill:       nextSkill,
			SkillCompleted:  out.SkillCompleted,
		}
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}
	return result, nil
}

// Reset clears the learner's record back to the curriculum's first skill.
func (e *Engine) Reset(ctx context.Context, identity string) error {
	return e.progress.Reset(ctx, identity)
}

func (e *Engine) pickFor(skill string, completedIDs []string) practice.Selection {
	material, ok := e.ix.Material(skill)
	if !ok {
		return practice.Pick(curriculum.Material{}, nil)
	}
	return practice.Pick(material, completedIDs)
}

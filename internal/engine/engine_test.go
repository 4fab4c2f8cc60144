package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okrylov/praktik/internal/curriculum"
	"github.com/okrylov/praktik/internal/evaluate"
	"github.com/okrylov/praktik/internal/llm"
	"github.com/okrylov/praktik/internal/practice"
	"github.com/okrylov/praktik/internal/store"
)

const (
	successReply = `{"result": "SUCCESS", "feedback": "Correct."}`
	failureReply = `{"result": "FAILURE", "feedback": "Not quite."}`
)

func testIndex() *curriculum.Index {
	categories := []curriculum.Category{
		{Name: "Basics", Skills: []curriculum.Skill{{Name: "X"}, {Name: "Y"}}},
	}
	materials := map[string]curriculum.Material{
		"X": {
			Topic:  "X",
			Theory: curriculum.Theory{Overview: "About X."},
			Practice: curriculum.Practice{Examples: []curriculum.Exercise{
				{ID: "a", Code: "print(1)"},
				{ID: "b", Code: "print(2)"},
			}},
		},
		"Y": {
			Topic: "Y",
			Practice: curriculum.Practice{Examples: []curriculum.Exercise{
				{ID: "y1", Code: "print(3)"},
			}},
		},
	}
	return curriculum.New(categories, materials)
}

func testEngine(t *testing.T, replies ...llm.MockResponse) *Engine {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "praktik.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider(replies...)
	eval := evaluate.New(mock, evaluate.DefaultConfig())
	return New(testIndex(), s.ProgressRepo(), eval)
}

func TestSnapshotFreshLearner(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	snap, err := e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)

	require.Equal(t, "X", snap.CurrentSkill)
	require.Equal(t, 2, snap.TotalExercisesInSkill)
	require.Equal(t, 0, snap.CompletedExercisesInSkill)
	require.Len(t, snap.Categories, 1)
}

func TestSelectSkill(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	snap, err := e.SelectSkill(ctx, "learner-1", "Y")
	require.NoError(t, err)
	require.Equal(t, "Y", snap.CurrentSkill)
	require.Equal(t, 1, snap.TotalExercisesInSkill)

	// Sticks across requests.
	snap, err = e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, "Y", snap.CurrentSkill)
}

func TestSelectSkillUnknown(t *testing.T) {
	e := testEngine(t)

	_, err := e.SelectSkill(context.Background(), "learner-1", "Quantum")
	var unknown *UnknownSkillError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Quantum", unknown.Name)

	// Record stays on the first skill.
	snap, err := e.Snapshot(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Equal(t, "X", snap.CurrentSkill)
}

func TestNextExerciseCurrentSkill(t *testing.T) {
	e := testEngine(t)

	sel, err := e.NextExercise(context.Background(), "learner-1", "")
	require.NoError(t, err)
	require.Equal(t, practice.StatePicked, sel.State)
	require.Contains(t, []string{"a", "b"}, sel.Exercise.ID)
}

func TestNextExerciseSwitchesSkill(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	sel, err := e.NextExercise(ctx, "learner-1", "Y")
	require.NoError(t, err)
	require.Equal(t, "y1", sel.Exercise.ID)

	snap, err := e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, "Y", snap.CurrentSkill)
}

func TestSubmitSuccessPath(t *testing.T) {
	e := testEngine(t,
		llm.MockResponse{Text: successReply},
		llm.MockResponse{Text: successReply},
	)
	ctx := context.Background()

	// First success on "a": 1 of 2 done.
	res, err := e.Submit(ctx, "learner-1", SubmitInput{ExerciseID: "a", Explanation: "prints one"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.False(t, res.SkillCompleted)
	require.Equal(t, "X", res.NextSkill)
	require.NotNil(t, res.NextExercise)
	require.Equal(t, "b", res.NextExercise.Exercise.ID)

	snap, err := e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, 1, snap.Record.CompletedExercises["X"])
	require.Equal(t, 100.0, snap.Record.SuccessRate["X"])
	require.Equal(t, []string{"a"}, snap.Record.CompletedExerciseIDs["X"])

	// Second success on "b": skill complete, advance to Y.
	res, err = e.Submit(ctx, "learner-1", SubmitInput{ExerciseID: "b", Explanation: "prints two"})
	require.NoError(t, err)
	require.True(t, res.SkillCompleted)
	require.Equal(t, "Y", res.NextSkill)
	require.Equal(t, practice.StateAllCompleted, res.NextExercise.State)

	snap, err = e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, "Y", snap.CurrentSkill)
	require.Equal(t, 100.0, snap.Record.SuccessRate["X"])
	require.Contains(t, snap.Record.CompletedSkills, "X")
}

func TestSubmitFailureKeepsExerciseSelectable(t *testing.T) {
	e := testEngine(t, llm.MockResponse{Text: failureReply})
	ctx := context.Background()

	res, err := e.Submit(ctx, "learner-1", SubmitInput{ExerciseID: "a", Explanation: "no idea"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.False(t, res.SkillCompleted)
	require.Equal(t, "X", res.NextSkill)

	snap, err := e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, 0, snap.Record.CompletedExercises["X"])
	require.Equal(t, 0.0, snap.Record.SuccessRate["X"])
	require.Empty(t, snap.Record.CompletedExerciseIDs["X"])
}

func TestSubmitMissingID(t *testing.T) {
	e := testEngine(t)

	_, err := e.Submit(context.Background(), "learner-1", SubmitInput{Explanation: "hello"})
	require.ErrorIs(t, err, ErrMissingExerciseID)

	snap, err := e.Snapshot(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Equal(t, 0, snap.Record.CompletedExercises["X"])
}

func TestSubmitUnknownID(t *testing.T) {
	e := testEngine(t)

	_, err := e.Submit(context.Background(), "learner-1", SubmitInput{ExerciseID: "zzz", Explanation: "hello"})
	var unknown *UnknownExerciseError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "zzz", unknown.ID)
	require.Equal(t, practice.StatePicked, unknown.Suggestion.State)

	// No model call, record unmutated.
	snap, err := e.Snapshot(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Equal(t, 0.0, snap.Record.SuccessRate["X"])
}

func TestSubmitTransportErrorPropagates(t *testing.T) {
	e := testEngine(t, llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp: refused")},
	})

	_, err := e.Submit(context.Background(), "learner-1", SubmitInput{ExerciseID: "a", Explanation: "x"})
	require.ErrorIs(t, err, evaluate.ErrModelTransport)

	snap, err := e.Snapshot(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Equal(t, 0.0, snap.Record.SuccessRate["X"])
	require.Equal(t, 0, snap.Record.CompletedExercises["X"])
}

func TestSubmitMalformedReplyStillCounts(t *testing.T) {
	e := testEngine(t, llm.MockResponse{Text: "Great job! SUCCESS"})

	res, err := e.Submit(context.Background(), "learner-1", SubmitInput{ExerciseID: "a", Explanation: "x"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Great job! SUCCESS", res.Feedback)
	require.Empty(t, res.CoveredConcepts)
	require.NotNil(t, res.CoveredConcepts)
}

func TestReset(t *testing.T) {
	e := testEngine(t, llm.MockResponse{Text: successReply})
	ctx := context.Background()

	_, err := e.Submit(ctx, "learner-1", SubmitInput{ExerciseID: "a", Explanation: "x"})
	require.NoError(t, err)
	_, err = e.SelectSkill(ctx, "learner-1", "Y")
	require.NoError(t, err)

	require.NoError(t, e.Reset(ctx, "learner-1"))

	snap, err := e.Snapshot(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, "X", snap.CurrentSkill)
	require.Empty(t, snap.Record.CompletedSkills)
	require.Equal(t, 0, snap.Record.CompletedExercises["X"])
}

package progress

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord("Variables")

	require.Equal(t, "Variables", rec.CurrentSkill)
	require.Empty(t, rec.CompletedSkills)
	require.NotNil(t, rec.CompletedExercises)
	require.NotNil(t, rec.AverageTime)
	require.NotNil(t, rec.SuccessRate)
	require.NotNil(t, rec.CompletedExerciseIDs)
}

func TestRecordJSONFieldNames(t *testing.T) {
	rec := NewRecord("X")
	rec.CompletedSkills = []string{"W"}
	rec.CompletedExercises["X"] = 2
	rec.SuccessRate["X"] = 66.5
	rec.CompletedExerciseIDs["X"] = []string{"a"}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"completed_skills", "current_skill", "completed_exercises",
		"average_time", "success_rate", "completed_exercise_ids",
	} {
		require.Contains(t, raw, key)
	}
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewRecord("X")
	rec.CompletedSkills = []string{"W"}
	rec.CompletedExerciseIDs["X"] = []string{"a"}
	rec.SuccessRate["X"] = 50

	cp := rec.Clone()
	cp.CompletedSkills[0] = "Z"
	cp.CompletedExerciseIDs["X"][0] = "zzz"
	cp.SuccessRate["X"] = 1

	require.Equal(t, []string{"W"}, rec.CompletedSkills)
	require.Equal(t, []string{"a"}, rec.CompletedExerciseIDs["X"])
	require.Equal(t, 50.0, rec.SuccessRate["X"])
}

func TestCompletedIDs(t *testing.T) {
	rec := NewRecord("X")
	rec.CompletedExerciseIDs["X"] = []string{"a", "b"}

	ids := rec.CompletedIDs("X")
	require.True(t, slices.Equal(ids, []string{"a", "b"}))
	require.Empty(t, rec.CompletedIDs("Y"))
}

func TestNormalizeRepairsNilMaps(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"current_skill":"X"}`), &rec))
	rec.Normalize()

	require.NotNil(t, rec.CompletedExercises)
	require.NotNil(t, rec.AverageTime)
	require.NotNil(t, rec.SuccessRate)
	require.NotNil(t, rec.CompletedExerciseIDs)
	require.NotNil(t, rec.CompletedSkills)
}

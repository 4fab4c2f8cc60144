package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okrylov/praktik/internal/progress"
)

func TestProgressGetDefault(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.CurrentSkill != "Variables" {
		t.Errorf("current_skill = %q, want Variables", rec.CurrentSkill)
	}
	if len(rec.CompletedSkills) != 0 {
		t.Errorf("fresh record has completed skills: %v", rec.CompletedSkills)
	}
	if rec.SuccessRate == nil {
		t.Error("fresh record has nil success_rate map")
	}
}

func TestProgressPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := progress.NewRecord("Variables")
	rec.CompletedSkills = []string{"Variables"}
	rec.CurrentSkill = "Loops"
	rec.CompletedExercises["Variables"] = 3
	rec.SuccessRate["Variables"] = 75.5
	rec.CompletedExerciseIDs["Variables"] = []string{"v1", "v2"}

	if err := repo.Put(ctx, "learner-1", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentSkill != "Loops" {
		t.Errorf("current_skill = %q, want Loops", got.CurrentSkill)
	}
	if got.SuccessRate["Variables"] != 75.5 {
		t.Errorf("success_rate = %v", got.SuccessRate)
	}
	if len(got.CompletedExerciseIDs["Variables"]) != 2 {
		t.Errorf("completed ids = %v", got.CompletedExerciseIDs)
	}
}

func TestProgressPutOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	first := progress.NewRecord("Variables")
	if err := repo.Put(ctx, "learner-1", first); err != nil {
		t.Fatalf("put: %v", err)
	}

	second := progress.NewRecord("Variables")
	second.CurrentSkill = "Loops"
	if err := repo.Put(ctx, "learner-1", second); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentSkill != "Loops" {
		t.Errorf("current_skill = %q, want Loops", got.CurrentSkill)
	}
}

func TestProgressIdentitiesIsolated(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := progress.NewRecord("Variables")
	rec.CurrentSkill = "Loops"
	if err := repo.Put(ctx, "learner-1", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	other, err := repo.Get(ctx, "learner-2", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if other.CurrentSkill != "Variables" {
		t.Errorf("learner-2 picked up learner-1's state: %q", other.CurrentSkill)
	}
}

func TestProgressReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := progress.NewRecord("Variables")
	rec.CurrentSkill = "Loops"
	if err := repo.Put(ctx, "learner-1", rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Reset(ctx, "learner-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get after reset: %v", err)
	}
	if got.CurrentSkill != "Variables" {
		t.Errorf("current_skill = %q, want fresh Variables", got.CurrentSkill)
	}

	// Resetting an identity with no record is a no-op.
	if err := repo.Reset(ctx, "never-seen"); err != nil {
		t.Errorf("reset missing identity: %v", err)
	}
}

func TestProgressUpdateAtomic(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "learner-1", "Variables", func(rec *progress.Record) error {
				rec.CompletedExercises["Variables"]++
				return nil
			})
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompletedExercises["Variables"] != workers {
		t.Errorf("counter = %d, want %d (lost updates)", got.CompletedExercises["Variables"], workers)
	}
}

func TestProgressUpdateErrorDiscardsChanges(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	_, err := repo.Update(ctx, "learner-1", "Variables", func(rec *progress.Record) error {
		rec.CompletedExercises["Variables"] = 99
		return fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("expected error from fn")
	}

	got, err := repo.Get(ctx, "learner-1", "Variables")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompletedExercises["Variables"] != 0 {
		t.Errorf("failed update leaked changes: %d", got.CompletedExercises["Variables"])
	}
}

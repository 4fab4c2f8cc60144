package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "praktik.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "my.db")
	t.Setenv("PRAKTIK_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	t.Setenv("PRAKTIK_DB", "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dataHome, "praktik", "praktik.db")
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, data := range []LLMRequestEventData{
		{Provider: "anthropic", Model: "m1", Purpose: "evaluation", InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true, RequestBody: "req1", ResponseBody: "resp1"},
		{Provider: "anthropic", Model: "m1", Purpose: "evaluation", InputTokens: 120, OutputTokens: 40, LatencyMs: 600, Success: true},
		{Provider: "openai", Model: "m2", Purpose: "other", Success: false, ErrorMessage: "rate limited"},
	} {
		if err := repo.AppendLLMRequest(ctx, data); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	// Newest first.
	if events[0].Purpose != "other" {
		t.Errorf("first event purpose = %q, want other", events[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "evaluation", Limit: 1})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Purpose != "evaluation" {
		t.Errorf("filtered = %+v, want 1 evaluation event", filtered)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m1", Purpose: "evaluation",
		Success: true, RequestBody: "the request", ResponseBody: "the response",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event, got nil")
	}
	if e.RequestBody != "the request" || e.ResponseBody != "the response" {
		t.Errorf("bodies not round-tripped: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, data := range []LLMRequestEventData{
		{Model: "m1", Purpose: "evaluation", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Model: "m1", Purpose: "evaluation", InputTokens: 200, OutputTokens: 150, LatencyMs: 300, Success: true},
		{Model: "m2", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, data); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purpose rows, want 2", len(byPurpose))
	}
	eval := byPurpose[0]
	if eval.Purpose != "evaluation" {
		t.Fatalf("first purpose = %q, want evaluation", eval.Purpose)
	}
	if eval.Calls != 2 || eval.InputTokens != 300 || eval.OutputTokens != 200 {
		t.Errorf("evaluation usage = %+v", eval)
	}
	if eval.AvgLatencyMs != 200 {
		t.Errorf("avg latency = %d, want 200", eval.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d model rows, want 2", len(byModel))
	}
	if byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("m1 usage = %+v", byModel[0])
	}
}

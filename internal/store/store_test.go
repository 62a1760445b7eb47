package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
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

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next sequence: %v", err)
		}
		if seq <= prev && i > 0 {
			t.Fatalf("sequence not increasing: %d after %d", seq, prev)
		}
		prev = seq
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      "quiz-gen",
			InputTokens:  100 + i,
			OutputTokens: 200 + i,
			LatencyMs:    int64(50 * (i + 1)),
			Success:      true,
			RequestBody:  "[user]\nGenerate questions",
			ResponseBody: `[{"question":"..."}]`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Newest first.
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d",
			events[0].Sequence, events[1].Sequence)
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event, got nil")
	}
	if e.RequestBody == "" || e.ResponseBody == "" {
		t.Error("expected request and response bodies to be captured")
	}

	missing, err := repo.GetLLMEvent(ctx, 999999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestQueryLLMEventsPurposeFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "diagnostics", Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", Success: false},
	}
	for i, a := range appends {
		if err := repo.AppendLLMRequest(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 quiz-gen events, got %d", len(events))
	}
	for _, e := range events {
		if e.Purpose != "quiz-gen" {
			t.Errorf("unexpected purpose %q", e.Purpose)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events without filter, got %d", len(all))
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 10, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 200, OutputTokens: 100, LatencyMs: 30, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 5, Success: true},
	}
	for i, a := range appends {
		if err := repo.AppendLLMRequest(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(stats))
	}

	var quizGen *LLMPurposeUsage
	for i := range stats {
		if stats[i].Purpose == "quiz-gen" {
			quizGen = &stats[i]
		}
	}
	if quizGen == nil {
		t.Fatal("missing quiz-gen usage")
	}
	if quizGen.Calls != 2 || quizGen.InputTokens != 300 || quizGen.OutputTokens != 150 {
		t.Errorf("unexpected quiz-gen usage: %+v", quizGen)
	}
	if quizGen.AvgLatencyMs != 20 {
		t.Errorf("avg latency = %d, want 20", quizGen.AvgLatencyMs)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
}

func TestSessionStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	sessions := []SessionEventData{
		{SessionID: "a", Topic: "math", Grade: 5, Score: 3, Total: 5, DurationMs: 60000},
		{SessionID: "b", Topic: "math", Grade: 6, Score: 4, Total: 5, DurationMs: 45000},
		{SessionID: "c", Topic: "language", Grade: 5, Score: 2, Total: 3, DurationMs: 30000},
	}
	for i, se := range sessions {
		if err := repo.AppendSessionEvent(ctx, se); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.SessionStats(ctx)
	if err != nil {
		t.Fatalf("session stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(stats))
	}

	for _, st := range stats {
		switch st.Topic {
		case "math":
			if st.Sessions != 2 || st.Answered != 10 || st.Correct != 7 {
				t.Errorf("unexpected math stats: %+v", st)
			}
		case "language":
			if st.Sessions != 1 || st.Answered != 3 || st.Correct != 2 {
				t.Errorf("unexpected language stats: %+v", st)
			}
		default:
			t.Errorf("unexpected topic %q", st.Topic)
		}
	}
}

func TestMissedConcepts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "a", QuestionText: "q1", Difficulty: "easy", Chosen: "x", Correct: false, TimeMs: 1000, Concepts: []string{"fractions", "comparison"}},
		{SessionID: "a", QuestionText: "q2", Difficulty: "easy", Chosen: "y", Correct: false, TimeMs: 1500, Concepts: []string{"fractions"}},
		{SessionID: "a", QuestionText: "q3", Difficulty: "medium", Chosen: "z", Correct: true, TimeMs: 900, Concepts: []string{"decimals"}},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	missed, err := repo.MissedConcepts(ctx, 5)
	if err != nil {
		t.Fatalf("missed concepts: %v", err)
	}
	if len(missed) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(missed))
	}
	if missed[0].Concept != "fractions" || missed[0].Misses != 2 {
		t.Errorf("unexpected top miss: %+v", missed[0])
	}
	if missed[1].Concept != "comparison" || missed[1].Misses != 1 {
		t.Errorf("unexpected second miss: %+v", missed[1])
	}
}

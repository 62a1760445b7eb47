package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/prepquiz/internal/difficulty"
	"github.com/abhisek/prepquiz/internal/quizgen"
)

// scriptedGenerator returns canned batches or errors per call, in order.
// Once the script runs out it fails with ErrUnreachable.
type scriptedGenerator struct {
	batches [][]quizgen.Candidate
	errs    []error
	calls   int
	inputs  []quizgen.GenerateInput
}

func (g *scriptedGenerator) Generate(_ context.Context, in quizgen.GenerateInput) ([]quizgen.Candidate, error) {
	g.inputs = append(g.inputs, in)
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	if i < len(g.batches) {
		return g.batches[i], nil
	}
	return nil, &quizgen.GenerationError{Kind: quizgen.ErrUnreachable}
}

// makeCandidates produces n valid, distinct candidates.
func makeCandidates(n int, concepts ...[]string) []quizgen.Candidate {
	out := make([]quizgen.Candidate, n)
	for i := 0; i < n; i++ {
		answer := fmt.Sprintf("answer %d", i)
		c := quizgen.Candidate{
			Text:        fmt.Sprintf("Question %d?", i),
			Choices:     []string{answer, "wrong a", "wrong b", "wrong c"},
			Answer:      answer,
			Explanation: fmt.Sprintf("Because %d.", i),
		}
		if i < len(concepts) {
			c.Concepts = concepts[i]
		}
		out[i] = c
	}
	return out
}

func newTestEngine(gen quizgen.Generator, cfg Config) *Engine {
	return NewEngine(gen, quizgen.DefaultConfig().Validators, NewRegistry(0), nil, cfg)
}

func TestStartSession_InvalidConfig(t *testing.T) {
	e := newTestEngine(&scriptedGenerator{}, DefaultConfig())
	ctx := context.Background()

	cases := []struct {
		name        string
		topic       quizgen.Topic
		grade       int
		targetCount int
	}{
		{"unknown topic", "history", 5, 3},
		{"grade too low", quizgen.TopicMath, 0, 3},
		{"grade too high", quizgen.TopicMath, 13, 3},
		{"zero target", quizgen.TopicMath, 5, 0},
		{"negative target", quizgen.TopicMath, 5, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.StartSession(ctx, tc.topic, tc.grade, tc.targetCount, "")
			var cfgErr *InvalidConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *InvalidConfigError, got %v", err)
			}
		})
	}

	if e.Registry().Len() != 0 {
		t.Errorf("expected no sessions after invalid starts, got %d", e.Registry().Len())
	}
}

func TestHappyPath(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(3)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 5, 3, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 3; i++ {
		view, err := e.CurrentQuestion(ctx, id)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if view.Index != i+1 || view.Total != 3 {
			t.Errorf("question %d: index %d/%d, want %d/3", i, view.Index, view.Total, i+1)
		}
		if len(view.Choices) != 4 {
			t.Errorf("question %d: %d choices", i, len(view.Choices))
		}

		// Answer correctly: the scripted answer is "answer <i>".
		if err := e.SubmitAnswer(ctx, id, fmt.Sprintf("answer %d", i), 1000); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if _, err := e.CurrentQuestion(ctx, id); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished after last answer, got %v", err)
	}

	report, err := e.Report(ctx, id)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Score != 3 || report.Total != 3 {
		t.Errorf("score %d/%d, want 3/3", report.Score, report.Total)
	}

	// All answers correct, so the per-answer ladder never steps down.
	prev := difficulty.Medium
	for i, d := range report.DifficultyTrace {
		if rank(d) < rank(prev) {
			t.Errorf("difficulty decreased at %d: %s -> %s", i, prev, d)
		}
		prev = d
	}
}

func rank(l difficulty.Level) int {
	switch l {
	case difficulty.Easy:
		return 0
	case difficulty.Medium:
		return 1
	default:
		return 2
	}
}

func TestGenerationExhaustion(t *testing.T) {
	failing := &scriptedGenerator{}
	for i := 0; i < 20; i++ {
		failing.errs = append(failing.errs, &quizgen.GenerationError{Kind: quizgen.ErrMalformedOutput})
	}
	e := newTestEngine(failing, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 5, 5, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Prefill made its bounded attempts and gave up.
	s, _ := e.Registry().Get(id)
	if len(s.Questions) != 0 {
		t.Fatalf("expected empty buffer, got %d questions", len(s.Questions))
	}

	if _, err := e.CurrentQuestion(ctx, id); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}

	report, err := e.Report(ctx, id)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Score != 0 || report.Total != 0 {
		t.Errorf("score %d/%d, want 0/0", report.Score, report.Total)
	}
}

func TestSubmitAnswer_OutOfSequence(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(1)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	// Unknown session.
	if err := e.SubmitAnswer(ctx, "no-such-session", "x", 100); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	id, err := e.StartSession(ctx, quizgen.TopicLanguage, 3, 1, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Answering before the question was served is a protocol violation.
	if err := e.SubmitAnswer(ctx, id, "answer 0", 100); !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence before serving, got %v", err)
	}

	if _, err := e.CurrentQuestion(ctx, id); err != nil {
		t.Fatalf("question: %v", err)
	}
	if err := e.SubmitAnswer(ctx, id, "answer 0", 100); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Double submit without an intervening question fetch.
	if err := e.SubmitAnswer(ctx, id, "answer 0", 100); !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence on double submit, got %v", err)
	}

	// State unchanged by the rejected calls.
	s, _ := e.Registry().Get(id)
	if s.CurrentIndex != 1 || s.Score != 1 || len(s.AnswerLog) != 1 {
		t.Errorf("state mutated by rejected submits: index=%d score=%d answers=%d",
			s.CurrentIndex, s.Score, len(s.AnswerLog))
	}
}

func TestLogLengthInvariant(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(3)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 7, 3, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	s, _ := e.Registry().Get(id)

	answers := []string{"answer 0", "wrong a", "answer 2"}
	for i, a := range answers {
		if _, err := e.CurrentQuestion(ctx, id); err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if err := e.SubmitAnswer(ctx, id, a, 500); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}

		s.mu.Lock()
		idx := s.CurrentIndex
		for name, length := range map[string]int{
			"answerLog":      len(s.AnswerLog),
			"correctLog":     len(s.CorrectLog),
			"difficultyLog":  len(s.DifficultyLog),
			"timeLog":        len(s.TimeLog),
			"explanationLog": len(s.ExplanationLog),
		} {
			if length != idx {
				t.Errorf("after submit %d: len(%s) = %d, want %d", i, name, length, idx)
			}
		}
		s.mu.Unlock()
	}
}

func TestTopMissedConceptsRanking(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{
		makeCandidates(3, []string{"A", "B"}, []string{"B"}, []string{"B", "C"}),
	}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 4, 3, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Miss every question.
	for i := 0; i < 3; i++ {
		if _, err := e.CurrentQuestion(ctx, id); err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if err := e.SubmitAnswer(ctx, id, "wrong a", 800); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	report, err := e.Report(ctx, id)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	want := []string{"B", "A", "C"}
	if len(report.TopMissedConcepts) != len(want) {
		t.Fatalf("got %v, want %v", report.TopMissedConcepts, want)
	}
	for i, c := range want {
		if report.TopMissedConcepts[i] != c {
			t.Fatalf("got %v, want %v", report.TopMissedConcepts, want)
		}
	}
}

func TestDedupAcrossBatches(t *testing.T) {
	dup := makeCandidates(2)
	// Second batch repeats the first question and adds a new one.
	second := []quizgen.Candidate{dup[0], makeCandidates(3)[2]}
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{dup, second}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 5, 3, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	s, _ := e.Registry().Get(id)
	if len(s.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(s.Questions))
	}
	seen := make(map[string]struct{})
	for _, q := range s.Questions {
		if _, ok := seen[q.Text]; ok {
			t.Errorf("duplicate question text %q", q.Text)
		}
		seen[q.Text] = struct{}{}
	}
}

func TestPartialFillEndsEarly(t *testing.T) {
	// Only 2 of 4 requested questions ever materialize.
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(2)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 5, 4, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := e.CurrentQuestion(ctx, id); err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if err := e.SubmitAnswer(ctx, id, fmt.Sprintf("answer %d", i), 400); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	// Buffer exhausted below target; the session ends early.
	if _, err := e.CurrentQuestion(ctx, id); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}

	report, err := e.Report(ctx, id)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Total != 2 {
		t.Errorf("total = %d, want 2 (answered, not requested)", report.Total)
	}
}

func TestReport_NotFinished(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(2)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	id, err := e.StartSession(ctx, quizgen.TopicMath, 5, 2, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.Report(ctx, id); !errors.Is(err, ErrNotFinished) {
		t.Fatalf("expected ErrNotFinished, got %v", err)
	}
}

func TestGeneratorReceivesSessionContext(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]quizgen.Candidate{makeCandidates(2)}}
	e := newTestEngine(gen, DefaultConfig())
	ctx := context.Background()

	_, err := e.StartSession(ctx, quizgen.TopicLanguage, 8, 2, "reading comprehension")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if len(gen.inputs) == 0 {
		t.Fatal("generator never called")
	}
	in := gen.inputs[0]
	if in.Topic != quizgen.TopicLanguage || in.Grade != 8 || in.Count != 2 {
		t.Errorf("unexpected input: %+v", in)
	}
	if in.SubtopicHint != "reading comprehension" {
		t.Errorf("subtopic hint = %q", in.SubtopicHint)
	}
	if in.Difficulty != string(difficulty.Medium) {
		t.Errorf("initial difficulty = %q, want medium", in.Difficulty)
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	s := &Session{ID: "old", lastAccess: time.Now().Add(-time.Minute)}
	r.Put(s)
	fresh := &Session{ID: "fresh", lastAccess: time.Now()}
	r.Put(fresh)

	r.sweep(time.Now())

	if _, err := r.Get("old"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("expected idle session to be reclaimed")
	}
	if _, err := r.Get("fresh"); err != nil {
		t.Errorf("fresh session reclaimed: %v", err)
	}
}

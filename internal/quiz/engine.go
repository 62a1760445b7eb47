package quiz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepquiz/internal/difficulty"
	"github.com/abhisek/prepquiz/internal/quizgen"
	"github.com/abhisek/prepquiz/internal/store"
)

// Config controls engine-level policy.
type Config struct {
	// BlockSize is how many questions to generate per fill. Zero
	// means one block is the whole quiz, pre-filled at start; this
	// trades start latency for no mid-quiz generation pauses.
	BlockSize int

	// MaxFillAttempts bounds generation calls per fill. After this
	// many failed or short attempts the buffer stays short and the
	// session ends early at the report stage.
	MaxFillAttempts int

	// Ceiling selects how the difficulty ladder behaves at hard.
	Ceiling difficulty.CeilingPolicy
}

// DefaultConfig returns the standard engine policy.
func DefaultConfig() Config {
	return Config{
		BlockSize:       0,
		MaxFillAttempts: 5,
		Ceiling:         difficulty.CeilingSaturate,
	}
}

// Engine owns session progression: it starts sessions, serves
// questions, scores answers, and aggregates reports. All generation
// failures are absorbed here; only configuration and protocol errors
// reach the caller.
type Engine struct {
	gen        quizgen.Generator
	validators []quizgen.Validator
	registry   *Registry
	events     store.EventRepo // optional, nil disables event logging
	cfg        Config
}

// NewEngine creates an Engine. events may be nil.
func NewEngine(gen quizgen.Generator, validators []quizgen.Validator, registry *Registry, events store.EventRepo, cfg Config) *Engine {
	if cfg.MaxFillAttempts <= 0 {
		cfg.MaxFillAttempts = DefaultConfig().MaxFillAttempts
	}
	return &Engine{
		gen:        gen,
		validators: validators,
		registry:   registry,
		events:     events,
		cfg:        cfg,
	}
}

// Registry returns the session registry backing this engine.
func (e *Engine) Registry() *Registry { return e.registry }

// StartSession validates the configuration, pre-fills the question
// buffer, and registers the new session. Returns the opaque session
// identity.
func (e *Engine) StartSession(ctx context.Context, topic quizgen.Topic, grade, targetCount int, subtopicHint string) (string, error) {
	if !topic.Valid() {
		return "", &InvalidConfigError{Field: "topic", Message: fmt.Sprintf("unknown topic %q", topic)}
	}
	if grade < 1 || grade > 12 {
		return "", &InvalidConfigError{Field: "grade", Message: fmt.Sprintf("must be between 1 and 12, got %d", grade)}
	}
	if targetCount < 1 {
		return "", &InvalidConfigError{Field: "target_count", Message: fmt.Sprintf("must be at least 1, got %d", targetCount)}
	}

	now := time.Now()
	s := &Session{
		ID:           uuid.New().String(),
		Topic:        topic,
		Grade:        grade,
		SubtopicHint: subtopicHint,
		TargetCount:  targetCount,
		Difficulty:   difficulty.Medium,
		state:        StateActive,
		seen:         make(map[string]struct{}),
		startedAt:    now,
		lastAccess:   now,
	}

	// Pre-fill before the session becomes reachable.
	e.fill(ctx, s, e.blockSize(s))

	e.registry.Put(s)
	return s.ID, nil
}

// CurrentQuestion returns the question at the session's index,
// refilling the buffer if it has run dry. Returns ErrFinished when
// the target is reached or the buffer cannot be grown further.
func (e *Engine) CurrentQuestion(ctx context.Context, id string) (*QuestionView, error) {
	s, err := e.registry.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.finishedLocked() {
		return nil, ErrFinished
	}

	if s.CurrentIndex >= len(s.Questions) {
		e.fill(ctx, s, e.blockSize(s))
	}
	if s.CurrentIndex >= len(s.Questions) {
		// Generation is exhausted; terminate early.
		e.completeLocked(ctx, s)
		return nil, ErrFinished
	}

	s.served = true
	return newQuestionView(s.Questions[s.CurrentIndex], s.CurrentIndex, s.TargetCount), nil
}

// SubmitAnswer records the answer for the currently served question.
// Returns ErrOutOfSequence if no question is outstanding: the session
// finished, the question was never served, or this is a double
// submit. State is unchanged on error.
func (e *Engine) SubmitAnswer(ctx context.Context, id, choice string, elapsedMs int) error {
	s, err := e.registry.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state == StateComplete || !s.served || s.CurrentIndex >= len(s.Questions) {
		return ErrOutOfSequence
	}

	q := s.Questions[s.CurrentIndex]
	correct := choice == q.Answer

	s.TimeLog = append(s.TimeLog, elapsedMs)
	s.AnswerLog = append(s.AnswerLog, choice)
	s.CorrectLog = append(s.CorrectLog, correct)
	s.ExplanationLog = append(s.ExplanationLog, q.Explanation)
	if correct {
		s.Score++
	}

	s.Difficulty = difficulty.Next(s.Difficulty, correct, e.cfg.Ceiling)
	s.DifficultyLog = append(s.DifficultyLog, s.Difficulty)

	s.CurrentIndex++
	s.served = false

	if e.events != nil {
		if err := e.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:    s.ID,
			QuestionText: q.Text,
			Difficulty:   string(s.DifficultyLog[s.CurrentIndex-1]),
			Chosen:       choice,
			Correct:      correct,
			TimeMs:       elapsedMs,
			Concepts:     q.Concepts,
		}); err != nil {
			log.Printf("answer event append failed: %v", err)
		}
	}

	if s.CurrentIndex >= s.TargetCount {
		e.completeLocked(ctx, s)
	}
	return nil
}

// Report finalizes and summarizes the session. Valid once the target
// is reached or the session terminated early; otherwise returns
// ErrNotFinished.
func (e *Engine) Report(ctx context.Context, id string) (*Report, error) {
	s, err := e.registry.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.finishedLocked() {
		return nil, ErrNotFinished
	}
	if s.state != StateComplete {
		e.completeLocked(ctx, s)
	}
	return summarize(s), nil
}

// completeLocked transitions the session to Complete and records the
// session-end event. Caller holds s.mu. Idempotent.
func (e *Engine) completeLocked(ctx context.Context, s *Session) {
	if s.state == StateComplete {
		return
	}
	s.state = StateComplete

	if e.events != nil {
		if err := e.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.ID,
			Topic:      string(s.Topic),
			Grade:      s.Grade,
			Score:      s.Score,
			Total:      s.CurrentIndex,
			DurationMs: int(time.Since(s.startedAt).Milliseconds()),
		}); err != nil {
			log.Printf("session event append failed: %v", err)
		}
	}
}

// blockSize resolves the fill size for a session: the configured
// block, or the whole remaining quiz when unset. Caller holds s.mu
// (or s is not yet shared).
func (e *Engine) blockSize(s *Session) int {
	if e.cfg.BlockSize > 0 {
		return e.cfg.BlockSize
	}
	return s.TargetCount - len(s.Questions)
}

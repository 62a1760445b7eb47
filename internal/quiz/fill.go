package quiz

import (
	"context"
	"log"

	"github.com/abhisek/prepquiz/internal/difficulty"
	"github.com/abhisek/prepquiz/internal/quizgen"
)

// fill grows the session's question buffer by up to desired questions,
// never past TargetCount. Generation failures and rejected candidates
// are absorbed: the buffer may stay short, and the engine ends the
// session early when it cannot be grown. Advances the difficulty
// ladder one step per accepted question so consecutive generation
// requests climb toward harder material. Caller holds s.mu (or s is
// not yet shared).
func (e *Engine) fill(ctx context.Context, s *Session, desired int) {
	remaining := s.TargetCount - len(s.Questions)
	if desired < remaining {
		remaining = desired
	}
	if remaining <= 0 {
		return
	}

	for attempt := 0; attempt < e.cfg.MaxFillAttempts && remaining > 0; attempt++ {
		candidates, err := e.gen.Generate(ctx, quizgen.GenerateInput{
			Topic:          s.Topic,
			Grade:          s.Grade,
			Difficulty:     string(s.Difficulty),
			Count:          remaining,
			SubtopicHint:   s.SubtopicHint,
			PriorQuestions: priorTexts(s),
		})
		if err != nil {
			log.Printf("session %s: generation attempt %d failed: %v", s.ID, attempt+1, err)
			continue
		}

		for _, c := range candidates {
			if remaining == 0 {
				break
			}
			q, verr := quizgen.Accept(c, s.seen, e.validators)
			if verr != nil {
				continue
			}
			s.Questions = append(s.Questions, q)
			s.seen[q.Text] = struct{}{}
			s.Difficulty = difficulty.Next(s.Difficulty, true, e.cfg.Ceiling)
			remaining--
		}
	}
}

// priorTexts collects the buffered question texts for prompt dedup.
func priorTexts(s *Session) []string {
	texts := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		texts[i] = q.Text
	}
	return texts
}

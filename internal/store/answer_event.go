package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/prepquiz/ent"
	"github.com/abhisek/prepquiz/ent/answerevent"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuestionText(data.QuestionText).
		SetDifficulty(data.Difficulty).
		SetChosen(data.Chosen).
		SetCorrect(data.Correct).
		SetTimeMs(data.TimeMs)

	if len(data.Concepts) > 0 {
		builder = builder.SetConcepts(data.Concepts)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) MissedConcepts(ctx context.Context, limit int) ([]ConceptMisses, error) {
	events, err := r.client.AnswerEvent.Query().
		Where(answerevent.Correct(false)).
		Order(ent.Asc(answerevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query missed answers: %w", err)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, e := range events {
		for _, concept := range e.Concepts {
			if _, ok := counts[concept]; !ok {
				firstSeen[concept] = order
				order++
			}
			counts[concept]++
		}
	}

	out := make([]ConceptMisses, 0, len(counts))
	for concept, misses := range counts {
		out = append(out, ConceptMisses{Concept: concept, Misses: misses})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Misses != out[j].Misses {
			return out[i].Misses > out[j].Misses
		}
		return firstSeen[out[i].Concept] < firstSeen[out[j].Concept]
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

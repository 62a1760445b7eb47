package store

import (
	"context"
	"fmt"

	"github.com/abhisek/prepquiz/ent"
	"github.com/abhisek/prepquiz/ent/sessionevent"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetTopic(data.Topic).
		SetGrade(data.Grade).
		SetScore(data.Score).
		SetTotal(data.Total).
		SetDurationMs(data.DurationMs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionStats(ctx context.Context) ([]TopicStats, error) {
	events, err := r.client.SessionEvent.Query().
		Order(ent.Asc(sessionevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	byTopic := make(map[string]*TopicStats)
	var order []string

	for _, e := range events {
		st, ok := byTopic[e.Topic]
		if !ok {
			st = &TopicStats{Topic: e.Topic}
			byTopic[e.Topic] = st
			order = append(order, e.Topic)
		}
		st.Sessions++
		st.Answered += e.Total
		st.Correct += e.Score
	}

	out := make([]TopicStats, 0, len(order))
	for _, topic := range order {
		out = append(out, *byTopic[topic])
	}
	return out, nil
}

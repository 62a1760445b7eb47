package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records a completed quiz session's outcome.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("topic").
			NotEmpty().
			Comment("language or math"),
		field.Int("grade").
			Comment("School grade level 1-12"),
		field.Int("score").
			Default(0).
			Comment("Correct answers"),
		field.Int("total").
			Default(0).
			Comment("Questions actually answered"),
		field.Int("duration_ms").
			Default(0).
			Comment("Session wall-clock duration in milliseconds"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("topic"),
	}
}

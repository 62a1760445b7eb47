package store

import (
	"context"
	"time"

	"github.com/abhisek/prepquiz/ent"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = all)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AnswerEventData captures one answered question within a session.
type AnswerEventData struct {
	SessionID    string
	QuestionText string
	Difficulty   string
	Chosen       string
	Correct      bool
	TimeMs       int
	Concepts     []string
}

// SessionEventData captures a completed session's outcome.
type SessionEventData struct {
	SessionID  string
	Topic      string
	Grade      int
	Score      int
	Total      int
	DurationMs int
}

// LLMPurposeUsage aggregates LLM usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// TopicStats aggregates completed sessions for one topic.
type TopicStats struct {
	Topic    string
	Sessions int
	Answered int
	Correct  int
}

// ConceptMisses counts incorrect answers tagged with one concept.
type ConceptMisses struct {
	Concept string
	Misses  int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnswerEvent records a single answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a completed session's outcome.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*ent.LLMRequestEvent, error)

	// GetLLMEvent returns one LLM request event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*ent.LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// SessionStats aggregates completed sessions per topic.
	SessionStats(ctx context.Context) ([]TopicStats, error)

	// MissedConcepts tallies concept tags across incorrect answers,
	// ranked by descending miss count, at most limit entries.
	MissedConcepts(ctx context.Context, limit int) ([]ConceptMisses, error)
}

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

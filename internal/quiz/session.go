package quiz

import (
	"sync"
	"time"

	"github.com/abhisek/prepquiz/internal/difficulty"
	"github.com/abhisek/prepquiz/internal/quizgen"
)

// State is the lifecycle phase of a session. There is no explicit
// uninitialized state: a session that does not exist in the registry
// is uninitialized.
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

// Session is one quiz attempt from start to report. All fields are
// guarded by mu; only the Engine mutates them.
type Session struct {
	mu sync.Mutex

	// ID is the opaque identity the boundary addresses this session by.
	ID string

	Topic        quizgen.Topic
	Grade        int
	SubtopicHint string

	// TargetCount is the number of questions requested at start.
	TargetCount int

	// CurrentIndex points at the next unanswered question.
	// Always 0 <= CurrentIndex <= TargetCount and
	// CurrentIndex <= len(Questions).
	CurrentIndex int

	// Score counts correct answers so far. Never exceeds CurrentIndex.
	Score int

	// Difficulty is the current adaptive level. Starts at medium and
	// moves only through the difficulty transition table.
	Difficulty difficulty.Level

	// Questions is the lazily grown lookahead buffer. No two entries
	// share Text. Length never exceeds TargetCount.
	Questions []*quizgen.Question

	// Per-answer logs. Each has length exactly CurrentIndex after any
	// answer is recorded.
	DifficultyLog  []difficulty.Level
	TimeLog        []int
	AnswerLog      []string
	CorrectLog     []bool
	ExplanationLog []string

	state State

	// served is true when the question at CurrentIndex has been
	// handed to the caller and not yet answered. Submitting an answer
	// while served is false is an out-of-sequence call.
	served bool

	// seen holds the Text of every buffered question, for dedup.
	seen map[string]struct{}

	// startedAt and lastAccess drive idle expiry in the registry.
	startedAt  time.Time
	lastAccess time.Time
}

// State returns the session's lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// touch records activity for idle-expiry purposes. Caller holds mu.
func (s *Session) touch() {
	s.lastAccess = time.Now()
}

// finishedLocked reports whether no further question can be served:
// the session completed early or the target was reached. Caller
// holds mu.
func (s *Session) finishedLocked() bool {
	return s.state == StateComplete || s.CurrentIndex >= s.TargetCount
}

package quizgen

// Topic is the subject area a quiz draws questions from.
type Topic string

const (
	TopicLanguage Topic = "language"
	TopicMath     Topic = "math"
)

// Valid reports whether t is a recognized topic.
func (t Topic) Valid() bool {
	return t == TopicLanguage || t == TopicMath
}

// Question represents a validated multiple-choice question ready to
// serve. Immutable once accepted into a session buffer.
type Question struct {
	// Text is the question prompt displayed to the student.
	// Unique within a session; used as the dedup key.
	Text string

	// Choices contains exactly 4 distinct options, one of which
	// matches Answer.
	Choices []string

	// Answer is the text of the correct option. Always a member of
	// Choices.
	Answer string

	// Concepts tags the skills this question exercises, e.g.
	// ["fractions", "comparison"]. May be empty.
	Concepts []string

	// Explanation is a brief worked solution shown after the student
	// answers. May be empty.
	Explanation string
}

// Candidate is a raw, unvalidated question parsed from the generation
// service's output. Any field may be missing or malformed; the
// validator chain decides whether it becomes a Question.
type Candidate struct {
	Text        string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Concepts    []string `json:"concepts"`
	Explanation string   `json:"explanation"`
}

// GenerateInput holds all context needed to generate a batch of
// question candidates.
type GenerateInput struct {
	// Topic is the subject area for the questions.
	Topic Topic

	// Grade is the school grade level (1-12).
	Grade int

	// Difficulty is the requested difficulty label ("easy", "medium",
	// "hard").
	Difficulty string

	// Count is the number of candidates to request. Must be >= 1.
	Count int

	// SubtopicHint optionally narrows the topic, e.g. "fractions"
	// or "reading comprehension". Empty means no constraint.
	SubtopicHint string

	// PriorQuestions contains the Text of questions already in this
	// session's buffer. Used for deduplication in the prompt.
	PriorQuestions []string
}

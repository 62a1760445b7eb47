package quizgen

// Config controls the behavior of the Client and the validator chain.
type Config struct {
	// Validators is the ordered list of validators run on every
	// candidate. They execute in order; the first failure rejects
	// the candidate.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions is the maximum number of prior questions
	// to include in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DedupValidator{},
		},
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxPriorQuestions: 20,
	}
}

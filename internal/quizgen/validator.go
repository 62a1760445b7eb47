package quizgen

import "fmt"

// Validator checks a raw candidate against the texts already accepted
// into the session. Implementations should be stateless and safe for
// concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "dedup".
	Name() string

	// Validate checks the candidate and returns nil if it passes.
	// Returns a ValidationError if the candidate fails the check.
	// seen contains the Text of every question already accepted in
	// the session, including earlier candidates from the same batch.
	Validate(c Candidate, seen map[string]struct{}) *ValidationError
}

// ValidationError describes why a candidate was rejected. Rejections
// never surface to the caller; the block generator simply skips the
// candidate and keeps filling.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Accept runs the candidate through the validator chain in order and,
// on success, returns the immutable Question it becomes. The caller
// must add the returned question's Text to seen before processing the
// next candidate in the same batch.
func Accept(c Candidate, seen map[string]struct{}, validators []Validator) (*Question, *ValidationError) {
	for _, v := range validators {
		if verr := v.Validate(c, seen); verr != nil {
			return nil, verr
		}
	}

	q := &Question{
		Text:        c.Text,
		Choices:     append([]string(nil), c.Choices...),
		Answer:      c.Answer,
		Concepts:    append([]string(nil), c.Concepts...),
		Explanation: c.Explanation,
	}
	return q, nil
}

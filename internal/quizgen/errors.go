package quizgen

import "fmt"

// GenerationErrorKind classifies why a generation call failed.
type GenerationErrorKind string

const (
	// ErrUnreachable means the generation service could not be
	// reached or returned a transport-level failure.
	ErrUnreachable GenerationErrorKind = "unreachable"

	// ErrMalformedOutput means the service responded but its output
	// could not be parsed into a candidate batch.
	ErrMalformedOutput GenerationErrorKind = "malformed_output"

	// ErrTimeout means the call exceeded its deadline.
	ErrTimeout GenerationErrorKind = "timeout"
)

// GenerationError is returned by Client.Generate when a batch cannot
// be produced. The block generator treats every kind as a single
// failed attempt; retry policy lives there, not here.
type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

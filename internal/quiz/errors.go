package quiz

import (
	"errors"
	"fmt"
)

// InvalidConfigError is returned by StartSession when the requested
// parameters are out of range. No session is created.
type InvalidConfigError struct {
	Field   string
	Message string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var (
	// ErrOutOfSequence is returned when an answer is submitted with
	// no current question outstanding: before the question was
	// served, after the session finished, or as a double submit.
	// Session state is left unchanged.
	ErrOutOfSequence = errors.New("answer submitted out of sequence")

	// ErrFinished signals that the session has no more questions,
	// either because the target was reached or because generation
	// could not grow the buffer further.
	ErrFinished = errors.New("session finished")

	// ErrNotFinished is returned when a report is requested while
	// questions remain.
	ErrNotFinished = errors.New("session still in progress")

	// ErrSessionNotFound is returned for unknown or expired session
	// identities.
	ErrSessionNotFound = errors.New("session not found")
)

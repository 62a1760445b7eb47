package quizgen

import "fmt"

// StructuralValidator checks that a candidate has a non-empty prompt,
// exactly 4 distinct choices, and an answer that is one of them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Candidate, _ map[string]struct{}) *ValidationError {
	if c.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if len(c.Choices) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected 4 choices, got %d", len(c.Choices)),
		}
	}
	distinct := make(map[string]struct{}, len(c.Choices))
	for _, ch := range c.Choices {
		if _, dup := distinct[ch]; dup {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate choice %q", ch),
			}
		}
		distinct[ch] = struct{}{}
	}
	if _, ok := distinct[c.Answer]; !ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer is not one of the choices",
		}
	}
	return nil
}

package quizgen

// DedupValidator rejects candidates whose text already appears in the
// session, including earlier candidates from the same batch.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(c Candidate, seen map[string]struct{}) *ValidationError {
	if _, ok := seen[c.Text]; ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text already asked in this session",
		}
	}
	return nil
}

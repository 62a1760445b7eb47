package quizgen

import "testing"

func TestDedup_NewText(t *testing.T) {
	v := &DedupValidator{}
	seen := map[string]struct{}{"What is 2 + 2?": {}}
	if err := v.Validate(validCandidate(), seen); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDedup_SeenText(t *testing.T) {
	v := &DedupValidator{}
	c := validCandidate()
	seen := map[string]struct{}{c.Text: {}}
	err := v.Validate(c, seen)
	if err == nil {
		t.Fatal("expected error for repeated text")
	}
	if err.Validator != "dedup" {
		t.Errorf("expected validator %q, got %q", "dedup", err.Validator)
	}
}

func TestAccept_SameBatchDuplicates(t *testing.T) {
	validators := DefaultConfig().Validators
	seen := make(map[string]struct{})

	first := validCandidate()
	q, verr := Accept(first, seen, validators)
	if verr != nil {
		t.Fatalf("expected first candidate accepted, got %v", verr)
	}
	seen[q.Text] = struct{}{}

	// The identical candidate appearing later in the same batch must
	// now be rejected.
	if _, verr := Accept(first, seen, validators); verr == nil {
		t.Fatal("expected same-batch duplicate to be rejected")
	}
}

func TestAccept_CopiesSlices(t *testing.T) {
	c := validCandidate()
	q, verr := Accept(c, map[string]struct{}{}, DefaultConfig().Validators)
	if verr != nil {
		t.Fatalf("unexpected rejection: %v", verr)
	}

	c.Choices[0] = "mutated"
	if q.Choices[0] == "mutated" {
		t.Error("accepted question shares choice storage with the candidate")
	}
}

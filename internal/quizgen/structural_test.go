package quizgen

import "testing"

func validCandidate() Candidate {
	return Candidate{
		Text:        "Which fraction is larger: 3/4 or 2/3?",
		Choices:     []string{"3/4", "2/3", "They are equal", "Cannot tell"},
		Answer:      "3/4",
		Concepts:    []string{"fractions", "comparison"},
		Explanation: "3/4 = 9/12 and 2/3 = 8/12, so 3/4 is larger.",
	}
}

func TestStructural_ValidCandidate(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validCandidate(), nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_EmptyText(t *testing.T) {
	v := &StructuralValidator{}
	c := validCandidate()
	c.Text = ""
	err := v.Validate(c, nil)
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if err.Validator != "structural" {
		t.Errorf("expected validator %q, got %q", "structural", err.Validator)
	}
}

func TestStructural_WrongChoiceCount(t *testing.T) {
	v := &StructuralValidator{}

	for _, n := range []int{0, 1, 3, 5} {
		c := validCandidate()
		c.Choices = c.Choices[:0]
		for i := 0; i < n; i++ {
			c.Choices = append(c.Choices, string(rune('a'+i)))
		}
		c.Answer = "a"
		if err := v.Validate(c, nil); err == nil {
			t.Errorf("expected error for %d choices", n)
		}
	}
}

func TestStructural_DuplicateChoices(t *testing.T) {
	v := &StructuralValidator{}
	c := validCandidate()
	c.Choices = []string{"3/4", "2/3", "3/4", "Cannot tell"}
	if err := v.Validate(c, nil); err == nil {
		t.Fatal("expected error for duplicate choices")
	}
}

func TestStructural_AnswerNotInChoices(t *testing.T) {
	v := &StructuralValidator{}
	c := validCandidate()
	c.Answer = "5/6"
	if err := v.Validate(c, nil); err == nil {
		t.Fatal("expected error for answer outside choices")
	}
}

package quizgen

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackGenerator_ServesBankQuestions(t *testing.T) {
	g := NewFallbackGenerator()

	got, err := g.Generate(context.Background(), GenerateInput{
		Topic: TopicMath,
		Grade: 5,
		Count: 3,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	for i, c := range got {
		if _, verr := Accept(c, map[string]struct{}{}, DefaultConfig().Validators); verr != nil {
			t.Errorf("candidate %d failed validation: %v", i, verr)
		}
	}
}

func TestFallbackGenerator_SkipsPriorQuestions(t *testing.T) {
	g := NewFallbackGenerator()

	first, err := g.Generate(context.Background(), GenerateInput{Topic: TopicLanguage, Count: 2})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	prior := make([]string, 0, len(first))
	seen := make(map[string]struct{})
	for _, c := range first {
		prior = append(prior, c.Text)
		seen[c.Text] = struct{}{}
	}

	second, err := g.Generate(context.Background(), GenerateInput{
		Topic:          TopicLanguage,
		Count:          2,
		PriorQuestions: prior,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, c := range second {
		if _, dup := seen[c.Text]; dup {
			t.Errorf("question %q repeated despite being prior", c.Text)
		}
	}
}

func TestFallbackGenerator_ExhaustedBankReturnsShort(t *testing.T) {
	g := NewFallbackGenerator()

	got, err := g.Generate(context.Background(), GenerateInput{Topic: TopicMath, Count: 50})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) == 0 || len(got) >= 50 {
		t.Fatalf("got %d candidates, want the full bank (short of 50)", len(got))
	}
}

func TestFallbackGenerator_CancelledContext(t *testing.T) {
	g := NewFallbackGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, GenerateInput{Topic: TopicMath, Count: 1})
	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != ErrTimeout {
		t.Fatalf("got %v, want GenerationError with kind timeout", err)
	}
}

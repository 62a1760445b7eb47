package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/prepquiz/internal/llm"
)

const sampleBatch = `[
	{"question": "What is 6 * 7?", "choices": ["42", "36", "48", "40"], "answer": "42", "concepts": ["multiplication"], "explanation": "6 * 7 = 42"},
	{"question": "What is 9 - 4?", "choices": ["5", "4", "6", "3"], "answer": "5", "concepts": ["subtraction"], "explanation": "9 - 4 = 5"}
]`

func testInput(count int) GenerateInput {
	return GenerateInput{
		Topic:      TopicMath,
		Grade:      5,
		Difficulty: "medium",
		Count:      count,
	}
}

func TestClient_ParsesBatch(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(sampleBatch)},
	)
	client := NewClient(mock, DefaultConfig())

	candidates, err := client.Generate(context.Background(), testInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Text != "What is 6 * 7?" {
		t.Errorf("unexpected first question: %q", candidates[0].Text)
	}
	if candidates[1].Answer != "5" {
		t.Errorf("unexpected second answer: %q", candidates[1].Answer)
	}
}

func TestClient_FencedBatch(t *testing.T) {
	fenced := "```json\n" + sampleBatch + "\n```"
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(fenced)},
	)
	client := NewClient(mock, DefaultConfig())

	candidates, err := client.Generate(context.Background(), testInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
}

func TestClient_CountTooLow(t *testing.T) {
	client := NewClient(llm.NewMockProvider(), DefaultConfig())
	if _, err := client.Generate(context.Background(), testInput(0)); err == nil {
		t.Fatal("expected error for count < 1")
	}
}

func TestClient_MalformedOutput(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`here are your questions!`)},
	)
	cfg := DefaultConfig()
	client := NewClient(mock, cfg)

	_, err := client.Generate(context.Background(), testInput(2))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Kind != ErrMalformedOutput {
		t.Errorf("expected kind %q, got %q", ErrMalformedOutput, genErr.Kind)
	}
}

func TestClient_ProviderDown(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}},
	)
	client := NewClient(mock, DefaultConfig())

	_, err := client.Generate(context.Background(), testInput(1))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Kind != ErrUnreachable {
		t.Errorf("expected kind %q, got %q", ErrUnreachable, genErr.Kind)
	}
}

func TestClient_Timeout(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: context.DeadlineExceeded},
	)
	client := NewClient(mock, DefaultConfig())

	_, err := client.Generate(context.Background(), testInput(1))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Kind != ErrTimeout {
		t.Errorf("expected kind %q, got %q", ErrTimeout, genErr.Kind)
	}
}

func TestClient_InvalidResponseIsMalformed(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("schema violation")}},
	)
	client := NewClient(mock, DefaultConfig())

	_, err := client.Generate(context.Background(), testInput(1))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Kind != ErrMalformedOutput {
		t.Errorf("expected kind %q, got %q", ErrMalformedOutput, genErr.Kind)
	}
}

func TestBuildUserMessage_IncludesContext(t *testing.T) {
	input := GenerateInput{
		Topic:          TopicLanguage,
		Grade:          8,
		Difficulty:     "hard",
		Count:          3,
		SubtopicHint:   "reading comprehension",
		PriorQuestions: []string{"What is a noun?", "What is a verb?"},
	}
	msg := buildUserMessage(input, DefaultConfig())

	for _, want := range []string{
		"Topic: language",
		"Grade: 8",
		"Difficulty: hard",
		"Questions to generate: 3",
		"Focus area: reading comprehension",
		"1. What is a noun?",
		"2. What is a verb?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildDedup_Limit(t *testing.T) {
	prior := []string{"q1", "q2", "q3", "q4"}
	out := buildDedup(prior, 2)
	if strings.Contains(out, "q1") || strings.Contains(out, "q2") {
		t.Errorf("expected only the most recent 2 questions, got:\n%s", out)
	}
	if !strings.Contains(out, "q3") || !strings.Contains(out, "q4") {
		t.Errorf("expected q3 and q4, got:\n%s", out)
	}
}

func TestBuildDedup_Empty(t *testing.T) {
	if out := buildDedup(nil, 5); out != "None" {
		t.Errorf("expected %q, got %q", "None", out)
	}
}

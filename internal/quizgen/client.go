package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/prepquiz/internal/llm"
)

// Generator produces question candidate batches using an LLM provider.
type Generator interface {
	// Generate requests up to input.Count raw candidates for the
	// given context. Candidates are best-effort parses and may be
	// structurally invalid; run them through Accept before use.
	// Failures are reported as *GenerationError. No retries happen
	// here; retry policy belongs to the block generator.
	Generate(ctx context.Context, input GenerateInput) ([]Candidate, error)
}

// Client implements Generator using the LLM provider.
type Client struct {
	provider llm.Provider
	config   Config
}

// NewClient creates a Client with the given provider and config.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// Validators returns the configured validator chain, for callers that
// run Accept themselves.
func (c *Client) Validators() []Validator {
	return c.config.Validators
}

// Generate requests a batch of question candidates from the provider.
func (c *Client) Generate(ctx context.Context, input GenerateInput) ([]Candidate, error) {
	if input.Count < 1 {
		return nil, fmt.Errorf("count must be >= 1, got %d", input.Count)
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, c.config)},
		},
		Schema:      QuizBlockSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, classifyError(err)
	}

	var candidates []Candidate
	if err := json.Unmarshal(resp.Content, &candidates); err != nil {
		return nil, &GenerationError{Kind: ErrMalformedOutput, Err: err}
	}
	return candidates, nil
}

// classifyError maps provider failures onto the generation error
// taxonomy the block generator retries against.
func classifyError(err error) *GenerationError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationError{Kind: ErrTimeout, Err: err}
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return &GenerationError{Kind: ErrMalformedOutput, Err: err}
	}
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return &GenerationError{Kind: ErrMalformedOutput, Err: err}
	}

	return &GenerationError{Kind: ErrUnreachable, Err: err}
}

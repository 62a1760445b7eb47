package quizgen

import "github.com/abhisek/prepquiz/internal/llm"

// QuizBlockSchema defines the JSON schema for a batch of question
// candidates. Deliberately lenient: no required fields, so a partially
// malformed candidate still parses and reaches the validator chain
// instead of failing the whole batch.
var QuizBlockSchema = &llm.Schema{
	Name:        "quiz-block",
	Description: "A batch of multiple-choice practice questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question prompt shown to the student, in plain ASCII text",
				},
				"choices": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Exactly 4 answer options, one of which is correct",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "The text of the correct option, matching one entry in choices exactly",
				},
				"concepts": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
					},
					"description": "Short tags for the skills this question exercises",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "A brief worked solution shown after the student answers",
				},
			},
		},
	},
}

package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a tutor creating multiple-choice practice questions for school students in grades 1-12.

Rules:
- Generate exactly the requested number of questions for the given topic, grade, and difficulty.
- Use plain ASCII text. No LaTeX, no Unicode symbols. Use / for fractions and standard operators.
- Each question must be clear, self-contained, and age-appropriate for the grade.
- Provide exactly 4 options per question where exactly one is correct. Distractors should reflect common mistakes, not random values.
- The answer field must match the text of the correct option exactly.
- Tag each question with one or more short concept labels describing the skills it tests.
- Include a brief step-by-step explanation suitable for the grade level.
- Do not repeat any question from the "already asked" list, and do not repeat a question within the batch.
- Respond with a JSON array of question objects and nothing else.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Grade: %d\n", input.Grade)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Questions to generate: %d\n", input.Count)
	if input.SubtopicHint != "" {
		fmt.Fprintf(&b, "Focus area: %s\n", input.SubtopicHint)
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the
// max limit. Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

package quizgen

import "context"

// FallbackGenerator serves questions from a small built-in bank. It is
// the no-API-key path: serve still produces a working quiz, just not an
// adaptive or varied one.
type FallbackGenerator struct{}

// NewFallbackGenerator returns a generator backed by the built-in bank.
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Generate returns up to input.Count bank questions for the topic,
// skipping any already in input.PriorQuestions. The bank is finite, so
// long quizzes end early once it is exhausted.
func (g *FallbackGenerator) Generate(ctx context.Context, input GenerateInput) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Kind: ErrTimeout, Err: err}
	}

	bank := fallbackBank[input.Topic]
	prior := make(map[string]struct{}, len(input.PriorQuestions))
	for _, t := range input.PriorQuestions {
		prior[t] = struct{}{}
	}

	var out []Candidate
	for _, c := range bank {
		if len(out) >= input.Count {
			break
		}
		if _, seen := prior[c.Text]; seen {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

var fallbackBank = map[Topic][]Candidate{
	TopicMath: {
		{
			Text:        "What is 7 x 8?",
			Choices:     []string{"54", "56", "63", "64"},
			Answer:      "56",
			Concepts:    []string{"multiplication"},
			Explanation: "7 times 8 equals 56.",
		},
		{
			Text:        "Which fraction is equivalent to 1/2?",
			Choices:     []string{"2/3", "3/6", "2/5", "3/4"},
			Answer:      "3/6",
			Concepts:    []string{"fractions", "equivalence"},
			Explanation: "3/6 reduces to 1/2 when both terms are divided by 3.",
		},
		{
			Text:        "What is the value of 5^2?",
			Choices:     []string{"10", "20", "25", "52"},
			Answer:      "25",
			Concepts:    []string{"exponents"},
			Explanation: "5 squared means 5 x 5, which is 25.",
		},
		{
			Text:        "If a rectangle is 4 units wide and 6 units long, what is its area?",
			Choices:     []string{"10", "20", "24", "48"},
			Answer:      "24",
			Concepts:    []string{"area", "geometry"},
			Explanation: "Area of a rectangle is width times length: 4 x 6 = 24.",
		},
		{
			Text:        "What is 100 divided by 4?",
			Choices:     []string{"20", "25", "40", "50"},
			Answer:      "25",
			Concepts:    []string{"division"},
			Explanation: "100 split into 4 equal parts gives 25 each.",
		},
	},
	TopicLanguage: {
		{
			Text:        "Which word is a synonym of 'happy'?",
			Choices:     []string{"sad", "joyful", "angry", "tired"},
			Answer:      "joyful",
			Concepts:    []string{"synonyms", "vocabulary"},
			Explanation: "Joyful means feeling or showing great happiness.",
		},
		{
			Text:        "Which sentence is punctuated correctly?",
			Choices:     []string{"Where are you going.", "Where are you going?", "Where, are you going", "Where are you, going."},
			Answer:      "Where are you going?",
			Concepts:    []string{"punctuation"},
			Explanation: "A direct question ends with a question mark.",
		},
		{
			Text:        "What is the plural of 'child'?",
			Choices:     []string{"childs", "childes", "children", "childrens"},
			Answer:      "children",
			Concepts:    []string{"plurals", "irregular nouns"},
			Explanation: "Child has the irregular plural form children.",
		},
		{
			Text:        "Which word is a verb in the sentence 'The dog barked loudly'?",
			Choices:     []string{"The", "dog", "barked", "loudly"},
			Answer:      "barked",
			Concepts:    []string{"parts of speech", "verbs"},
			Explanation: "Barked is the action the dog performs.",
		},
		{
			Text:        "Which word is spelled correctly?",
			Choices:     []string{"recieve", "receive", "receeve", "riceive"},
			Answer:      "receive",
			Concepts:    []string{"spelling"},
			Explanation: "The rule 'i before e except after c' applies to receive.",
		},
	},
}

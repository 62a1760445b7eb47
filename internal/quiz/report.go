package quiz

import (
	"sort"

	"github.com/abhisek/prepquiz/internal/difficulty"
)

// maxMissedConcepts caps the weak-concept ranking in a report.
const maxMissedConcepts = 5

// Report is the final summary of a session.
type Report struct {
	// Score is the number of correct answers.
	Score int `json:"score"`

	// Total is the number of questions actually answered, which is
	// less than the requested count when generation ran dry.
	Total int `json:"total"`

	// Questions holds one entry per answered question, in order.
	Questions []QuestionResult `json:"questions"`

	// DifficultyTrace is the difficulty after each answer.
	DifficultyTrace []difficulty.Level `json:"difficulty_trace"`

	// TimeTrace is the per-question elapsed time in milliseconds.
	TimeTrace []int `json:"time_trace"`

	// TopMissedConcepts ranks concept tags from incorrectly answered
	// questions by miss count, at most 5, ties broken by
	// first-encountered order.
	TopMissedConcepts []string `json:"top_missed_concepts"`
}

// QuestionResult is the per-question entry in a report.
type QuestionResult struct {
	Text        string   `json:"text"`
	Answer      string   `json:"answer"`
	Given       string   `json:"given"`
	Correct     bool     `json:"correct"`
	TimeMs      int      `json:"time_ms"`
	Explanation string   `json:"explanation"`
	Concepts    []string `json:"concepts,omitempty"`
}

// summarize reduces the session's logs into a Report. Caller holds
// s.mu.
func summarize(s *Session) *Report {
	answered := s.CurrentIndex

	results := make([]QuestionResult, answered)
	for i := 0; i < answered; i++ {
		q := s.Questions[i]
		results[i] = QuestionResult{
			Text:        q.Text,
			Answer:      q.Answer,
			Given:       s.AnswerLog[i],
			Correct:     s.CorrectLog[i],
			TimeMs:      s.TimeLog[i],
			Explanation: s.ExplanationLog[i],
			Concepts:    q.Concepts,
		}
	}

	return &Report{
		Score:             s.Score,
		Total:             answered,
		Questions:         results,
		DifficultyTrace:   append([]difficulty.Level(nil), s.DifficultyLog...),
		TimeTrace:         append([]int(nil), s.TimeLog...),
		TopMissedConcepts: topMissedConcepts(s),
	}
}

// topMissedConcepts tallies concept tags across incorrectly answered
// questions and returns up to maxMissedConcepts tags ranked by
// descending miss count, first-encountered order breaking ties.
// Caller holds s.mu.
func topMissedConcepts(s *Session) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for i := 0; i < s.CurrentIndex; i++ {
		if s.CorrectLog[i] {
			continue
		}
		for _, concept := range s.Questions[i].Concepts {
			if _, ok := counts[concept]; !ok {
				firstSeen[concept] = order
				order++
			}
			counts[concept]++
		}
	}

	ranked := make([]string, 0, len(counts))
	for concept := range counts {
		ranked = append(ranked, concept)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > maxMissedConcepts {
		ranked = ranked[:maxMissedConcepts]
	}
	return ranked
}

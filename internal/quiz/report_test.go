package quiz

import (
	"testing"

	"github.com/abhisek/prepquiz/internal/quizgen"
)

func sessionWithMisses(conceptSets [][]string) *Session {
	s := &Session{
		TargetCount: len(conceptSets),
		seen:        make(map[string]struct{}),
	}
	for i, concepts := range conceptSets {
		s.Questions = append(s.Questions, &quizgen.Question{
			Text:     string(rune('a' + i)),
			Concepts: concepts,
		})
		s.AnswerLog = append(s.AnswerLog, "wrong")
		s.CorrectLog = append(s.CorrectLog, false)
		s.TimeLog = append(s.TimeLog, 100)
		s.ExplanationLog = append(s.ExplanationLog, "")
		s.DifficultyLog = append(s.DifficultyLog, "easy")
		s.CurrentIndex++
	}
	return s
}

func TestTopMissedConcepts_CapsAtFive(t *testing.T) {
	s := sessionWithMisses([][]string{
		{"c1", "c2"},
		{"c3", "c4"},
		{"c5", "c6"},
		{"c7"},
	})

	got := topMissedConcepts(s)
	if len(got) != 5 {
		t.Fatalf("expected 5 concepts, got %d: %v", len(got), got)
	}
	// All tied at one miss, so first-encountered order wins.
	want := []string{"c1", "c2", "c3", "c4", "c5"}
	for i, c := range want {
		if got[i] != c {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTopMissedConcepts_IgnoresCorrectAnswers(t *testing.T) {
	s := sessionWithMisses([][]string{{"missed"}, {"aced"}})
	s.CorrectLog[1] = true

	got := topMissedConcepts(s)
	if len(got) != 1 || got[0] != "missed" {
		t.Fatalf("got %v, want [missed]", got)
	}
}

func TestSummarize_EmptySession(t *testing.T) {
	s := &Session{TargetCount: 5, seen: make(map[string]struct{})}
	r := summarize(s)
	if r.Score != 0 || r.Total != 0 {
		t.Errorf("score %d/%d, want 0/0", r.Score, r.Total)
	}
	if len(r.Questions) != 0 || len(r.TopMissedConcepts) != 0 {
		t.Error("expected empty report sections")
	}
}

func TestQuestionView_HidesAnswer(t *testing.T) {
	q := &quizgen.Question{
		Text:        "What is 2 + 2?",
		Choices:     []string{"4", "3", "5", "22"},
		Answer:      "4",
		Explanation: "2 + 2 = 4",
	}
	v := newQuestionView(q, 1, 4)
	if v.Index != 2 || v.Total != 4 {
		t.Errorf("index %d/%d, want 2/4", v.Index, v.Total)
	}
	if v.ProgressPercent != 25 {
		t.Errorf("progress = %d, want 25", v.ProgressPercent)
	}

	// Mutating the view's choices must not reach the question.
	v.Choices[0] = "mutated"
	if q.Choices[0] != "4" {
		t.Error("view shares choice storage with the question")
	}
}

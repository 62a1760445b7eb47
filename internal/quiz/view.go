package quiz

import "github.com/abhisek/prepquiz/internal/quizgen"

// QuestionView is the shape handed to the rendering boundary. It
// deliberately omits the answer and explanation so they cannot leak
// before the student submits.
type QuestionView struct {
	Text            string   `json:"text"`
	Choices         []string `json:"choices"`
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	ProgressPercent int      `json:"progress_percent"`
}

// newQuestionView builds the view for the question after `answered`
// answers in a session of targetCount questions. Index is 1-based for
// display ("Question 3 of 10").
func newQuestionView(q *quizgen.Question, answered, targetCount int) *QuestionView {
	progress := 0
	if targetCount > 0 {
		progress = answered * 100 / targetCount
	}
	return &QuestionView{
		Text:            q.Text,
		Choices:         append([]string(nil), q.Choices...),
		Index:           answered + 1,
		Total:           targetCount,
		ProgressPercent: progress,
	}
}

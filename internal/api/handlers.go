package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/prepquiz/internal/quiz"
	"github.com/abhisek/prepquiz/internal/quizgen"
)

// StartSessionHandler creates a new quiz session and pre-fills its
// question buffer.
func StartSessionHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic    string `json:"topic"`
			Grade    int    `json:"grade"`
			Count    int    `json:"count"`
			Subtopic string `json:"subtopic"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		id, err := engine.StartSession(r.Context(), quizgen.Topic(req.Topic), req.Grade, req.Count, req.Subtopic)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"session_id": id})
	}
}

// CurrentQuestionHandler serves the session's current question, or a
// finished marker once no more questions can be served.
func CurrentQuestionHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")

		view, err := engine.CurrentQuestion(r.Context(), id)
		if errors.Is(err, quiz.ErrFinished) {
			_ = json.NewEncoder(w).Encode(map[string]bool{"finished": true})
			return
		}
		if err != nil {
			writeEngineError(w, err)
			return
		}

		_ = json.NewEncoder(w).Encode(struct {
			Finished bool `json:"finished"`
			*quiz.QuestionView
		}{Finished: false, QuestionView: view})
	}
}

// SubmitAnswerHandler records an answer for the current question.
func SubmitAnswerHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")

		var req struct {
			Choice    string `json:"choice"`
			ElapsedMs int    `json:"elapsed_ms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		if err := engine.SubmitAnswer(r.Context(), id, req.Choice, req.ElapsedMs); err != nil {
			writeEngineError(w, err)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}
}

// ReportHandler returns the final session summary.
func ReportHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")

		report, err := engine.Report(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		_ = json.NewEncoder(w).Encode(report)
	}
}

// writeEngineError maps engine errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	var cfgErr *quiz.InvalidConfigError
	switch {
	case errors.As(err, &cfgErr):
		http.Error(w, cfgErr.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrOutOfSequence):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quiz.ErrNotFinished):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

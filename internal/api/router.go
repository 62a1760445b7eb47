package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/prepquiz/internal/quiz"
)

// NewRouter builds the HTTP surface over the quiz engine.
func NewRouter(engine *quiz.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/sessions", func(sr chi.Router) {
		sr.Post("/", StartSessionHandler(engine))
		sr.Get("/{sessionID}/question", CurrentQuestionHandler(engine))
		sr.Post("/{sessionID}/answer", SubmitAnswerHandler(engine))
		sr.Get("/{sessionID}/report", ReportHandler(engine))
	})

	return r
}

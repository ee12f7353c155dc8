package workflow

import "github.com/go-chi/chi/v5"

// AttemptRoutes registers the session endpoints under /attempts.
func AttemptRoutes(r chi.Router, h *Handler) {
	r.Get("/{id}/session", h.Session)
	r.Put("/{id}/answers/{questionId}", h.RecordAnswer)
	r.Post("/{id}/next", h.Next)
	r.Post("/{id}/previous", h.Previous)
	r.Post("/{id}/jump", h.Jump)
	r.Post("/{id}/submit", h.Submit)
	r.Get("/{id}/result", h.Result)
}

// QuizRoutes registers the attempt start under /quizzes.
func QuizRoutes(r chi.Router, h *Handler) {
	r.Post("/{id}/attempt", h.Start)
}

package question

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListQuestions)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.AddQuestion)
		r.Put("/{id}", h.UpdateQuestion)
		r.Delete("/{id}", h.RemoveQuestion)
	})
	return r
}

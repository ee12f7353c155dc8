package course

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
)

// Routes expects AuthMiddleware upstream. Mutations are admin only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/stats", h.Stats)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

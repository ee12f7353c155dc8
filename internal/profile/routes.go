package profile

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
)

func Routes(h *auth.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)
	return r
}

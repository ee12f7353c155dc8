package enrollment

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListMine)
	r.Get("/{courseId}/status", h.Status)
	return r
}

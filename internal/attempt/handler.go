package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List returns every attempt to admins and the caller's own attempts to
// students.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}

	var attempts []QuizAttempt
	if claims.Role == auth.RoleAdmin {
		attempts, err = h.service.List(r.Context())
	} else {
		attempts, err = h.service.ForStudent(r.Context(), claims.UserID)
	}
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Erro ao listar tentativas")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, attempts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}

	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	if a.UserID != claims.UserID && claims.Role != auth.RoleAdmin {
		config.Fail(w, ErrAttemptNotFound)
		return
	}
	config.JSON(w, http.StatusOK, a)
}

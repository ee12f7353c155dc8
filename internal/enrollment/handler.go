package enrollment

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

// Enroll serves POST /courses/{id}/enroll.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("Usuário não autenticado")
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}

	e, err := h.service.Enroll(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}

	list, err := h.service.ListMine(r.Context(), claims.UserID)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Erro ao listar matrículas")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, list)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Fail(w, apperr.ErrUnauthorized)
		return
	}

	st, err := h.service.Status(r.Context(), claims.UserID, chi.URLParam(r, "courseId"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, st)
}

package workflow

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type navigation struct {
	Moved   bool     `json:"moved"`
	Session Snapshot `json:"session"`
}

func claimsOrFail(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("Usuário não autenticado")
		config.Fail(w, apperr.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// Start serves POST /quizzes/{id}/attempt.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	quizID := chi.URLParam(r, "id")

	snap, err := h.service.StartAttempt(r.Context(), claims.UserID, quizID)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).WithField("quiz_id", quizID).Warn("Tentativa não iniciada")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, snap)
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Session(claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	var body struct {
		Answer answer.Value `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para resposta")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.service.RecordAnswer(claims.UserID, chi.URLParam(r, "id"), chi.URLParam(r, "questionId"), body.Answer)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) { h.navigate(w, r, Forward) }

func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) { h.navigate(w, r, Backward) }

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, dir Direction) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	snap, moved, err := h.service.Navigate(claims.UserID, chi.URLParam(r, "id"), dir)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, navigation{Moved: moved, Session: snap})
}

func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, moved, err := h.service.Jump(claims.UserID, chi.URLParam(r, "id"), body.Index)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, navigation{Moved: moved, Session: snap})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}
	attemptID := chi.URLParam(r, "id")

	res, err := h.service.Submit(r.Context(), claims.UserID, attemptID)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).WithFields(logrus.Fields{
			"attempt_id": attemptID,
		}).Error("Falha ao enviar tentativa")
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	res, err := h.service.Result(r.Context(), claims.UserID, chi.URLParam(r, "id"), claims.Role == auth.RoleAdmin)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

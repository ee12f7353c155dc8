package question

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

type Handler struct {
	service QuestionService
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s}
}

// studentView hides the expected answer from non-admin callers.
type studentView struct {
	ID       string       `json:"id"`
	QuizID   string       `json:"quizId"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options"`
	Points   int          `json:"points"`
	Position int          `json:"position"`
}

func present(r *http.Request, qs []Question) interface{} {
	if claims, err := auth.GetUserClaimsFromContext(r.Context()); err == nil && claims.Role == auth.RoleAdmin {
		return qs
	}
	out := make([]studentView, 0, len(qs))
	for _, q := range qs {
		out = append(out, studentView{
			ID: q.ID, QuizID: q.QuizID, Text: q.Text, Type: q.Type,
			Options: q.Options, Points: q.Points, Position: q.Position,
		})
	}
	return out
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para adicionar pergunta")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if quizID := chi.URLParam(r, "id"); quizID != "" {
		dto.QuizID = quizID
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := h.service.List(r.Context())
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, present(r, qs))
}

// ListForQuiz serves /quizzes/{id}/questions.
func (h *Handler) ListForQuiz(w http.ResponseWriter, r *http.Request) {
	qs, err := h.service.ForQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, present(r, qs))
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para atualizar pergunta")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		config.Fail(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question removed successfully",
	})
}

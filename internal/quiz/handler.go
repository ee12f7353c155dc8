package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para criar quiz")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context())
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

// ListForCourse serves /courses/{id}/quizzes.
func (h *Handler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ForCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Fail(w, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para atualizar quiz")
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

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), quizID); err != nil {
		config.Fail(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

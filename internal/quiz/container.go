package quiz

import (
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler    *Handler
	Service    QuizService
	Repository QuizRepository
}

func NewQuizContainer(db *gorm.DB, courses Courses, bus *store.Bus, dependents ...store.Invalidator) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, courses, bus, dependents...)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler:    handler,
		Service:    service,
		Repository: repo,
	}
}

package question

import (
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"gorm.io/gorm"
)

type Container struct {
	Handler    *Handler
	Service    QuestionService
	Repository Repository
}

func NewContainer(db *gorm.DB, quizzes Quizzes, bus *store.Bus) *Container {
	repo := NewRepository(db)
	service := NewService(repo, quizzes, bus)
	handler := NewHandler(service)

	return &Container{
		Handler:    handler,
		Service:    service,
		Repository: repo,
	}
}

package workflow

import (
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"gorm.io/gorm"
)

type Container struct {
	Handler  *Handler
	Service  *Service
	Registry *Registry
}

func NewContainer(db *gorm.DB, quizzes quiz.QuizService, questions question.QuestionService, attempts *attempt.Container, enrollments *enrollment.Container, retention time.Duration) *Container {
	completer := NewCompleter(db, attempts.Repository, enrollments.Repository, quizzes, attempts.Service, enrollments.Service)
	registry := NewRegistry(retention)
	service := NewService(quizzes, questions, attempts.Service, completer, registry)

	return &Container{
		Handler:  NewHandler(service),
		Service:  service,
		Registry: registry,
	}
}

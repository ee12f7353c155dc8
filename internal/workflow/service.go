package workflow

import (
	"context"
	"errors"

	"github.com/saulo-duarte/mindpop-lambda/internal/answer"
	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
)

type Quizzes interface {
	Get(ctx context.Context, id string) (*quiz.Quiz, error)
}

type Questions interface {
	ForQuiz(ctx context.Context, quizID string) ([]question.Question, error)
}

type AttemptStore interface {
	Attempts
	Get(ctx context.Context, id string) (*attempt.QuizAttempt, error)
}

// Service drives workflows on behalf of HTTP callers.
type Service struct {
	quizzes   Quizzes
	questions Questions
	attempts  AttemptStore
	finalizer Finalizer
	registry  *Registry
	opts      []Option
}

func NewService(quizzes Quizzes, questions Questions, attempts AttemptStore, finalizer Finalizer, registry *Registry, opts ...Option) *Service {
	return &Service{
		quizzes:   quizzes,
		questions: questions,
		attempts:  attempts,
		finalizer: finalizer,
		registry:  registry,
		opts:      opts,
	}
}

// StartAttempt begins a new attempt. Unsubmitted sessions of the same
// student for the same quiz are abandoned; the new one gets a fresh
// countdown. Concurrent starts for the same quiz run one after another.
func (s *Service) StartAttempt(ctx context.Context, userID, quizID string) (Snapshot, error) {
	unlock := s.registry.LockStart(userID, quizID)
	defer unlock()

	q, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return Snapshot{}, err
	}
	qs, err := s.questions.ForQuiz(ctx, quizID)
	if err != nil {
		return Snapshot{}, persistence(err)
	}

	w := New(*q, qs, userID, s.attempts, s.finalizer, s.opts...)
	if err := w.Start(ctx); err != nil {
		return Snapshot{}, err
	}
	for _, old := range s.registry.TakeOpen(userID, quizID) {
		old.Abandon()
		config.WithContext(ctx).WithField("attempt_id", old.AttemptID()).Info("Sessão anterior abandonada")
	}
	s.registry.Put(w)
	return w.Snapshot(), nil
}

func (s *Service) Session(userID, attemptID string) (Snapshot, error) {
	w, err := s.registry.Get(attemptID, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return w.Snapshot(), nil
}

func (s *Service) RecordAnswer(userID, attemptID, questionID string, v answer.Value) (Snapshot, error) {
	w, err := s.registry.Get(attemptID, userID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := w.RecordAnswer(questionID, v); err != nil {
		return Snapshot{}, err
	}
	return w.Snapshot(), nil
}

type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Navigate moves one question in dir and reports whether the index moved.
func (s *Service) Navigate(userID, attemptID string, dir Direction) (Snapshot, bool, error) {
	w, err := s.registry.Get(attemptID, userID)
	if err != nil {
		return Snapshot{}, false, err
	}
	var moved bool
	if dir == Backward {
		moved = w.Previous()
	} else {
		moved = w.Next()
	}
	return w.Snapshot(), moved, nil
}

func (s *Service) Jump(userID, attemptID string, index int) (Snapshot, bool, error) {
	w, err := s.registry.Get(attemptID, userID)
	if err != nil {
		return Snapshot{}, false, err
	}
	moved := w.JumpTo(index)
	return w.Snapshot(), moved, nil
}

// Submit finalizes the live session. When the session is gone but the
// attempt was already completed, the stored result is returned.
func (s *Service) Submit(ctx context.Context, userID, attemptID string) (*Result, error) {
	w, err := s.registry.Get(attemptID, userID)
	if err != nil {
		return s.Result(ctx, userID, attemptID, false)
	}
	a, err := w.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, *a)
}

// Result builds the result view of a completed attempt. Admins may read any
// attempt.
func (s *Service) Result(ctx context.Context, userID, attemptID string, admin bool) (*Result, error) {
	a, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, persistence(err)
	}
	if a.UserID != userID && !admin {
		return nil, ErrAttemptNotFound
	}
	if !a.Completed() {
		return nil, ErrAttemptNotCompleted
	}
	return s.result(ctx, *a)
}

func (s *Service) result(ctx context.Context, a attempt.QuizAttempt) (*Result, error) {
	q, err := s.quizzes.Get(ctx, a.QuizID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		q = &quiz.Quiz{ID: a.QuizID}
	}
	qs, err := s.questions.ForQuiz(ctx, a.QuizID)
	if err != nil {
		return nil, persistence(err)
	}
	res := BuildResult(*q, qs, a)
	return &res, nil
}

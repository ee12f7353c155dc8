package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/attempt"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Completion is everything the completion sequence writes.
type Completion struct {
	AttemptID   string
	QuizID      string
	CourseID    string
	UserID      string
	Score       int
	MaxScore    int
	Answers     []attempt.AnswerRecord
	CompletedAt time.Time
}

type QuizCounter interface {
	CountForCourse(ctx context.Context, courseID string) (int, error)
}

// Completer finalizes the attempt and updates the enrollment in one
// transaction. The attempt id is the dedup key: an attempt that is already
// completed is returned as stored and nothing is written.
type Completer struct {
	db          *gorm.DB
	attempts    attempt.Repository
	enrollments enrollment.Repository
	quizzes     QuizCounter

	attemptStore    store.Invalidator
	enrollmentStore store.Invalidator
}

func NewCompleter(db *gorm.DB, attempts attempt.Repository, enrollments enrollment.Repository, quizzes QuizCounter, attemptStore, enrollmentStore store.Invalidator) *Completer {
	return &Completer{
		db:              db,
		attempts:        attempts,
		enrollments:     enrollments,
		quizzes:         quizzes,
		attemptStore:    attemptStore,
		enrollmentStore: enrollmentStore,
	}
}

func (c *Completer) Complete(ctx context.Context, in Completion) (*attempt.QuizAttempt, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"attempt_id": in.AttemptID,
		"quiz_id":    in.QuizID,
	})

	// counted before the transaction opens so the read does not compete with
	// it for a connection
	quizCount, err := c.quizzes.CountForCourse(ctx, in.CourseID)
	if err != nil {
		log.WithError(err).Error("Erro ao contar quizzes do curso")
		return nil, persistence(err)
	}

	var (
		out          attempt.QuizAttempt
		finalized    bool
		enrollmentID string
	)
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := c.attempts.WithTx(tx)

		row, err := attempts.Get(ctx, in.AttemptID)
		if err != nil {
			return err
		}
		if row.UserID != in.UserID {
			return ErrAttemptNotFound
		}
		if row.CompletedAt != nil {
			out, err = attempt.ToAttempt(*row)
			return err
		}

		fields, err := attempt.CompletionFields(in.Score, in.MaxScore, in.Answers, in.CompletedAt)
		if err != nil {
			return err
		}
		updated, err := attempts.Update(ctx, in.AttemptID, fields)
		if err != nil {
			return err
		}
		if out, err = attempt.ToAttempt(*updated); err != nil {
			return err
		}
		finalized = true

		enrollments := c.enrollments.WithTx(tx)
		erow, err := enrollments.Find(ctx, in.UserID, in.CourseID)
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn("Aluno não matriculado no curso, progresso não registrado")
			return nil
		}
		if err != nil {
			return err
		}

		current, err := enrollment.ToEnrollment(*erow)
		if err != nil {
			return err
		}
		next, changed := enrollment.ApplyCompletion(current, in.QuizID, quizCount)
		if !changed {
			return nil
		}
		fields, err = enrollment.ProgressFields(next)
		if err != nil {
			return err
		}
		if _, err := enrollments.Update(ctx, current.ID, fields); err != nil {
			return err
		}
		enrollmentID = current.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) || errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		log.WithError(err).Error("Conclusão da tentativa revertida")
		return nil, persistence(err)
	}

	if finalized {
		c.attemptStore.Invalidate(store.OpUpdated, in.AttemptID)
		log.WithFields(logrus.Fields{"score": out.Score, "max_score": out.MaxScore}).Info("Tentativa concluída")
	}
	if enrollmentID != "" {
		c.enrollmentStore.Invalidate(store.OpUpdated, enrollmentID)
	}
	return &out, nil
}

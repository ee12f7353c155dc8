package attempt

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"gorm.io/datatypes"
)

const Collection = "quiz_attempts"

var ErrAttemptNotFound = fmt.Errorf("attempt %w", apperr.ErrNotFound)

// Service is the attempt store. Attempts are never deleted.
type Service interface {
	List(ctx context.Context) ([]QuizAttempt, error)
	Get(ctx context.Context, id string) (*QuizAttempt, error)
	ForStudent(ctx context.Context, userID string) ([]QuizAttempt, error)
	HasCompleted(ctx context.Context, userID, quizID string) (bool, error)
	Create(ctx context.Context, quizID, userID string, maxScore int) (*QuizAttempt, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*QuizAttempt, error)
	Invalidate(op store.Op, id string)
}

type service struct {
	repo  Repository
	cache *store.Cache[QuizAttempt]
}

func NewService(repo Repository, bus *store.Bus) Service {
	s := &service{repo: repo}
	s.cache = store.NewCache(Collection, s.load, bus)
	return s
}

func (s *service) load(ctx context.Context) ([]QuizAttempt, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]QuizAttempt, 0, len(rows))
	for _, r := range rows {
		a, err := ToAttempt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]QuizAttempt, error) {
	return s.cache.List(ctx)
}

// Get reads through to the repository so a just-finalized attempt is never
// served from a stale cache.
func (s *service) Get(ctx context.Context, id string) (*QuizAttempt, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	a, err := ToAttempt(*row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *service) ForStudent(ctx context.Context, userID string) ([]QuizAttempt, error) {
	return s.cache.Filter(ctx, func(a QuizAttempt) bool { return a.UserID == userID })
}

func (s *service) HasCompleted(ctx context.Context, userID, quizID string) (bool, error) {
	return s.repo.HasCompleted(ctx, userID, quizID)
}

func (s *service) Create(ctx context.Context, quizID, userID string, maxScore int) (*QuizAttempt, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	zero := 0
	row := Row{QuizID: quizID, UserID: userID, Score: &zero, MaxScore: &maxScore}
	row.Answers = datatypes.JSON("[]")
	if err := s.repo.Create(ctx, &row); err != nil {
		log.WithError(err).Error("Erro ao criar tentativa")
		return nil, err
	}
	s.cache.Invalidate(store.OpCreated, row.ID)

	a, err := ToAttempt(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *service) Update(ctx context.Context, id string, fields map[string]interface{}) (*QuizAttempt, error) {
	row, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("attempt_id", id).Error("Erro ao atualizar tentativa")
		return nil, err
	}
	s.cache.Invalidate(store.OpUpdated, id)

	a, err := ToAttempt(*row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *service) Invalidate(op store.Op, id string) {
	s.cache.Invalidate(op, id)
}

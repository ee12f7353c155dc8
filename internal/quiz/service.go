package quiz

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

const Collection = "quizzes"

var (
	ErrQuizNotFound   = fmt.Errorf("quiz %w", apperr.ErrNotFound)
	ErrCourseNotFound = fmt.Errorf("course does not exist: %w", apperr.ErrValidation)
)

// Courses answers whether a course exists.
type Courses interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type QuizService interface {
	List(ctx context.Context) ([]Quiz, error)
	Get(ctx context.Context, id string) (*Quiz, error)
	ForCourse(ctx context.Context, courseID string) ([]Quiz, error)
	CountForCourse(ctx context.Context, courseID string) (int, error)
	Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	Update(ctx context.Context, id string, dto UpdateQuizDTO) (*Quiz, error)
	Delete(ctx context.Context, id string) error
	Invalidate(op store.Op, id string)
}

type quizService struct {
	repo       QuizRepository
	courses    Courses
	cache      *store.Cache[Quiz]
	dependents []store.Invalidator
}

func NewService(repo QuizRepository, courses Courses, bus *store.Bus, dependents ...store.Invalidator) QuizService {
	s := &quizService{repo: repo, courses: courses, dependents: dependents}
	s.cache = store.NewCache(Collection, s.load, bus)
	return s
}

func (s *quizService) load(ctx context.Context) ([]Quiz, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quiz, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToQuiz(r))
	}
	return out, nil
}

func (s *quizService) List(ctx context.Context) ([]Quiz, error) {
	quizzes, err := s.cache.List(ctx)
	if err != nil {
		config.WithContext(ctx).Errorf("Erro ao listar quizzes: %v", err)
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) Get(ctx context.Context, id string) (*Quiz, error) {
	found, err := s.cache.Filter(ctx, func(q Quiz) bool { return q.ID == id })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrQuizNotFound
	}
	return &found[0], nil
}

func (s *quizService) ForCourse(ctx context.Context, courseID string) ([]Quiz, error) {
	return s.cache.Filter(ctx, func(q Quiz) bool { return q.CourseID == courseID })
}

// CountForCourse reads the store directly; progress must not be computed
// from a stale cache.
func (s *quizService) CountForCourse(ctx context.Context, courseID string) (int, error) {
	return s.repo.CountForCourse(ctx, courseID)
}

func (s *quizService) Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.courses.Exists(ctx, dto.CourseID)
	if err != nil {
		log.Errorf("Erro ao buscar curso: %v", err)
		return nil, err
	}
	if !ok {
		log.WithField("course_id", dto.CourseID).Warn("Curso não encontrado")
		return nil, ErrCourseNotFound
	}

	row := NewRow(dto)
	if err := s.repo.Create(ctx, &row); err != nil {
		log.Errorf("Erro ao criar quiz: %v", err)
		return nil, err
	}
	s.cache.Invalidate(store.OpCreated, row.ID)

	log.WithField("quiz_id", row.ID).Info("Quiz criado com sucesso")
	q := ToQuiz(row)
	return &q, nil
}

func (s *quizService) Update(ctx context.Context, id string, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, UpdateFields(dto))
	if err != nil {
		log.Errorf("Erro ao atualizar quiz: %v", err)
		return nil, err
	}
	s.cache.Invalidate(store.OpUpdated, id)

	q := ToQuiz(*row)
	return &q, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx).WithField("quiz_id", id)
	log.Info("Deletando quiz...")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Errorf("Erro ao deletar quiz: %v", err)
		return err
	}
	s.cache.Invalidate(store.OpDeleted, id)
	for _, d := range s.dependents {
		d.Invalidate(store.OpDeleted, "")
	}

	log.Info("Quiz deletado com sucesso")
	return nil
}

func (s *quizService) Invalidate(op store.Op, id string) {
	s.cache.Invalidate(op, id)
}

package course

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

const Collection = "courses"

var ErrCourseNotFound = fmt.Errorf("course %w", apperr.ErrNotFound)

// Service is the course store: a cached collection plus mutators that
// invalidate it on success.
type Service interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (*Course, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, createdBy string, dto CreateCourseDTO) (*Course, error)
	Update(ctx context.Context, id string, dto UpdateCourseDTO) (*Course, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*Stats, error)
}

type service struct {
	repo       Repository
	cache      *store.Cache[Course]
	dependents []store.Invalidator
}

// NewService builds the course store. dependents are the stores holding rows
// removed by a course delete.
func NewService(repo Repository, bus *store.Bus, dependents ...store.Invalidator) Service {
	s := &service{repo: repo, dependents: dependents}
	s.cache = store.NewCache(Collection, s.load, bus)
	return s
}

func (s *service) load(ctx context.Context) ([]Course, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Course, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToCourse(r))
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]Course, error) {
	courses, err := s.cache.List(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar cursos")
		return nil, err
	}
	return courses, nil
}

func (s *service) Get(ctx context.Context, id string) (*Course, error) {
	found, err := s.cache.Filter(ctx, func(c Course) bool { return c.ID == id })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrCourseNotFound
	}
	return &found[0], nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) Create(ctx context.Context, createdBy string, dto CreateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := NewRow(createdBy, dto)
	if err := s.repo.Insert(ctx, &row); err != nil {
		log.WithError(err).Error("Erro ao criar curso")
		return nil, err
	}
	s.cache.Invalidate(store.OpCreated, row.ID)

	log.WithField("course_id", row.ID).Info("Curso criado com sucesso")
	c := ToCourse(row)
	return &c, nil
}

func (s *service) Update(ctx context.Context, id string, dto UpdateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx).WithField("course_id", id)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, UpdateFields(dto))
	if err != nil {
		log.WithError(err).Warn("Erro ao atualizar curso")
		return nil, err
	}
	s.cache.Invalidate(store.OpUpdated, id)

	c := ToCourse(*row)
	return &c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx).WithField("course_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Erro ao deletar curso")
		return err
	}
	s.cache.Invalidate(store.OpDeleted, id)
	for _, d := range s.dependents {
		d.Invalidate(store.OpDeleted, "")
	}

	log.Info("Curso deletado com sucesso")
	return nil
}

func (s *service) Stats(ctx context.Context, id string) (*Stats, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCourseNotFound
	}
	return s.repo.Stats(ctx, id)
}

package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

const Collection = "enrollments"

var (
	ErrAlreadyEnrolled = fmt.Errorf("already enrolled in course: %w", apperr.ErrConflict)
	ErrNotEnrolled     = fmt.Errorf("enrollment %w", apperr.ErrNotFound)
	ErrCourseNotFound  = fmt.Errorf("course %w", apperr.ErrNotFound)
)

type Courses interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type QuizCounter interface {
	CountForCourse(ctx context.Context, courseID string) (int, error)
}

type Service interface {
	List(ctx context.Context) ([]EnrolledCourse, error)
	ListMine(ctx context.Context, userID string) ([]EnrolledCourse, error)
	Find(ctx context.Context, userID, courseID string) (*EnrolledCourse, error)
	Enroll(ctx context.Context, userID, courseID string) (*EnrolledCourse, error)
	Status(ctx context.Context, userID, courseID string) (*Status, error)
	Invalidate(op store.Op, id string)
}

type service struct {
	repo    Repository
	courses Courses
	quizzes QuizCounter
	cache   *store.Cache[EnrolledCourse]
}

func NewService(repo Repository, courses Courses, quizzes QuizCounter, bus *store.Bus) Service {
	s := &service{repo: repo, courses: courses, quizzes: quizzes}
	s.cache = store.NewCache(Collection, s.load, bus)
	return s
}

func (s *service) load(ctx context.Context) ([]EnrolledCourse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EnrolledCourse, 0, len(rows))
	for _, r := range rows {
		e, err := ToEnrollment(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *service) List(ctx context.Context) ([]EnrolledCourse, error) {
	return s.cache.List(ctx)
}

func (s *service) ListMine(ctx context.Context, userID string) ([]EnrolledCourse, error) {
	return s.cache.Filter(ctx, func(e EnrolledCourse) bool { return e.UserID == userID })
}

func (s *service) Find(ctx context.Context, userID, courseID string) (*EnrolledCourse, error) {
	row, err := s.repo.Find(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	e, err := ToEnrollment(*row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *service) Enroll(ctx context.Context, userID, courseID string) (*EnrolledCourse, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	ok, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCourseNotFound
	}

	if _, err := s.Find(ctx, userID, courseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, ErrNotEnrolled) {
		return nil, err
	}

	row, err := ToRow(EnrolledCourse{UserID: userID, CourseID: courseID})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		log.WithError(err).Error("Erro ao matricular aluno")
		return nil, err
	}
	s.cache.Invalidate(store.OpCreated, row.ID)

	log.Info("Aluno matriculado com sucesso")
	e, err := ToEnrollment(row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Status computes progress against the current quiz count, so a course
// without quizzes reports 100.
func (s *service) Status(ctx context.Context, userID, courseID string) (*Status, error) {
	e, err := s.Find(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	n, err := s.quizzes.CountForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	st := StatusOf(*e, n)
	return &st, nil
}

func (s *service) Invalidate(op store.Op, id string) {
	s.cache.Invalidate(op, id)
}

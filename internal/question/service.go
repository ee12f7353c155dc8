package question

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
)

const Collection = "questions"

var (
	ErrQuestionNotFound = fmt.Errorf("question %w", apperr.ErrNotFound)
	ErrQuizNotFound     = fmt.Errorf("quiz does not exist: %w", apperr.ErrValidation)
)

type Quizzes interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type QuestionService interface {
	List(ctx context.Context) ([]Question, error)
	Get(ctx context.Context, id string) (*Question, error)
	ForQuiz(ctx context.Context, quizID string) ([]Question, error)
	Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error)
	Update(ctx context.Context, id string, dto UpdateQuestionDTO) (*Question, error)
	Delete(ctx context.Context, id string) error
	Invalidate(op store.Op, id string)
}

type questionService struct {
	repo    Repository
	quizzes Quizzes
	cache   *store.Cache[Question]
}

func NewService(repo Repository, quizzes Quizzes, bus *store.Bus) QuestionService {
	s := &questionService{repo: repo, quizzes: quizzes}
	s.cache = store.NewCache(Collection, s.load, bus)
	return s
}

func (s *questionService) load(ctx context.Context) ([]Question, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(rows))
	for _, r := range rows {
		q, err := ToQuestion(r)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *questionService) List(ctx context.Context) ([]Question, error) {
	questions, err := s.cache.List(ctx)
	if err != nil {
		config.WithContext(ctx).Errorf("Erro ao listar perguntas: %v", err)
		return nil, err
	}
	return questions, nil
}

func (s *questionService) Get(ctx context.Context, id string) (*Question, error) {
	found, err := s.cache.Filter(ctx, func(q Question) bool { return q.ID == id })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrQuestionNotFound
	}
	return &found[0], nil
}

// ForQuiz returns the questions of a quiz in quiz order.
func (s *questionService) ForQuiz(ctx context.Context, quizID string) ([]Question, error) {
	questions, err := s.cache.Filter(ctx, func(q Question) bool { return q.QuizID == quizID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(questions, func(a, b Question) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return questions, nil
}

func (s *questionService) Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx).WithField("quiz_id", dto.QuizID)
	log.Info("Adicionando nova pergunta ao quiz...")

	position := 0
	if dto.Position == nil && dto.QuizID != "" {
		n, err := s.repo.CountForQuiz(ctx, dto.QuizID)
		if err != nil {
			return nil, err
		}
		position = n
	}
	q := FromCreate(dto, position)
	if err := Validate(q); err != nil {
		return nil, err
	}

	ok, err := s.quizzes.Exists(ctx, q.QuizID)
	if err != nil {
		log.Errorf("Erro ao buscar quiz: %v", err)
		return nil, err
	}
	if !ok {
		log.Warn("Quiz não encontrado")
		return nil, ErrQuizNotFound
	}

	row, err := ToRow(q)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		log.Errorf("Erro ao adicionar pergunta: %v", err)
		return nil, err
	}
	s.cache.Invalidate(store.OpCreated, row.ID)

	created, err := ToQuestion(row)
	if err != nil {
		return nil, err
	}
	log.WithField("question_id", row.ID).Info("Pergunta adicionada com sucesso")
	return &created, nil
}

// Update validates the merged question before writing the partial change.
func (s *questionService) Update(ctx context.Context, id string, dto UpdateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := ToQuestion(*current)
	if err != nil {
		return nil, err
	}
	if err := Validate(dto.Apply(existing)); err != nil {
		return nil, err
	}

	fields, err := UpdateFields(dto)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		log.Errorf("Erro ao atualizar pergunta: %v", err)
		return nil, err
	}
	s.cache.Invalidate(store.OpUpdated, id)

	updated, err := ToQuestion(*row)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *questionService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx).WithField("question_id", id)
	log.Info("Removendo pergunta...")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Errorf("Erro ao remover pergunta: %v", err)
		return err
	}
	s.cache.Invalidate(store.OpDeleted, id)

	log.Info("Pergunta removida com sucesso")
	return nil
}

func (s *questionService) Invalidate(op store.Op, id string) {
	s.cache.Invalidate(op, id)
}

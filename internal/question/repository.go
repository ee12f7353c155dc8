package question

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"gorm.io/gorm"
)

const quizOrder = "position ASC, created_at ASC"

type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Get(ctx context.Context, id string) (*Row, error)
	CountForQuiz(ctx context.Context, quizID string) (int, error)
	Create(ctx context.Context, r *Row) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	table *gateway.Table[Row]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{table: gateway.NewTable[Row](db)}
}

func (r *repository) List(ctx context.Context) ([]Row, error) {
	return r.table.Select(ctx, "quiz_id ASC, "+quizOrder)
}

func (r *repository) Get(ctx context.Context, id string) (*Row, error) {
	return r.table.Get(ctx, id)
}

func (r *repository) CountForQuiz(ctx context.Context, quizID string) (int, error) {
	n, err := r.table.Count(ctx, "quiz_id = ?", quizID)
	return int(n), err
}

func (r *repository) Create(ctx context.Context, row *Row) error {
	return r.table.Insert(ctx, row)
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error) {
	return r.table.Update(ctx, id, fields)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}

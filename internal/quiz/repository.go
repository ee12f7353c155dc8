package quiz

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"gorm.io/gorm"
)

type QuizRepository interface {
	List(ctx context.Context) ([]Row, error)
	Exists(ctx context.Context, id string) (bool, error)
	CountForCourse(ctx context.Context, courseID string) (int, error)
	Create(ctx context.Context, q *Row) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error)
	Delete(ctx context.Context, id string) error
}

type quizRepository struct {
	db    *gorm.DB
	table *gateway.Table[Row]
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db, table: gateway.NewTable[Row](db)}
}

func (r *quizRepository) List(ctx context.Context) ([]Row, error) {
	return r.table.Select(ctx, "created_at ASC")
}

func (r *quizRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.table.Exists(ctx, "id = ?", id)
}

func (r *quizRepository) CountForCourse(ctx context.Context, courseID string) (int, error) {
	n, err := r.table.Count(ctx, "course_id = ?", courseID)
	return int(n), err
}

func (r *quizRepository) Create(ctx context.Context, q *Row) error {
	return r.table.Insert(ctx, q)
}

func (r *quizRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error) {
	return r.table.Update(ctx, id, fields)
}

// Delete removes the quiz and its questions in one transaction.
func (r *quizRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.table.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return tx.Where("quiz_id = ?", id).Delete(&question.Row{}).Error
	})
}

package course

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/enrollment"
	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"github.com/saulo-duarte/mindpop-lambda/internal/question"
	"github.com/saulo-duarte/mindpop-lambda/internal/quiz"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, r *Row) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*Stats, error)
}

type repository struct {
	db    *gorm.DB
	table *gateway.Table[Row]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, table: gateway.NewTable[Row](db)}
}

func (r *repository) List(ctx context.Context) ([]Row, error) {
	return r.table.Select(ctx, "created_at DESC")
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	return r.table.Exists(ctx, "id = ?", id)
}

func (r *repository) Insert(ctx context.Context, row *Row) error {
	return r.table.Insert(ctx, row)
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error) {
	return r.table.Update(ctx, id, fields)
}

// Delete removes the course together with its quizzes, their questions and
// the enrollments in it. Attempts are kept as history.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.table.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		quizIDs := tx.Model(&quiz.Row{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&question.Row{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&quiz.Row{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", id).Delete(&enrollment.Row{}).Error
	})
}

func (r *repository) Stats(ctx context.Context, id string) (*Stats, error) {
	st := &Stats{CourseID: id}
	db := r.db.WithContext(ctx)
	if err := db.Model(&quiz.Row{}).Where("course_id = ?", id).Count(&st.QuizCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&enrollment.Row{}).Where("course_id = ?", id).Count(&st.EnrollmentCount).Error; err != nil {
		return nil, err
	}
	return st, nil
}

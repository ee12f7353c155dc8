package enrollment

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Find(ctx context.Context, userID, courseID string) (*Row, error)
	Create(ctx context.Context, r *Row) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error)
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	table *gateway.Table[Row]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{table: gateway.NewTable[Row](db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{table: r.table.WithTx(tx)}
}

func (r *repository) List(ctx context.Context) ([]Row, error) {
	return r.table.Select(ctx, "enrolled_at DESC")
}

func (r *repository) Find(ctx context.Context, userID, courseID string) (*Row, error) {
	return r.table.First(ctx, "user_id = ? AND course_id = ?", userID, courseID)
}

func (r *repository) Create(ctx context.Context, row *Row) error {
	return r.table.Insert(ctx, row)
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error) {
	return r.table.Update(ctx, id, fields)
}

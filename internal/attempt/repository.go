package attempt

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Get(ctx context.Context, id string) (*Row, error)
	HasCompleted(ctx context.Context, userID, quizID string) (bool, error)
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
	return r.table.Select(ctx, "started_at DESC")
}

func (r *repository) Get(ctx context.Context, id string) (*Row, error) {
	return r.table.Get(ctx, id)
}

func (r *repository) HasCompleted(ctx context.Context, userID, quizID string) (bool, error) {
	return r.table.Exists(ctx, "user_id = ? AND quiz_id = ? AND completed_at IS NOT NULL", userID, quizID)
}

func (r *repository) Create(ctx context.Context, row *Row) error {
	return r.table.Insert(ctx, row)
}

func (r *repository) Update(ctx context.Context, id string, fields map[string]interface{}) (*Row, error) {
	return r.table.Update(ctx, id, fields)
}

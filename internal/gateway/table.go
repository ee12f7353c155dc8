// Package gateway is the record-oriented persistence layer: filtered select,
// insert-returning-record, update-returning-record and delete over one table,
// keyed by the string column "id".
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"gorm.io/gorm"
)

var ErrNotFound = fmt.Errorf("record %w", apperr.ErrNotFound)

type Table[R any] struct {
	db *gorm.DB
}

func NewTable[R any](db *gorm.DB) *Table[R] {
	return &Table[R]{db: db}
}

// WithTx binds the table to a running transaction.
func (t *Table[R]) WithTx(tx *gorm.DB) *Table[R] {
	return &Table[R]{db: tx}
}

func (t *Table[R]) Select(ctx context.Context, order string, where ...interface{}) ([]R, error) {
	q := t.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	if order != "" {
		q = q.Order(order)
	}
	var out []R
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[R]) Get(ctx context.Context, id string) (*R, error) {
	return t.First(ctx, "id = ?", id)
}

func (t *Table[R]) First(ctx context.Context, query string, args ...interface{}) (*R, error) {
	var rec R
	if err := t.db.WithContext(ctx).Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (t *Table[R]) Exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	n, err := t.Count(ctx, query, args...)
	return n > 0, err
}

func (t *Table[R]) Count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	q := t.db.WithContext(ctx).Model(new(R))
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (t *Table[R]) Insert(ctx context.Context, rec *R) error {
	return t.db.WithContext(ctx).Create(rec).Error
}

// Update applies a partial field map (snake_case column names) and returns
// the stored record.
func (t *Table[R]) Update(ctx context.Context, id string, fields map[string]interface{}) (*R, error) {
	if len(fields) == 0 {
		return t.Get(ctx, id)
	}
	res := t.db.WithContext(ctx).Model(new(R)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *Table[R]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[R]) DeleteWhere(ctx context.Context, query string, args ...interface{}) error {
	return t.db.WithContext(ctx).Where(query, args...).Delete(new(R)).Error
}

package profile

import (
	"context"

	"github.com/saulo-duarte/mindpop-lambda/internal/auth"
	"github.com/saulo-duarte/mindpop-lambda/internal/gateway"
	"gorm.io/gorm"
)

// Repository stores profiles and backs the authenticator.
type Repository struct {
	table *gateway.Table[Row]
}

var _ auth.Accounts = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{table: gateway.NewTable[Row](db)}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	row, err := r.table.First(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	return toAccount(row), nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*auth.Account, error) {
	row, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccount(row), nil
}

func (r *Repository) Create(ctx context.Context, a *auth.Account) error {
	row := &Row{
		Email:        a.Email,
		Name:         a.Name,
		Role:         a.Role,
		PasswordHash: a.PasswordHash,
	}
	if err := r.table.Insert(ctx, row); err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (r *Repository) SetRole(ctx context.Context, id, role string) error {
	_, err := r.table.Update(ctx, id, map[string]interface{}{"role": role})
	return err
}

func toAccount(row *Row) *auth.Account {
	return &auth.Account{
		User: auth.User{
			ID:    row.ID,
			Email: row.Email,
			Role:  row.Role,
			Name:  row.Name,
		},
		PasswordHash: row.PasswordHash,
	}
}

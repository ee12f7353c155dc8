package course

import (
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"gorm.io/gorm"
)

type Container struct {
	Handler    *Handler
	Service    Service
	Repository Repository
}

func NewContainer(db *gorm.DB, bus *store.Bus, dependents ...store.Invalidator) *Container {
	repo := NewRepository(db)
	service := NewService(repo, bus, dependents...)
	handler := NewHandler(service)

	return &Container{
		Handler:    handler,
		Service:    service,
		Repository: repo,
	}
}

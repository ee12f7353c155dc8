package attempt

import (
	"github.com/saulo-duarte/mindpop-lambda/internal/store"
	"gorm.io/gorm"
)

type Container struct {
	Handler    *Handler
	Service    Service
	Repository Repository
}

func NewContainer(db *gorm.DB, bus *store.Bus) *Container {
	repo := NewRepository(db)
	service := NewService(repo, bus)

	return &Container{
		Handler:    NewHandler(service),
		Service:    service,
		Repository: repo,
	}
}

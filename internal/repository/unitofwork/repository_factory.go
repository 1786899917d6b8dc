package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type repositoryFactory struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &repositoryFactory{db: db}
}

// NewUnitOfWork starts outside a transaction; call Begin or use Transaction
// when several writes must land together.
func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &unitOfWork{db: f.db}
}

package unitofwork

import (
	"context"

	"civic-bridge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RepresentativeContactRepository() contract.RepresentativeContactRepository
	ActivityLogRepository() contract.ActivityLogRepository
	ArchivedDocumentRepository() contract.ArchivedDocumentRepository
}

// Transaction runs fn inside a transaction on a fresh unit of work. The
// transaction commits when fn returns nil and rolls back otherwise.
func Transaction(ctx context.Context, f RepositoryFactory, fn func(uow UnitOfWork) error) error {
	uow := f.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

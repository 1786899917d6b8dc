package unitofwork

import (
	"context"
	"errors"

	"civic-bridge-be/internal/repository/contract"
	"civic-bridge-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTransactionStarted = errors.New("transaction already started")
	ErrNoTransaction      = errors.New("no transaction in progress")
)

type unitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// conn is the open transaction, or the pool when none is running.
func (u *unitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionStarted
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil
	return tx.Commit().Error
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.conn())
}

func (u *unitOfWork) RepresentativeContactRepository() contract.RepresentativeContactRepository {
	return implementation.NewRepresentativeContactRepository(u.conn())
}

func (u *unitOfWork) ActivityLogRepository() contract.ActivityLogRepository {
	return implementation.NewActivityLogRepository(u.conn())
}

func (u *unitOfWork) ArchivedDocumentRepository() contract.ArchivedDocumentRepository {
	return implementation.NewArchivedDocumentRepository(u.conn())
}

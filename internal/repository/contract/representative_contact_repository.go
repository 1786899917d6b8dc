package contract

import (
	"context"
	"time"

	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RepresentativeContactRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RepresentativeContact, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RepresentativeContact, error)

	// RecordContact stamps the contact time and bumps the lifetime count,
	// creating the row on first contact.
	RecordContact(ctx context.Context, userId uuid.UUID, representativeId string, at time.Time) (*entity.RepresentativeContact, error)
}

package contract

import (
	"context"

	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)

	// UpdateAddress stores a validated address and marks the profile verified.
	UpdateAddress(ctx context.Context, id uuid.UUID, address string) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, isPro bool) error

	// SaveUserProvider links an OAuth identity to the account.
	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
	FindUserProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error)
}

package repository

import (
	"context"

	"courier-server/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)

	// FindByNameOrEmail returns a user whose stored name equals name or
	// whose stored email equals email. Both arguments must already be
	// lowercase. A nil user with a nil error means no match.
	FindByNameOrEmail(ctx context.Context, name, email string) (*domain.User, error)

	// FindByIdentifier returns a user whose name or email equals the
	// (lowercase) identifier, or ErrNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

package repository

import (
	"context"

	"courier-server/internal/domain"
)

// TokenRepository defines operations for issuing, retrieving and expiring
// stored bearer tokens.
type TokenRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, token *domain.UserToken) (int64, error)

	// Find looks up a token by its signed string. Rows past their expiry
	// are treated as absent and reported as ErrNotFound.
	Find(ctx context.Context, token string) (*domain.UserToken, error)

	// Delete removes a token row. Deleting a non-existent token is not an
	// error.
	Delete(ctx context.Context, token string) error

	// PurgeExpired removes rows past their expiry and reports how many
	// were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

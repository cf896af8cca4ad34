package repository

import (
	"context"

	"courier-server/internal/domain"
)

// MessageRepository defines persistence operations for Message entities.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, message *domain.Message) (int64, error)
}

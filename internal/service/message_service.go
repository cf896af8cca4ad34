package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier-server/internal/domain"
	"courier-server/internal/repository"
)

// ErrRecipientNotFound is returned when the addressed user does not exist.
var ErrRecipientNotFound = errors.New("recipient not found")

// MessageService describes message operations.
type MessageService interface {
	// Send persists a message from the sender (resolved by name or email)
	// to the recipient (resolved by name or email).
	Send(ctx context.Context, from, to, text string) (*domain.Message, error)
}

type messageService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
}

func NewMessageService(users repository.UserRepository, messages repository.MessageRepository) MessageService {
	return &messageService{
		users:    users,
		messages: messages,
	}
}

func (s *messageService) Send(ctx context.Context, from, to, text string) (*domain.Message, error) {
	sender, err := s.users.FindByIdentifier(ctx, strings.ToLower(strings.TrimSpace(from)))
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	recipient, err := s.users.FindByIdentifier(ctx, strings.ToLower(strings.TrimSpace(to)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	message := &domain.Message{
		FromID:    sender.ID,
		ToID:      recipient.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	return message, nil
}

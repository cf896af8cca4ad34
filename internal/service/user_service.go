package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"courier-server/internal/domain"
	"courier-server/internal/repository"
	"courier-server/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown users and wrong passwords
	// so that responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("could not find/verify user with passed credentials")

	// ErrNameTaken, ErrEmailTaken and ErrNameAndEmailTaken report which
	// registration field collided with an existing account.
	ErrNameTaken         = errors.New("username is already in use")
	ErrEmailTaken        = errors.New("email is already in use")
	ErrNameAndEmailTaken = errors.New("username and email are already in use")
)

// RegisterInput carries the registration request fields. Bio and Avatar
// are optional.
type RegisterInput struct {
	Username string
	Email    string
	Lock     string
	Bio      string
	Avatar   string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, identifier, lock string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users   repository.UserRepository
	avatars storage.Service
}

// NewUserService returns a UserService backed by the given repository.
// avatars may be nil, in which case avatar payloads persist inline on the
// user row instead of being offloaded to object storage.
func NewUserService(users repository.UserRepository, avatars storage.Service) UserService {
	return &userService{
		users:   users,
		avatars: avatars,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := ValidateCredentials(in.Username, in.Email, in.Lock); err != nil {
		return nil, err
	}

	name := strings.ToLower(in.Username)
	email := strings.ToLower(in.Email)

	existing, err := s.users.FindByNameOrEmail(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}
	if existing != nil {
		return nil, conflictError(existing, name, email)
	}

	hash, err := argon2id.CreateHash(in.Lock, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatar := in.Avatar
	avatarKey := ""
	if avatar != "" && s.avatars != nil {
		avatarKey = uuid.NewString()
		location, err := s.avatars.Put(ctx, avatarKey, avatarContentType(in.Avatar), []byte(in.Avatar))
		if err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		avatar = location
	}

	user := &domain.User{
		Name:      name,
		Email:     email,
		Lock:      hash,
		Bio:       in.Bio,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if avatarKey != "" {
			// best effort; an orphaned object is harmless
			_ = s.avatars.Delete(ctx, avatarKey)
		}
		if errors.Is(err, repository.ErrConflict) {
			// lost a concurrent registration race; report the field that won
			if existing, probeErr := s.users.FindByNameOrEmail(ctx, name, email); probeErr == nil && existing != nil {
				return nil, conflictError(existing, name, email)
			}
			return nil, ErrNameAndEmailTaken
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, identifier, lock string) (*domain.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || lock == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	match, err := argon2id.ComparePasswordAndHash(lock, user.Lock)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func conflictError(existing *domain.User, name, email string) error {
	switch {
	case existing.Name == name && existing.Email == email:
		return ErrNameAndEmailTaken
	case existing.Name == name:
		return ErrNameTaken
	default:
		return ErrEmailTaken
	}
}

// sanitizeUser strips the password hash before the record leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

// avatarContentType extracts the media type from a data URL payload,
// falling back to an opaque octet stream.
func avatarContentType(avatar string) string {
	if !strings.HasPrefix(avatar, "data:") {
		return "application/octet-stream"
	}
	rest := avatar[len("data:"):]
	if idx := strings.IndexAny(rest, ";,"); idx > 0 {
		return rest[:idx]
	}
	return "application/octet-stream"
}

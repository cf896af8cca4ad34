package service

import (
	"context"
	"sync"
	"time"

	"courier-server/internal/domain"
	"courier-server/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	failCreate error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return 0, f.failCreate
	}
	for _, existing := range f.users {
		if existing.Name == user.Name || existing.Email == user.Email {
			return 0, repository.ErrConflict
		}
	}

	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return user.ID, nil
}

func (f *fakeUserRepo) FindByNameOrEmail(ctx context.Context, name, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Name == name || user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Name == identifier || user.Email == identifier {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*domain.UserToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*domain.UserToken{}}
}

func (f *fakeTokenRepo) Init(ctx context.Context) error { return nil }

func (f *fakeTokenRepo) Create(ctx context.Context, token *domain.UserToken) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	token.ID = f.nextID
	clone := *token
	f.tokens[token.Token] = &clone
	return token.ID, nil
}

func (f *fakeTokenRepo) Find(ctx context.Context, tokenString string) (*domain.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token, ok := f.tokens[tokenString]
	if !ok || !token.ExpiresAt.After(time.Now()) {
		return nil, repository.ErrNotFound
	}
	clone := *token
	return &clone, nil
}

func (f *fakeTokenRepo) Delete(ctx context.Context, tokenString string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.tokens, tokenString)
	return nil
}

func (f *fakeTokenRepo) PurgeExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var purged int64
	for key, token := range f.tokens {
		if !token.ExpiresAt.After(time.Now()) {
			delete(f.tokens, key)
			purged++
		}
	}
	return purged, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages []*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) Init(ctx context.Context) error { return nil }

func (f *fakeMessageRepo) Create(ctx context.Context, message *domain.Message) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	message.ID = f.nextID
	clone := *message
	f.messages = append(f.messages, &clone)
	return message.ID, nil
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.TokenRepository   = (*fakeTokenRepo)(nil)
	_ repository.MessageRepository = (*fakeMessageRepo)(nil)
)

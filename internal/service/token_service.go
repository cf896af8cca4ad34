package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"courier-server/internal/domain"
	"courier-server/internal/repository"
)

// ErrBadToken is returned when a presented token fails cryptographic
// validation (bad signature, malformed, expired).
var ErrBadToken = errors.New("bad token")

// ProfileClaims is the signed token payload: a snapshot of the owner's
// public profile plus the registered claims. The password hash is never
// part of it.
type ProfileClaims struct {
	jwt.RegisteredClaims
	CreatedAt int64  `json:"createdAt"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// TokenService signs, validates and tracks issued bearer tokens. Signature
// expiration decides "invalid"; row presence in the store decides "active".
type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (token string, expiresIn int, err error)
	Validate(token string) (*ProfileClaims, error)
	Active(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type tokenService struct {
	tokens     repository.TokenRepository
	signingKey []byte
	expiration time.Duration
}

func NewTokenService(tokens repository.TokenRepository, signingKey []byte, expirationSeconds int) TokenService {
	return &tokenService{
		tokens:     tokens,
		signingKey: signingKey,
		expiration: time.Duration(expirationSeconds) * time.Second,
	}
}

// Issue signs an HS256 token carrying the user's profile snapshot and
// persists the matching store row with the same lifetime.
func (s *tokenService) Issue(ctx context.Context, user *domain.User) (string, int, error) {
	now := time.Now()
	claims := &ProfileClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		CreatedAt: user.CreatedAt.Unix(),
		Name:      user.Name,
		Email:     user.Email,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	if _, err := s.tokens.Create(ctx, &domain.UserToken{
		UserID:    user.ID,
		Token:     signed,
		CreatedAt: now.UTC(),
		ExpiresAt: now.UTC().Add(s.expiration),
	}); err != nil {
		return "", 0, fmt.Errorf("persist token: %w", err)
	}

	return signed, int(s.expiration / time.Second), nil
}

// Validate verifies signature and expiration and returns the decoded
// payload; any failure collapses to ErrBadToken.
func (s *tokenService) Validate(tokenString string) (*ProfileClaims, error) {
	claims := &ProfileClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadToken
	}
	return claims, nil
}

// Active reports whether the token still has a row in the store. A
// cryptographically valid token whose row is gone must be rejected.
func (s *tokenService) Active(ctx context.Context, tokenString string) (bool, error) {
	if _, err := s.tokens.Find(ctx, tokenString); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *tokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.PurgeExpired(ctx)
}

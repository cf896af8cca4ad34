package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"courier-server/internal/domain"
	"courier-server/internal/repository"
)

// expires_at is kept as unix seconds so expiry comparisons stay plain
// integer comparisons in SQL.
const createUserTokensTable = `
CREATE TABLE IF NOT EXISTS user_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	token TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	expires_at INTEGER NOT NULL
);
`

const createUserTokensExpiryIndex = `
CREATE INDEX IF NOT EXISTS idx_user_tokens_expires_at ON user_tokens (expires_at);
`

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUserTokensTable); err != nil {
		return fmt.Errorf("create user_tokens table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createUserTokensExpiryIndex); err != nil {
		return fmt.Errorf("create user_tokens expiry index: %w", err)
	}
	return nil
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.UserToken) (int64, error) {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_tokens (user_id, token, created_at, expires_at)
VALUES (?, ?, ?, ?)`,
		token.UserID,
		token.Token,
		token.CreatedAt,
		token.ExpiresAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert user token: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user token last insert id: %w", err)
	}
	token.ID = id
	return id, nil
}

func (r *TokenRepository) Find(ctx context.Context, tokenString string) (*domain.UserToken, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, token, created_at, expires_at
FROM user_tokens
WHERE token = ?`,
		tokenString,
	)

	var (
		token   domain.UserToken
		expires int64
	)
	if err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.CreatedAt,
		&expires,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user token: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user token: %w", err)
	}

	token.ExpiresAt = time.Unix(expires, 0).UTC()
	if !token.ExpiresAt.After(time.Now()) {
		// lazily evict rows the purge loop has not reached yet
		_ = r.Delete(ctx, tokenString)
		return nil, fmt.Errorf("user token: %w", repository.ErrNotFound)
	}

	return &token, nil
}

func (r *TokenRepository) Delete(ctx context.Context, tokenString string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE token = ?`, tokenString); err != nil {
		return fmt.Errorf("delete user token: %w", err)
	}
	return nil
}

func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_tokens WHERE expires_at <= ?`,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return purged, nil
}

package domain

import "time"

// UserToken ties an issued bearer token to its owner. A token is active
// only while its row exists; expiry removes the row independently of the
// expiration claim embedded in the token itself.
type UserToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

package domain

import "time"

// User represents a registered account. Name and email are stored
// lowercase; Lock holds the password hash, never the plaintext.
type User struct {
	ID        int64
	Name      string
	Email     string
	Lock      string
	Bio       string
	Avatar    string
	CreatedAt time.Time
}

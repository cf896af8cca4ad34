package domain

import "time"

// Message is a stored message between two users.
type Message struct {
	ID        int64
	FromID    int64
	ToID      int64
	Text      string
	CreatedAt time.Time
}

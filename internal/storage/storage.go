package storage

import "context"

// Service stores small binary payloads (avatar image data) in remote
// object storage.
type Service interface {
	// Put writes data under key and returns the object location.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}

package session

import "context"

// Repository is the durable local key-value store backing the session.
// Implementations return common.ErrNotFound when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

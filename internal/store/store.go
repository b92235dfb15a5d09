package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	ErrEmptyKey = errors.New("key cannot be empty")
)

// Store is the durable key-value collaborator used for session snapshots and
// settings. Get reports a missing key with ok=false rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetOrDefault returns the stored value for key, or def when the key is
// missing or unreadable.
func GetOrDefault(ctx context.Context, s Store, key string, def []byte) []byte {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	return v
}

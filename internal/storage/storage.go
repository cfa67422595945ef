// Package storage is the persisted key-value port behind the user list
// and session records. Values are opaque strings; callers own the encoding.
package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error
}

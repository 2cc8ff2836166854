package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been saved.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed durable store holding one serialized record per key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

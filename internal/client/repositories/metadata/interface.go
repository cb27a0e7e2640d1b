// Package metadata persists small client-side key/value state: session
// credentials, the signed-in username and the cached profile.
package metadata

import (
	"context"
)

// Repository is a key/value store. Get returns (nil, nil) for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// SetMany, DeleteMany and Replace apply all changes or none.
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
	// Replace deletes the remove keys, then writes values.
	Replace(ctx context.Context, values map[string][]byte, remove ...string) error
}

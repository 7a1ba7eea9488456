package store

import "context"

// KV is the key-value persistence boundary. Values are JSON documents;
// (de)serialization happens inside the backend. Get reports whether the key
// existed so callers can distinguish "absent" from a zero value.
type KV interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

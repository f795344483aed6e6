package store

import "context"

// KV is the contract both the redis-backed and in-memory stores satisfy.
// Values are opaque bytes; callers own serialization.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

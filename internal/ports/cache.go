package ports

import (
	"context"
	"time"
)

// Cache is a small byte-value cache with TTL semantics. A Get miss returns
// nil bytes and no error.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
	Health(ctx context.Context) error
}

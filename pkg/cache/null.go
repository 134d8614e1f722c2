package cache

import (
	"context"
	"time"
)

// NullCache is the backend behind --no-cache: every lookup misses, so each
// render recomputes its layout, and stores are dropped.
type NullCache struct{}

// NewNullCache returns a cache that holds no artifacts.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every artifact key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the rendered artifact.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)

package cache

import (
	"context"
	"time"
)

var _ Cache = (*NullCache)(nil)

// NullCache stores nothing; every Get misses. The CLI uses it for
// --no-cache and the "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

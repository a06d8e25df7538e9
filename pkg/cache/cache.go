// Package cache stores rendered icon artifacts.
//
// Rendering an icon is cheap, but the HTTP server renders the same handful of
// icons with the same parameters over and over. [Cache] keeps the encoded
// output keyed by icon name, format and customisation parameters.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI and single servers
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache with a TTL index
//
// Icon sets themselves are never cached here; only rendered output is.
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes the parameters so that keys
// stay short and filesystem safe; [ScopedKeyer] adds a prefix for running
// several tenants or versions against one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of 0 stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey returns the key for icon rendered in format with params.
	RenderKey(icon, format string, params map[string]string) string
}

// DefaultKeyer hashes render parameters into keys of the form
// "render:<icon>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements [Keyer]. Parameter order does not affect the key.
func (DefaultKeyer) RenderKey(icon, format string, params map[string]string) string {
	return hashKey("render:"+icon, format, params)
}

// Package cache stores assembled graph snapshots between runs.
//
// A [Cache] is a plain byte store keyed by string. Three backends exist:
//
//   - [FileCache]: one file per key in a directory, or a single explicit file
//   - [RedisCache]: a shared Redis instance, keys namespaced
//   - [NullCache]: stores nothing (caching disabled)
//
// What goes into the cache is decided by the snapshot codec in this package:
// [EncodeSnapshot] turns a layered graph into a versioned, compressed
// envelope and [DecodeSnapshot] reverses it, reporting CACHE_CORRUPT for
// anything it cannot trust.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
//
// Get reports a miss with (nil, false, nil). A non-nil error from Get means
// the backend failed or the stored entry was unreadable; callers treat both
// as a miss after logging.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey returns the key of the snapshot built from sources sharing
	// prefix.
	GraphKey(prefix string) string
}

// DefaultKeyer produces keys of the form "<prefix>_graph".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(prefix string) string { return prefix + "_graph" }

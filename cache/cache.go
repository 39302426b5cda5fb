// Package cache defines the archive cache used to avoid re-downloading
// remote bundles. Implementations live in the boltdb and leveldb
// sub-packages; which one a user picks is a matter of taste and of what
// their deployment already depends on.
package cache

import "time"

// Cache is a persistent byte store keyed by archive location. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the cached bytes for key. The bool reports whether the
	// key was present; absence is not an error.
	Get(key string) ([]byte, bool, error)
	// Put stores data under key, recording the current time as its fetch
	// time. An existing entry is overwritten.
	Put(key string, data []byte) error
	// FetchedAt returns when key was last Put. The bool reports presence.
	FetchedAt(key string) (time.Time, bool, error)
	// Close releases the underlying store.
	Close() error
}

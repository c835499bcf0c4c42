// Package cache stores parsed drawings and rendered artifacts between runs.
//
// A [Cache] is a plain byte store with per-entry TTLs. Keys are built by a
// [Keyer] so that every backend (files on disk, Redis, MongoDB) sees the same
// key space:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(modelHash, cache.ArtifactKeyOpts{Format: "png", Width: 800, Height: 800})
//
// Backends never interpret the stored bytes.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for each kind of cached entry.
const (
	TTLModel    = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
	TTLHTTP     = 24 * time.Hour
)

// Cache is a byte store keyed by strings.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

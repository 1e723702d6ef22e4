// Package cache stores rendered page artifacts between runs.
//
// Rendering a page is cheap, but converting SVG to PDF or PNG shells out to
// rsvg-convert, which dominates a twelve-month run. Since every stage is
// deterministic for a fixed seed and configuration, artifacts can be keyed by
// a hash of their inputs and reused. Two backends are provided: a file cache
// for normal CLI use and a null cache for --refresh runs and tests.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the storage interface for rendered artifacts.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores the
	// value without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// TTLPage is how long rendered page artifacts stay valid. Pages are fully
// determined by their key, so the TTL only bounds disk growth.
const TTLPage = 30 * 24 * time.Hour

// PageKeyOpts are the render parameters that distinguish otherwise identical
// pages.
type PageKeyOpts struct {
	Format string
	Style  string
	Scale  float64
}

// PageKey builds the cache key for one rendered month page. pageHash is the
// content hash of the serialized page layout (grid plus ornaments), so any
// change in seed, month, emphasis, or geometry produces a new key.
func PageKey(pageHash string, opts PageKeyOpts) string {
	return hashKey("page", pageHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Package cache provides the render-output cache.
//
// Rendering the same recipe with the same colors and the same source
// files always produces the same bytes, so the pipeline can skip the
// whole decode/recolor/composite/encode sequence on a hit. Keys are
// derived from the recipe, the resolved color mapping, and content
// hashes of the source files, so any change invalidates naturally. The
// cache stores only derived bytes; the renderer itself owns no state
// across calls.
//
// Three backends are provided: FileCache for CLI usage, RedisCache for
// shared deployments, and NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLRender is how long cached render outputs stay valid. Keys already
// cover every render input, so a long TTL is safe; the TTL only bounds
// disk growth for keys that are never requested again.
const TTLRender = 30 * 24 * time.Hour

// Cache stores encoded render outputs keyed by render fingerprint.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Keyer derives cache keys from render inputs.
type Keyer interface {
	// RenderKey builds the key for one render: the recipe fingerprint,
	// the color-mapping fingerprint, and the content hashes of the
	// layer source files, in layer order.
	RenderKey(recipeFP, mappingFP string, sourceHashes []string) string
}

// DefaultKeyer hashes all inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey implements Keyer.
func (k *DefaultKeyer) RenderKey(recipeFP, mappingFP string, sourceHashes []string) string {
	return hashKey("render", recipeFP, mappingFP, sourceHashes)
}

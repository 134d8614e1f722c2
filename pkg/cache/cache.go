package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key. Implementations must be safe for
// concurrent use.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs.
const (
	// ArtifactTTL applies to rendered outputs. Artifacts are keyed by
	// content hash, so a long TTL never serves stale output.
	ArtifactTTL = 7 * 24 * time.Hour
)

// ArtifactKeyOpts holds every input besides the model that affects a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Direction string  `json:"direction,omitempty"`
	Config    string  `json:"config,omitempty"` // hash of the effective config
	Title     string  `json:"title,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the model
	// with the given content hash.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the model hash together with the options.
func (DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}

// ArtifactKey is a shorthand for the default keyer.
func ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return DefaultKeyer{}.ArtifactKey(modelHash, opts)
}

package shared

import (
	"context"
	"time"
)

// IdempotencyStore guards against repeated processing of the same request key
type IdempotencyStore interface {
	// Claim marks key as taken for ttl.
	// Returns true if the key was newly claimed, false if it was already taken.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a claimed key so the request can be retried
	Release(ctx context.Context, key string) error
}

// Package cache holds the stores that remember the outcome of money-moving
// requests so that a retried Idempotency-Key replays instead of paying twice.
package cache

import (
	"context"
	"time"
)

// CachedResponse is the stored outcome of a completed request
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	// Fingerprint identifies the request (method, path, body hash) the key
	// was first used with.
	Fingerprint string `json:"fingerprint"`
}

// Release frees an in-flight reservation
type Release func(ctx context.Context) error

// IdempotencyStore remembers responses keyed by idempotency key
type IdempotencyStore interface {
	// Get returns the stored response for key, or nil when there is none
	Get(ctx context.Context, key string) (*CachedResponse, error)
	// Acquire reserves key for an in-flight request. It fails with
	// shared.ErrRequestInProgress while another holder has it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
	// Put stores the response for key for ttl
	Put(ctx context.Context, key string, resp *CachedResponse, ttl time.Duration) error
	Close() error
}

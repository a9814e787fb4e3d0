// Package provider defines the remote-tier abstraction used by bucache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// or appended metadata, no re-encoding, no mutation). If a store performs
// internal transforms (e.g., compression), they MUST be fully reversed so
// that the bytes returned by Get are identical to the bytes provided to Set.
//
// A provider is allowed to be absent or broken at any moment; bucache treats
// every returned error as a degradation signal and keeps serving from its
// local tier. Implementations should bound each operation in time rather
// than block.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks an operation skipped because the remote store is
// known to be down and its retry cooldown has not elapsed. Callers use it
// to log quietly; a fresh transport error carries the underlying cause
// instead.
var ErrUnavailable = errors.New("provider: remote unavailable")

// Info is a snapshot of remote-side figures for stats reporting.
type Info struct {
	Keys       int64  // number of keys visible to the store
	UsedMemory string // human-readable memory figure, "" when unknown
}

// Provider is a networked byte store with TTLs. Must be safe for concurrent
// use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Keys returns the keys currently matching pattern (glob syntax).
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Stats reports remote-side figures.
	Stats(ctx context.Context) (Info, error)

	// Close releases resources.
	Close(ctx context.Context) error
}

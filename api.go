package bucache

import (
	"context"
	"time"

	c "github.com/bulib/bucache/codec"
	pr "github.com/bulib/bucache/provider"
)

// Cache is the two-tier cache API. V is the caller's value type; serialization
// is handled by a pluggable Codec[V].
//
// Reads consult the remote tier first and fall back to the in-process tier;
// writes land in both, and only the in-process write is load-bearing. Remote
// faults never surface from these methods.
type Cache[V any] interface {
	Enabled() bool
	Close(ctx context.Context) error

	// Key derives "<prefix>:<namespace>:<hash>" under the configured prefix.
	Key(namespace string, f Filters) (string, error)

	// Generic operations on derived keys
	Get(ctx context.Context, key string) (v V, ok bool, err error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// InvalidatePattern deletes every key matching pattern in both tiers and
	// returns the number of deletions performed. A key held by both tiers
	// counts twice; the tiers keep no shared registry to dedupe against.
	InvalidatePattern(ctx context.Context, pattern string) (int, error)

	// Domain surface: facilities, rooms, bookings.
	// A zero ttl selects the namespace policy (see DefaultTTLs).
	GetFacilities(ctx context.Context, f Filters) (v V, ok bool, err error)
	SetFacilities(ctx context.Context, value V, f Filters, ttl time.Duration) error
	GetRooms(ctx context.Context, facilityID string, f Filters) (v V, ok bool, err error)
	SetRooms(ctx context.Context, facilityID string, value V, f Filters, ttl time.Duration) error
	GetBookings(ctx context.Context, f Filters) (v V, ok bool, err error)
	SetBookings(ctx context.Context, value V, f Filters, ttl time.Duration) error

	InvalidateFacilities(ctx context.Context) (int, error)
	// InvalidateRooms scopes to one facility; an empty id clears every room entry.
	InvalidateRooms(ctx context.Context, facilityID string) (int, error)
	InvalidateBookings(ctx context.Context) (int, error)

	// Stats reports both tiers; remote probe failures degrade to a note
	// inside the snapshot instead of an error.
	Stats(ctx context.Context) Stats
}

// Options tune the cache. The zero value yields a JSON-encoded, local-only
// cache under the "bulib" prefix.
type Options[V any] struct {
	AppPrefix string      // key prefix; "" => "bulib"
	Remote    pr.Provider // optional shared tier; nil => local-only
	Codec     c.Codec[V]  // if nil, codec.JSON[V] is used

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	DefaultTTL    time.Duration            // for namespaces outside the policy table; 0 => 10m
	TTLs          map[string]time.Duration // per-namespace overrides of DefaultTTLs
	SweepInterval time.Duration            // local sweep cadence; 0 => 1m, < 0 disables
	Disabled      bool                     // default false (enabled)
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}

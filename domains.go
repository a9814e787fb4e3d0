package bucache

import (
	"context"
	"time"

	"github.com/bulib/bucache/internal/glob"
)

// Wire namespaces. "buildings" is the stored name for the facilities domain;
// the API speaks of facilities.
const (
	NamespaceFacilities = "buildings"
	NamespaceRooms      = "rooms"
	NamespaceBookings   = "bookings"
)

// DefaultTTLs is the freshness policy per namespace: facility lists move
// slowly, room inventories change within an hour, bookings churn constantly.
// Options.TTLs overrides individual entries.
var DefaultTTLs = map[string]time.Duration{
	NamespaceFacilities: 600 * time.Second,
	NamespaceRooms:      300 * time.Second,
	NamespaceBookings:   60 * time.Second,
}

// roomsNamespace scopes room entries by facility so one facility's rooms can
// be invalidated without touching the rest: "rooms:mug". Hash segments alone
// could never be matched back to a facility.
func roomsNamespace(facilityID string) string {
	if facilityID == "" {
		return NamespaceRooms
	}
	return NamespaceRooms + ":" + facilityID
}

// roomFilters copies f with the facility id folded in, so equal filters for
// different facilities still hash apart. The caller's map is never touched.
func roomFilters(facilityID string, f Filters) Filters {
	out := make(Filters, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	if facilityID != "" {
		out["facility_id"] = facilityID
	}
	return out
}

func (c *cache[V]) GetFacilities(ctx context.Context, f Filters) (V, bool, error) {
	var zero V
	key, err := c.Key(NamespaceFacilities, f)
	if err != nil {
		return zero, false, err
	}
	return c.Get(ctx, key)
}

func (c *cache[V]) SetFacilities(ctx context.Context, value V, f Filters, ttl time.Duration) error {
	key, err := c.Key(NamespaceFacilities, f)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.ttlFor(NamespaceFacilities)
	}
	return c.Set(ctx, key, value, ttl)
}

func (c *cache[V]) GetRooms(ctx context.Context, facilityID string, f Filters) (V, bool, error) {
	var zero V
	key, err := c.Key(roomsNamespace(facilityID), roomFilters(facilityID, f))
	if err != nil {
		return zero, false, err
	}
	return c.Get(ctx, key)
}

func (c *cache[V]) SetRooms(ctx context.Context, facilityID string, value V, f Filters, ttl time.Duration) error {
	key, err := c.Key(roomsNamespace(facilityID), roomFilters(facilityID, f))
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.ttlFor(NamespaceRooms)
	}
	return c.Set(ctx, key, value, ttl)
}

func (c *cache[V]) GetBookings(ctx context.Context, f Filters) (V, bool, error) {
	var zero V
	key, err := c.Key(NamespaceBookings, f)
	if err != nil {
		return zero, false, err
	}
	return c.Get(ctx, key)
}

func (c *cache[V]) SetBookings(ctx context.Context, value V, f Filters, ttl time.Duration) error {
	key, err := c.Key(NamespaceBookings, f)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.ttlFor(NamespaceBookings)
	}
	return c.Set(ctx, key, value, ttl)
}

func (c *cache[V]) InvalidateFacilities(ctx context.Context) (int, error) {
	return c.InvalidatePattern(ctx, c.namespacePattern(NamespaceFacilities))
}

// InvalidateRooms clears one facility's room entries, or every room entry
// when facilityID is empty. The id is glob-escaped so it always matches
// literally.
func (c *cache[V]) InvalidateRooms(ctx context.Context, facilityID string) (int, error) {
	ns := NamespaceRooms
	if facilityID != "" {
		ns = NamespaceRooms + ":" + glob.Escape(facilityID)
	}
	return c.InvalidatePattern(ctx, c.namespacePattern(ns))
}

func (c *cache[V]) InvalidateBookings(ctx context.Context) (int, error) {
	return c.InvalidatePattern(ctx, c.namespacePattern(NamespaceBookings))
}

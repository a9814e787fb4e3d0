// Package bucache implements the caching layer of a room-booking proxy: a
// two-tier (remote + in-process) read-through/write-through cache keyed by
// deterministic hashes of request filters, with TTL expiry and glob-pattern
// invalidation grouped by data domain.
//
// Components:
//   - Provider: remote byte store with TTL (e.g. Redis). Optional; faults
//     degrade the cache to its in-process tier and are never surfaced.
//   - memstore: the in-process tier. Always present, never fails.
//   - Codec[V]: (de)serializes V <-> []byte. Both tiers store encoded bytes.
//
// The in-process tier is per-replica: instances of this cache share state
// only through the remote tier, and no coherence is attempted between the
// local tiers of different processes. While the remote tier is down each
// replica serves from whatever its own local tier holds.
//
// Keys:
//
//	<prefix>:<namespace>:<hash>            e.g. bulib:rooms:9f3a21c0
//	<prefix>:rooms:<facility>:<hash>       facility-scoped room entries
//
// The hash is the first 8 hex chars of SHA-256 over the canonical JSON of
// the request filters, so equal filter mappings always meet the same entry.
//
// Typical use:
//
//	cache, _ := bucache.New[[]Room](bucache.Options[[]Room]{Remote: rp})
//	defer cache.Close(ctx)
//
//	if rooms, ok, _ := cache.GetRooms(ctx, "mug", filters); ok {
//	    return rooms
//	}
//	rooms := fetchFromUpstream(ctx, "mug", filters)
//	_ = cache.SetRooms(ctx, "mug", rooms, filters, 0) // 0 => policy TTL
package bucache

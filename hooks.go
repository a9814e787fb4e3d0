package bucache

// Tier labels passed to Hooks.Hit.
const (
	TierRemote = "remote"
	TierLocal  = "local"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A read was served from the given tier ("remote" or "local").
	Hit(key, tier string)

	// A read found nothing live in either tier.
	Miss(key string)

	// An entry was deleted by the cache on read.
	// reason ∈ {"decode_error"}
	SelfHeal(key, reason string)

	// A remote operation failed and was absorbed; the cache kept serving
	// from the local tier. op ∈ {"get", "set", "del", "keys", "stats"}
	RemoteDegraded(op string, err error)

	// A pattern invalidation finished. removed counts deletions across both
	// tiers, so a key held in both counts twice.
	Invalidated(pattern string, removed int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string, string)           {}
func (NopHooks) Miss(string)                  {}
func (NopHooks) SelfHeal(string, string)      {}
func (NopHooks) RemoteDegraded(string, error) {}
func (NopHooks) Invalidated(string, int)      {}

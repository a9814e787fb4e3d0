package bucache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	c "github.com/bulib/bucache/codec"
	"github.com/bulib/bucache/internal/glob"
	"github.com/bulib/bucache/memstore"
	pr "github.com/bulib/bucache/provider"
)

const defaultSweep = time.Minute

type cache[V any] struct {
	prefix  string
	remote  pr.Provider // nil => local-only
	local   *memstore.Store
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	enabled bool

	defaultTTL time.Duration
	ttls       map[string]time.Duration
}

var _ Cache[struct{}] = (*cache[struct{}])(nil)

func newCache[V any](opts Options[V]) (*cache[V], error) {
	cc := &cache[V]{
		remote:  opts.Remote,
		enabled: !opts.Disabled,
	}

	// defaults
	cc.prefix = coalesce[string](opts.AppPrefix, DefaultAppPrefix)
	cc.codec = coalesce[c.Codec[V]](opts.Codec, c.JSON[V]{})
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.defaultTTL = coalesce[time.Duration](opts.DefaultTTL, 10*time.Minute)

	cc.ttls = make(map[string]time.Duration, len(DefaultTTLs)+len(opts.TTLs))
	for ns, d := range DefaultTTLs {
		cc.ttls[ns] = d
	}
	for ns, d := range opts.TTLs {
		cc.ttls[ns] = d
	}

	sweep := coalesce[time.Duration](opts.SweepInterval, defaultSweep)
	if !cc.enabled {
		sweep = -1
	}
	cc.local = memstore.New(sweep)

	return cc, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Close(ctx context.Context) error {
	c.local.Close()
	if c.remote != nil {
		return c.remote.Close(ctx)
	}
	return nil
}

// ttlFor resolves the freshness policy for a namespace.
func (c *cache[V]) ttlFor(ns string) time.Duration {
	if d, ok := c.ttls[ns]; ok {
		return d
	}
	return c.defaultTTL
}

// Get consults the remote tier first so replicas observe each other's
// writes, then falls back to the in-process copy.
func (c *cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !c.enabled {
		return zero, false, nil
	}

	if c.remote != nil {
		raw, ok, err := c.remote.Get(ctx, key)
		switch {
		case err != nil:
			c.degraded("get", key, err)
		case ok:
			v, derr := c.codec.Decode(raw)
			if derr == nil {
				c.hooks.Hit(key, TierRemote)
				return v, true, nil
			}
			// another writer left bytes we cannot decode; drop them and
			// keep going on the local tier
			c.hooks.SelfHeal(key, "decode_error")
			if _, delErr := c.remote.Del(ctx, key); delErr != nil {
				c.degraded("del", key, delErr)
			}
		}
	}

	raw, ok := c.local.Get(key)
	if !ok {
		c.hooks.Miss(key)
		return zero, false, nil
	}
	v, err := c.codec.Decode(raw)
	if err != nil {
		c.local.Delete(key)
		c.hooks.SelfHeal(key, "decode_error")
		c.hooks.Miss(key)
		return zero, false, nil
	}
	c.hooks.Hit(key, TierLocal)
	return v, true, nil
}

// Set encodes once and writes through both tiers. The local write is the one
// that must land; the remote write is best-effort.
func (c *cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	raw, err := c.codec.Encode(value)
	if err != nil {
		return &UnsupportedValueError{Key: key, Err: err}
	}

	c.local.Set(key, raw, ttl)
	if c.remote != nil {
		if err := c.remote.Set(ctx, key, raw, ttl); err != nil {
			c.degraded("set", key, err)
		}
	}
	return nil
}

func (c *cache[V]) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	c.local.Delete(key)
	if c.remote != nil {
		if _, err := c.remote.Del(ctx, key); err != nil {
			c.degraded("del", key, err)
		}
	}
	return nil
}

// InvalidatePattern deletes matching keys in both tiers. Remote candidates
// are re-filtered through the same compiled matcher the local tier uses, so
// the two tiers cannot disagree on what a pattern covers.
func (c *cache[V]) InvalidatePattern(ctx context.Context, pattern string) (int, error) {
	if !c.enabled {
		return 0, nil
	}
	match, err := glob.Compile(pattern)
	if err != nil {
		return 0, err
	}

	var (
		remoteKeys []string
		localKeys  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	if c.remote != nil {
		g.Go(func() error {
			keys, err := c.remote.Keys(gctx, pattern)
			if err != nil {
				c.degraded("keys", pattern, err)
				return nil
			}
			remoteKeys = keys
			return nil
		})
	}
	g.Go(func() error {
		localKeys = c.local.Keys(match)
		return nil
	})
	_ = g.Wait()

	removed := 0
	if len(remoteKeys) > 0 {
		targets := remoteKeys[:0]
		for _, k := range remoteKeys {
			if match(k) {
				targets = append(targets, k)
			}
		}
		if len(targets) > 0 {
			n, err := c.remote.Del(ctx, targets...)
			if err != nil {
				c.degraded("del", pattern, err)
			} else {
				removed += int(n)
			}
		}
	}
	for _, k := range localKeys {
		if c.local.Delete(k) {
			removed++
		}
	}

	c.hooks.Invalidated(pattern, removed)
	c.log.Debug("invalidated pattern", Fields{"pattern": pattern, "removed": removed})
	return removed, nil
}

// degraded records an absorbed remote failure. Known-down providers answer
// with ErrUnavailable and log quietly; anything else is worth a warning.
func (c *cache[V]) degraded(op, key string, err error) {
	c.hooks.RemoteDegraded(op, err)
	if errors.Is(err, pr.ErrUnavailable) {
		c.log.Debug("remote unavailable", Fields{"op": op, "key": key})
		return
	}
	c.log.Warn("remote operation failed", Fields{"op": op, "key": key, "err": err})
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/bulib/bucache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

const (
	defaultOpTimeout = 2 * time.Second
	defaultCooldown  = 5 * time.Second

	scanCount = 256
)

// Redis adapts a go-redis client to the provider contract.
//
// Failures mark the provider down for RetryCooldown; until that elapses
// every call returns provider.ErrUnavailable without touching the network.
// The first call after the cooldown retries for real, so a recovered server
// is picked up lazily with no reconnect loop.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	opTimeout   time.Duration
	cooldown    time.Duration

	// unix nanos until which the provider is considered down; 0 = healthy
	downUntil atomic.Int64
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client

	OpTimeout     time.Duration // per-operation deadline; 0 => 2s
	RetryCooldown time.Duration // down window after a failure; 0 => 5s
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	p := &Redis{
		rdb:         cfg.Client,
		closeClient: cfg.CloseClient,
		opTimeout:   cfg.OpTimeout,
		cooldown:    cfg.RetryCooldown,
	}
	if p.opTimeout <= 0 {
		p.opTimeout = defaultOpTimeout
	}
	if p.cooldown <= 0 {
		p.cooldown = defaultCooldown
	}
	return p, nil
}

func (p *Redis) ready() error {
	if d := p.downUntil.Load(); d != 0 && time.Now().UnixNano() < d {
		return pr.ErrUnavailable
	}
	return nil
}

func (p *Redis) healthy() { p.downUntil.Store(0) }

func (p *Redis) failed(err error) error {
	p.downUntil.Store(time.Now().Add(p.cooldown).UnixNano())
	return err
}

func (p *Redis) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.opTimeout)
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := p.ready(); err != nil {
		return nil, false, err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		p.healthy()
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, p.failed(err)
	}
	p.healthy()
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := p.ready(); err != nil {
		return err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	if ttl <= 0 {
		ttl = 0 // non-positive TTLs mean "no expiry" per provider contract
	}
	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return p.failed(err)
	}
	p.healthy()
	return nil
}

func (p *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	if err := p.ready(); err != nil {
		return 0, err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	n, err := p.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, p.failed(err)
	}
	p.healthy()
	return n, nil
}

// Keys walks the keyspace with SCAN rather than KEYS so a large database
// never blocks the server on our account.
func (p *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	var keys []string
	iter := p.rdb.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, p.failed(err)
	}
	p.healthy()
	return keys, nil
}

func (p *Redis) Ping(ctx context.Context) error {
	if err := p.ready(); err != nil {
		return err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return p.failed(err)
	}
	p.healthy()
	return nil
}

func (p *Redis) Stats(ctx context.Context) (pr.Info, error) {
	if err := p.ready(); err != nil {
		return pr.Info{}, err
	}
	ctx, cancel := p.opCtx(ctx)
	defer cancel()

	n, err := p.rdb.DBSize(ctx).Result()
	if err != nil {
		return pr.Info{}, p.failed(fmt.Errorf("dbsize: %w", err))
	}
	mem, err := p.rdb.Info(ctx, "memory").Result()
	if err != nil {
		return pr.Info{}, p.failed(fmt.Errorf("info memory: %w", err))
	}
	p.healthy()
	return pr.Info{Keys: n, UsedMemory: memoryHuman(mem)}, nil
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// memoryHuman pulls used_memory_human out of an INFO memory section.
func memoryHuman(info string) string {
	for _, line := range strings.Split(info, "\n") {
		if v, ok := strings.CutPrefix(line, "used_memory_human:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

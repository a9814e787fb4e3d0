package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/bulib/bucache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ReadEvery    uint64 // hit/miss events
	DegradeEvery uint64 // absorbed remote failures
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	readCtr    atomic.Uint64
	degradeCtr atomic.Uint64
}

var _ bucache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(key, tier string) {
	if h.l == nil || !sample(h.opts.ReadEvery, &h.readCtr) {
		return
	}
	h.l.Debug("bucache.hit",
		"key", h.redact(key),
		"tier", tier)
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.ReadEvery, &h.readCtr) {
		return
	}
	h.l.Debug("bucache.miss",
		"key", h.redact(key))
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("bucache.self_heal",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) RemoteDegraded(op string, err error) {
	if h.l == nil || !sample(h.opts.DegradeEvery, &h.degradeCtr) {
		return
	}
	h.l.Warn("bucache.remote_degraded",
		"op", op,
		"err", err)
}

func (h *Hooks) Invalidated(pattern string, removed int) {
	if h.l == nil {
		return
	}
	h.l.Info("bucache.invalidated",
		"pattern", pattern,
		"removed", removed)
}

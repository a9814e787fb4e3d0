// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/bulib/bucache"
//	"github.com/bulib/bucache/hooks/async"
//	"github.com/bulib/bucache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ReadEvery:    100, // sample logs: ~every 100th hit/miss
//	    DegradeEvery: 1,   // log every absorbed remote failure
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := bucache.New[Room](bucache.Options[Room]{
//	    Remote: provider,
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/bulib/bucache"
)

type Hooks struct {
	inner bucache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ bucache.Hooks = (*Hooks)(nil)

func New(inner bucache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(key, tier string)     { h.try(func() { h.inner.Hit(key, tier) }) }
func (h *Hooks) Miss(key string)          { h.try(func() { h.inner.Miss(key) }) }
func (h *Hooks) SelfHeal(key, r string)   { h.try(func() { h.inner.SelfHeal(key, r) }) }
func (h *Hooks) Invalidated(p string, n int) {
	h.try(func() { h.inner.Invalidated(p, n) })
}
func (h *Hooks) RemoteDegraded(op string, err error) {
	h.try(func() { h.inner.RemoteDegraded(op, err) })
}

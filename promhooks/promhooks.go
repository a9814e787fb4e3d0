// Package promhooks exports cache activity as Prometheus metrics through the
// bucache.Hooks interface.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bulib/bucache"
)

type Hooks struct {
	hits        *prometheus.CounterVec
	misses      prometheus.Counter
	selfHeals   *prometheus.CounterVec
	remoteErrs  *prometheus.CounterVec
	invalidated prometheus.Counter
}

var _ bucache.Hooks = (*Hooks)(nil)

// New registers the cache metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Hooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Hooks{
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bucache_hits_total",
			Help: "Cache hits by serving tier.",
		}, []string{"tier"}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Name: "bucache_misses_total",
			Help: "Reads that found nothing live in either tier.",
		}),
		selfHeals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bucache_self_heals_total",
			Help: "Entries dropped on read because they could not be decoded.",
		}, []string{"reason"}),
		remoteErrs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bucache_remote_errors_total",
			Help: "Remote-tier operations that failed and were absorbed.",
		}, []string{"operation"}),
		invalidated: f.NewCounter(prometheus.CounterOpts{
			Name: "bucache_invalidated_keys_total",
			Help: "Deletions performed by pattern invalidation across both tiers.",
		}),
	}
}

func (h *Hooks) Hit(_ string, tier string) { h.hits.WithLabelValues(tier).Inc() }
func (h *Hooks) Miss(string)               { h.misses.Inc() }
func (h *Hooks) SelfHeal(_, reason string) { h.selfHeals.WithLabelValues(reason).Inc() }
func (h *Hooks) RemoteDegraded(op string, _ error) {
	h.remoteErrs.WithLabelValues(op).Inc()
}
func (h *Hooks) Invalidated(_ string, removed int) {
	h.invalidated.Add(float64(removed))
}

// Package metrics exposes Prometheus counters and histograms around the
// storage engine's public operations, grounded in the way
// nspcc-dev/neo-go — another bbolt-backed store in this corpus —
// registers its own package-level metrics in pkg/consensus/prometheus.go.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector groups the metrics for one open Store. A fresh Collector is
// created (and registered under the "vsdb" namespace with a "store"
// constant label) each time a Store is opened, so stores opened on
// different paths in the same process don't collide.
type Collector struct {
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	globSize prometheus.Histogram
}

// NewCollector builds and registers a Collector for the given store
// label (typically the file path). Registration errors (e.g. a label
// collision against an already-registered collector) are swallowed: a
// store that can't publish metrics must still function, per the
// embedded-store failure model in spec.md §4.2.3 — metrics are
// observability, not part of the contract.
func NewCollector(store string) *Collector {
	c := &Collector{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "vsdb",
			Name:        "ops_total",
			Help:        "Number of storage engine operations, by kind.",
			ConstLabels: prometheus.Labels{"store": store},
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "vsdb",
			Name:        "op_failures_total",
			Help:        "Number of storage engine operations that returned failed, by kind.",
			ConstLabels: prometheus.Labels{"store": store},
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "vsdb",
			Name:        "op_duration_seconds",
			Help:        "Storage engine operation latency, by kind.",
			ConstLabels: prometheus.Labels{"store": store},
			Buckets:     prometheus.DefBuckets,
		}, []string{"op"}),
		globSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "vsdb",
			Name:        "glob_result_size",
			Help:        "Number of entries returned by a glob call.",
			ConstLabels: prometheus.Labels{"store": store},
			Buckets:     []float64{0, 1, 8, 64, 512, 4096, 32768},
		}),
	}
	_ = prometheus.Register(c.ops)
	_ = prometheus.Register(c.failures)
	_ = prometheus.Register(c.latency)
	_ = prometheus.Register(c.globSize)
	return c
}

// Observe records one call to op, its outcome, and how long it took.
func (c *Collector) Observe(op string, started time.Time, ok bool) {
	if c == nil {
		return
	}
	c.ops.WithLabelValues(op).Inc()
	if !ok {
		c.failures.WithLabelValues(op).Inc()
	}
	c.latency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// ObserveGlobSize records the number of entries a glob call returned.
func (c *Collector) ObserveGlobSize(n int) {
	if c == nil {
		return
	}
	c.globSize.Observe(float64(n))
}

// Unregister removes the collector's metrics from the default registry.
// Called from Store.Close so repeatedly opening and closing a store in
// the same process (as the test suite does) doesn't accumulate stale
// series or trip duplicate-registration errors on reopen.
func (c *Collector) Unregister() {
	if c == nil {
		return
	}
	prometheus.Unregister(c.ops)
	prometheus.Unregister(c.failures)
	prometheus.Unregister(c.latency)
	prometheus.Unregister(c.globSize)
}

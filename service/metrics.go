package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the caching and freshness subsystem.
// A nil registerer creates unregistered collectors, which is what tests use.
type Metrics struct {
	windowHits      prometheus.Counter
	windowMisses    prometheus.Counter
	windowEvictions prometheus.Counter
	windowCompute   prometheus.Histogram
	validations     *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		windowHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "myinventory",
			Name:      "window_cache_hits_total",
			Help:      "Page requests served from a cached window.",
		}),
		windowMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "myinventory",
			Name:      "window_cache_misses_total",
			Help:      "Page requests that had to extract a new window.",
		}),
		windowEvictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "myinventory",
			Name:      "window_cache_evictions_total",
			Help:      "Windows evicted because a region cache was full.",
		}),
		windowCompute: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "myinventory",
			Name:      "window_extract_duration_seconds",
			Help:      "Time spent extracting one sorted window.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "myinventory",
			Name:      "validations_total",
			Help:      "Freshness validations by outcome.",
		}, []string{"outcome"}),
		sourceErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "myinventory",
			Name:      "inventory_source_errors_total",
			Help:      "Failed inventory source calls by operation.",
		}, []string{"operation"}),
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RoutingMetricsCollector instruments the upstream routing client and the
// route cache.
type RoutingMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	retriesTotal    *prometheus.CounterVec
	cacheHitsTotal  prometheus.Counter
	cacheMissTotal  prometheus.Counter
}

// NewRoutingMetricsCollector creates the routing collectors.
func NewRoutingMetricsCollector() *RoutingMetricsCollector {
	return &RoutingMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "requests_total",
				Help:      "Total upstream routing requests by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "request_duration_seconds",
				Help:      "Upstream routing request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
		),
		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "retries_total",
				Help:      "Total routing request retry attempts by reason",
			},
			[]string{"reason"},
		),
		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "cache_hits_total",
				Help:      "Route cache hits",
			},
		),
		cacheMissTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "cache_misses_total",
				Help:      "Route cache misses",
			},
		),
	}
}

// Register registers the collectors with the package registry.
func (c *RoutingMetricsCollector) Register() error {
	for _, collector := range []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retriesTotal,
		c.cacheHitsTotal,
		c.cacheMissTotal,
	} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRequest records one upstream call.
func (c *RoutingMetricsCollector) ObserveRequest(outcome string, elapsed time.Duration) {
	c.requestsTotal.WithLabelValues(outcome).Inc()
	c.requestDuration.Observe(elapsed.Seconds())
}

// IncRetry records a retry attempt.
func (c *RoutingMetricsCollector) IncRetry(reason string) {
	c.retriesTotal.WithLabelValues(reason).Inc()
}

// IncCacheHit records a route cache hit.
func (c *RoutingMetricsCollector) IncCacheHit() {
	c.cacheHitsTotal.Inc()
}

// IncCacheMiss records a route cache miss.
func (c *RoutingMetricsCollector) IncCacheMiss() {
	c.cacheMissTotal.Inc()
}

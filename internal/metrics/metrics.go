package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	// Cache metrics
	CacheHitsTotal     *prometheus.CounterVec
	CacheMissesTotal   *prometheus.CounterVec
	CacheFailuresTotal *prometheus.CounterVec

	// Upstream metrics
	UpstreamFailuresTotal *prometheus.CounterVec
	RefreshDuration       prometheus.Histogram
	SnapshotAgeSeconds    prometheus.Gauge

	// Slideshow metrics
	PageChangesTotal *prometheus.CounterVec
	FrameDuration    prometheus.Histogram
}

// NewCollector creates a collector backed by its own registry so tests can
// build as many as they like.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Cache lookups served from a fresh entry, by key",
			},
			[]string{"key"},
		),

		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Cache lookups that had to fetch, by key",
			},
			[]string{"key"},
		),

		CacheFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_fetch_failures_total",
				Help:      "Fetches behind a cache miss that returned an error, by key",
			},
			[]string{"key"},
		),

		UpstreamFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_failures_total",
				Help:      "Upstream requests that produced no data, by endpoint",
			},
			[]string{"endpoint"},
		),

		RefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of a full weather snapshot refresh in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		SnapshotAgeSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_age_seconds",
				Help:      "Age of the snapshot shown by the last rendered frame",
			},
		),

		PageChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_changes_total",
				Help:      "Slide transitions by destination page",
			},
			[]string{"page"},
		),

		FrameDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "frame_render_duration_seconds",
				Help:      "Time spent composing one frame in seconds",
				Buckets:   []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.033, 0.05, 0.1},
			},
		),
	}
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Hit implements cache.Observer.
func (c *Collector) Hit(key string) { c.CacheHitsTotal.WithLabelValues(key).Inc() }

// Miss implements cache.Observer.
func (c *Collector) Miss(key string) { c.CacheMissesTotal.WithLabelValues(key).Inc() }

// Failed implements cache.Observer.
func (c *Collector) Failed(key string) { c.CacheFailuresTotal.WithLabelValues(key).Inc() }

// UpstreamFailure implements nws.Recorder.
func (c *Collector) UpstreamFailure(endpoint string) {
	c.UpstreamFailuresTotal.WithLabelValues(endpoint).Inc()
}

// RecordPageChange counts a transition onto page.
func (c *Collector) RecordPageChange(page string) {
	c.PageChangesTotal.WithLabelValues(page).Inc()
}

// ObserveFrame records how long a frame took to compose.
func (c *Collector) ObserveFrame(d time.Duration) {
	c.FrameDuration.Observe(d.Seconds())
}

// ObserveRefresh records how long a snapshot refresh took.
func (c *Collector) ObserveRefresh(d time.Duration) {
	c.RefreshDuration.Observe(d.Seconds())
}

// SetSnapshotAge records the age of the snapshot being displayed.
func (c *Collector) SetSnapshotAge(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.SnapshotAgeSeconds.Set(d.Seconds())
}

// Package metric provides Prometheus metrics for CheckGrid.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "checkgrid"

// Registry holds all application metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	// Grid metrics
	CellToggles      *prometheus.CounterVec
	ToggleRejections *prometheus.CounterVec
	Snapshots        prometheus.Counter
	SnapshotDuration prometheus.Histogram
	SSEStreamsActive prometheus.Gauge

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all metrics registered, plus the
// standard Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		CellToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cell_toggles_total",
			Help:      "Successful cell toggles, by resulting state.",
		}, []string{"state"}),
		ToggleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cell_toggle_rejections_total",
			Help:      "Rejected toggle requests, by error code.",
		}, []string{"code"}),
		Snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "snapshots_total",
			Help:      "Full-grid snapshots taken.",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent copying the grid for a snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		SSEStreamsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sse_streams_active",
			Help:      "Counter streams currently connected.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		r.CellToggles,
		r.ToggleRejections,
		r.Snapshots,
		r.SnapshotDuration,
		r.SSEStreamsActive,
		r.RequestsTotal,
		r.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// MustRegister registers additional collectors, such as a grid Collector.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Gatherer returns the underlying gatherer, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// CellToggled implements service.Observer.
func (r *Registry) CellToggled(checked bool) {
	state := "unchecked"
	if checked {
		state = "checked"
	}
	r.CellToggles.WithLabelValues(state).Inc()
}

// ToggleRejected implements service.Observer.
func (r *Registry) ToggleRejected(code string) {
	if code == "" {
		code = "unknown"
	}
	r.ToggleRejections.WithLabelValues(code).Inc()
}

// SnapshotTaken implements service.Observer.
func (r *Registry) SnapshotTaken(_ int, d time.Duration) {
	r.Snapshots.Inc()
	r.SnapshotDuration.Observe(d.Seconds())
}

// SetActiveStreams records the number of connected counter streams.
func (r *Registry) SetActiveStreams(n int64) {
	r.SSEStreamsActive.Set(float64(n))
}

// ObserveRequest records one completed HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	r.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

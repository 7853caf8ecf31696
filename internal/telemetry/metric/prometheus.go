// Package metric provides Prometheus metrics for SnipBoard.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "snipboard"

// Registry holds all application metrics.
//
// Recording methods are safe on a nil *Registry, so components built
// without metrics need no guards.
type Registry struct {
	registry *prometheus.Registry

	// Board metrics
	DocumentsOpen   prometheus.Gauge
	StoreOperations *prometheus.CounterVec
	SaveFailures    prometheus.Counter
	ThemeChanges    *prometheus.CounterVec
	UploadsRejected *prometheus.CounterVec

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with Go runtime and process collectors
// plus all SnipBoard metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,

		DocumentsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "documents_open",
			Help:      "Number of documents currently open on the board",
		}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_operations_total",
			Help:      "Document store operations by kind and result",
		}, []string{"op", "result"}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "save_failures_total",
			Help:      "Board saves that failed to reach storage",
		}),
		ThemeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "theme_changes_total",
			Help:      "Theme preference changes by new value",
		}, []string{"preference"}),
		UploadsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "uploads_rejected_total",
			Help:      "Uploads refused by the upload policy",
		}, []string{"reason"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		r.DocumentsOpen,
		r.StoreOperations,
		r.SaveFailures,
		r.ThemeChanges,
		r.UploadsRejected,
		r.RequestsTotal,
		r.RequestDuration,
	)

	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns the /metrics handler of the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registerer exposes the underlying registry for components that own
// their collectors (the Badger engine).
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// ============================================================================
// Board
// ============================================================================

// SetDocumentsOpen records the current number of open documents.
func (r *Registry) SetDocumentsOpen(n int) {
	if r == nil {
		return
	}
	r.DocumentsOpen.Set(float64(n))
}

// RecordStoreOp counts a store operation. result is "ok" or a short
// rejection reason such as "not_found".
func (r *Registry) RecordStoreOp(op, result string) {
	if r == nil {
		return
	}
	r.StoreOperations.WithLabelValues(op, result).Inc()
}

// IncSaveFailure counts a failed save.
func (r *Registry) IncSaveFailure() {
	if r == nil {
		return
	}
	r.SaveFailures.Inc()
}

// RecordThemeChange counts a theme preference change.
func (r *Registry) RecordThemeChange(preference string) {
	if r == nil {
		return
	}
	r.ThemeChanges.WithLabelValues(preference).Inc()
}

// RecordUploadRejected counts an upload refused by policy.
func (r *Registry) RecordUploadRejected(reason string) {
	if r == nil {
		return
	}
	r.UploadsRejected.WithLabelValues(reason).Inc()
}

// ============================================================================
// HTTP
// ============================================================================

// RecordRequest counts a finished HTTP request.
func (r *Registry) RecordRequest(method, route, status string) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, route, status).Inc()
}

// ObserveRequestDuration records request latency in seconds.
func (r *Registry) ObserveRequestDuration(method, route string, seconds float64) {
	if r == nil {
		return
	}
	r.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

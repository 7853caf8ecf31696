// Package metric provides Prometheus metrics for SnipBoard.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, typed recording helpers, HTTP handler
//   - collector.go: KV engine statistics collected at scrape time
//
// Metrics include:
//
//   - Open document gauge and store operation counters
//   - Persistence save failures
//   - HTTP request counts and latency histograms
//   - Storage key count and size
//
// Metrics are exposed at /metrics in Prometheus format.
package metric

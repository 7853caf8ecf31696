// Package metric provides Prometheus metrics for SnipBoard.
package metric

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/snipboard/internal/storage"
)

// StatsSource is the part of storage.KVEngine the collector reads.
type StatsSource interface {
	Stats(ctx context.Context) (*storage.KVStats, error)
}

// Collector reports KV engine statistics at scrape time.
type Collector struct {
	source  StatsSource
	timeout time.Duration

	keys *prometheus.Desc
	size *prometheus.Desc
}

// NewCollector creates a collector over source.
func NewCollector(source StatsSource) *Collector {
	return &Collector{
		source:  source,
		timeout: 2 * time.Second,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "storage", "keys"),
			"Number of keys in the KV engine",
			[]string{"engine"}, nil,
		),
		size: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "storage", "size_bytes"),
			"Approximate size of the KV engine in bytes",
			[]string{"engine"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.size
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.source.Stats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.keys, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(stats.TotalKeys), stats.Engine)
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(stats.TotalSize), stats.Engine)
}

// RegisterCollector registers a Collector for source.
func (r *Registry) RegisterCollector(source StatsSource) error {
	return r.registry.Register(NewCollector(source))
}

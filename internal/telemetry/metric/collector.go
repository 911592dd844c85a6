// Package metric provides Prometheus metrics for CheckGrid.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// StatsSource provides grid statistics at scrape time.
type StatsSource interface {
	Stats() domain.Stats
}

// Collector reports grid size, checked cells and version on every scrape.
//
// Reading Stats is O(1), so scrapes never copy the grid.
type Collector struct {
	source StatsSource

	total   *prometheus.Desc
	checked *prometheus.Desc
	version *prometheus.Desc
}

// NewCollector creates a collector reading from source.
func NewCollector(source StatsSource) *Collector {
	return &Collector{
		source: source,
		total: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "cells_total"),
			"Number of cells in the grid.", nil, nil),
		checked: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "cells_checked"),
			"Number of cells currently checked.", nil, nil),
		version: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "grid_version"),
			"Number of toggles applied since start.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.checked
	ch <- c.version
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(st.Total))
	ch <- prometheus.MustNewConstMetric(c.checked, prometheus.GaugeValue, float64(st.Checked))
	ch <- prometheus.MustNewConstMetric(c.version, prometheus.CounterValue, float64(st.Version))
}

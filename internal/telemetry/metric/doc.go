// Package metric provides Prometheus metrics for CheckGrid.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: the private registry, HTTP handler and the metrics
//     updated by the service and HTTP layers
//   - collector.go: a custom collector that reads grid statistics at
//     scrape time
//
// Metrics are exposed at /metrics in Prometheus text format.
package metric

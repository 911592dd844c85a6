// Package httpserver provides the HTTP server for CheckGrid.
//
// This package serves the grid using stdlib net/http:
//
//   - Page endpoints: /, /toggle/{id}, /sse-counter
//   - JSON endpoints: /api/v1/cells, /api/v1/cells/{id}, /api/v1/stats
//   - Operational endpoints: /health, /ready, /metrics
//
// Features:
//
//   - Middleware chain: Recover, RequestID, Audit, Metrics, RateLimit
//   - Optional cap on concurrent connections
//   - Graceful shutdown with configurable timeout
package httpserver

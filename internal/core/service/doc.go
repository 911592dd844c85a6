// Package service provides domain services for CheckGrid.
//
// Services sit between the HTTP handlers and the cell store. They define
// the storage interface they need, so the store can be swapped in tests,
// and they do all the work that must stay outside the store's lock:
// metrics, debug logging and timing.
//
// This package contains:
//
//   - CellService: view, get and toggle operations on the shared grid
//   - StreamService: the per-connection counter generator behind /sse-counter
package service

// Package domain defines the core domain models for CheckGrid.
//
// Domain models are pure values without any IO dependencies or
// framework coupling. This package contains:
//
//   - CellIndex: a validated position in the shared checkbox grid
//   - Snapshot, Stats: point-in-time views of the grid
//   - Errors: coded domain errors shared by the store, service and handlers
package domain

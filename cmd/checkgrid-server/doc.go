// Package main provides the entry point for checkgrid-server.
//
// checkgrid-server serves a shared grid of checkboxes over HTTP. All
// clients see and flip the same in-memory cells; state is lost on exit.
//
// Usage:
//
//	checkgrid-server [-config checkgrid.yaml] [-version]
//
// Every setting can also be supplied through CHECKGRID_* environment
// variables, e.g. CHECKGRID_GRID_CELLS=10000.
package main

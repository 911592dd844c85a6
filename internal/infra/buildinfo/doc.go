// Package buildinfo provides build information for CheckGrid.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go toolchain version
//
// Usage:
//
//	go build -ldflags "-X github.com/yndnr/checkgrid-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo

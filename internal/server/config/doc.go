// Package config provides server configuration for CheckGrid.
//
// This package defines the server configuration structure and validation:
//
//   - config.go: ServerConfig struct definition and the list of keys
//   - default.go: Default configuration values
//   - verify.go: Business validation (ranges, formats)
//   - sanitize.go: HTML sanitizing of the configured page message
//
// Configuration is loaded once at startup via internal/infra/confloader
// from an optional YAML file and CHECKGRID_* environment variables.
package config

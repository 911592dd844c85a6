// Package output provides output formatting for checkgrid-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Table rendering for structs and slices
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - grid.go: Compact text rendering of the checkbox grid
package output

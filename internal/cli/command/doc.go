// Package command provides CLI command definitions for checkgrid-cli.
//
// Commands are built on urfave/cli/v2:
//
//   - root.go: application, global flags, shared helpers
//   - grid.go: view, get, toggle and stats
//   - watch.go: follows the server's counter stream
//   - system.go: health and version
//
// Every command writes through c.App.Writer so output can be captured.
package command

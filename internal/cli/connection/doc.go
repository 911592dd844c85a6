// Package connection provides the HTTP client used by checkgrid-cli.
//
//   - http.go: request helpers and envelope decoding
//   - stream.go: server-sent event reader
package connection

// Package logger provides structured logging for CheckGrid.
//
// It wraps the standard library log/slog behind a small Logger interface:
//
//   - logger.go: handler selection, level control and the global default
//   - context.go: request ID propagation; records logged with a request
//     context carry request_id
//
// Output formats:
//
//   - pretty: human readable key=value lines (slog text handler)
//   - json: one JSON object per line
//   - cloud: JSON with severity/message/time keys, as expected by hosted
//     log collectors
package logger

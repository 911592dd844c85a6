// Package handler provides HTTP request handlers for CheckGrid.
//
// This package contains handlers for all HTTP endpoints:
//
//   - page.go: the HTML page and the checkbox toggle fragment
//   - stream.go: the server-sent counter stream
//   - api.go: JSON access to cells and grid statistics
//   - health.go: Health and readiness checks
//
// HTML endpoints keep the contract the page script relies on: a toggle of
// an unknown cell answers 200 with the body "Invalid ID". The JSON API
// reports the same failures with 400 and 404 in the standard envelope.
package handler

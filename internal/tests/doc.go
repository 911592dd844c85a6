// Package tests holds end-to-end tests that run a real checkgrid HTTP
// server on a loopback port.
package tests

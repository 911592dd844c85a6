// Package main provides the entry point for checkgrid-cli, a command-line
// client for a running checkgrid-server.
package main

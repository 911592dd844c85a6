// Package ratelimit provides per-key token buckets.
//
// Buckets are created on first use and dropped after they have been idle
// for the configured TTL, so the number of tracked keys stays bounded by
// the clients seen recently.
package ratelimit

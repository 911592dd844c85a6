// Package cmap provides a concurrent map keyed by strings.
//
// The map is split into shards selected by a murmur3 hash of the key, each
// guarded by its own RWMutex. It backs per-client state in the HTTP layer
// (rate limiters keyed by client IP) where many goroutines touch mostly
// disjoint keys.
//
// Usage:
//
//	m := cmap.New[*rate.Limiter]()
//	lim, _ := m.GetOrCreate(ip, newLimiter)
//
// All operations are safe for concurrent use. Range and DeleteFunc lock one
// shard at a time, so they do not observe a single consistent view.
package cmap

// Package shutdown coordinates graceful shutdown of checkgrid-server.
//
// A Handler waits for SIGINT/SIGTERM (or for its context to end, e.g. when
// the listener fails), then runs the registered hooks in reverse order
// under a single timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown

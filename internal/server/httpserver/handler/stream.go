package handler

import (
	"bytes"
	"context"
	"net/http"
)

// handleCounter handles GET /sse-counter.
//
// Each event carries the rendered counter fragment on a single data line.
// The generator is tied to the request context and stops when the client
// goes away or the server shuts down.
func (h *Handler) handleCounter(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.ErrorContext(r.Context(), "streaming unsupported", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var buf bytes.Buffer
	for n := range h.streams.Counter(ctx) {
		buf.Reset()
		buf.WriteString("data: ")
		if err := renderCounter(&buf, n); err != nil {
			h.logger.ErrorContext(ctx, "render counter", "error", err)
			return
		}
		buf.WriteString("\n\n")

		if _, err := w.Write(buf.Bytes()); err != nil {
			h.logger.DebugContext(ctx, "counter stream closed", "sent", n-1, "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}

	h.logger.DebugContext(ctx, "counter stream ended")
}

package handler

import (
	"bufio"
	"bytes"
	"errors"
	"net/http"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// invalidIDBody is what the page script receives for a bad toggle.
const invalidIDBody = "Invalid ID"

// handleIndex handles GET /.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := h.cells.Snapshot(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	bw := bufio.NewWriterSize(w, 64<<10)
	err := renderIndex(bw, indexView{
		Title:   h.page.Title,
		Message: h.page.Message,
		Cells:   snap.Cells,
		Checked: snap.Checked,
	})
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		// Headers are gone by now; the client sees a truncated page.
		h.logger.ErrorContext(r.Context(), "render index", "error", err)
	}
}

// handleToggle handles POST /toggle/{id}.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	index, checked, err := h.cells.ToggleRaw(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIndex) || errors.Is(err, domain.ErrIndexOutOfRange) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(invalidIDBody))
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := renderCell(&buf, int(index), checked); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

package handler

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
)

// handleSnapshot handles GET /api/v1/cells.
//
// The ETag is a murmur3 hash of the encoded cells, so clients polling an
// idle grid get 304 without a body.
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.cells.Snapshot(r.Context())
	bits := snap.Bits()
	etag := snapshotETag(bits)

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("X-Error-Code", domain.ErrNotModified.Code)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.writeJSON(w, r, http.StatusOK, SnapshotResponse{
		Total:   len(snap.Cells),
		Checked: snap.Checked,
		Version: snap.Version,
		Cells:   bits,
	})
}

// handleGetCell handles GET /api/v1/cells/{id}.
func (h *Handler) handleGetCell(w http.ResponseWriter, r *http.Request) {
	index, err := domain.ParseIndex(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	checked, err := h.cells.Get(r.Context(), index)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, CellResponse{ID: int(index), Checked: checked})
}

// handleToggleCell handles POST /api/v1/cells/{id}/toggle.
func (h *Handler) handleToggleCell(w http.ResponseWriter, r *http.Request) {
	index, checked, err := h.cells.ToggleRaw(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, CellResponse{ID: int(index), Checked: checked})
}

// handleStats handles GET /api/v1/stats.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	st := h.cells.Stats(r.Context())
	h.writeJSON(w, r, http.StatusOK, StatsResponse{
		Total:   st.Total,
		Checked: st.Checked,
		Version: st.Version,
	})
}

func snapshotETag(bits string) string {
	hi, lo := murmur3.Sum128([]byte(bits))
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(hi >> (56 - 8*i))
		b[8+i] = byte(lo >> (56 - 8*i))
	}
	return `"` + hex.EncodeToString(b[:]) + `"`
}

// etagMatches implements the If-None-Match comparison for strong tags.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yndnr/checkgrid-go/internal/core/domain"
	"github.com/yndnr/checkgrid-go/internal/core/service"
	"github.com/yndnr/checkgrid-go/internal/telemetry/logger"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	cells   *service.CellService
	streams *service.StreamService
	page    Page
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New creates a new Handler with the given services.
func New(cells *service.CellService, streams *service.StreamService, page Page, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		cells:   cells,
		streams: streams,
		page:    page,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Route patterns. The router mounts the same patterns with its own
// middleware chains.
const (
	RouteIndex      = "GET /{$}"
	RouteToggle     = "POST /toggle/{id}"
	RouteCounter    = "GET /sse-counter"
	RouteCells      = "GET /api/v1/cells"
	RouteCell       = "GET /api/v1/cells/{id}"
	RouteCellToggle = "POST /api/v1/cells/{id}/toggle"
	RouteStats      = "GET /api/v1/stats"
	RouteHealth     = "GET /health"
	RouteReady      = "GET /ready"
)

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc(RouteHealth, h.handleHealth)
	h.mux.HandleFunc(RouteReady, h.handleReady)

	h.mux.HandleFunc(RouteIndex, h.handleIndex)
	h.mux.HandleFunc(RouteToggle, h.handleToggle)
	h.mux.HandleFunc(RouteCounter, h.handleCounter)

	h.mux.HandleFunc(RouteCells, h.handleSnapshot)
	h.mux.HandleFunc(RouteCell, h.handleGetCell)
	h.mux.HandleFunc(RouteCellToggle, h.handleToggleCell)
	h.mux.HandleFunc(RouteStats, h.handleStats)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID returns the id set by the RequestID middleware, or the
// client supplied header when the handler runs without it.
func getRequestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	h.logger.ErrorContext(r.Context(), "internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternalServer.Code, "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-3040"):
		return http.StatusNotModified
	case strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

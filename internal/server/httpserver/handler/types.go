package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// CellResponse is the response body for the single cell endpoints.
type CellResponse struct {
	ID      int  `json:"id"`
	Checked bool `json:"checked"`
}

// SnapshotResponse is the response body for GET /api/v1/cells.
// Cells holds one '0' or '1' per cell, index 0 first.
type SnapshotResponse struct {
	Total   int    `json:"total"`
	Checked int    `json:"checked"`
	Version uint64 `json:"version"`
	Cells   string `json:"cells"`
}

// StatsResponse is the response body for GET /api/v1/stats.
type StatsResponse struct {
	Total   int    `json:"total"`
	Checked int    `json:"checked"`
	Version uint64 `json:"version"`
}

// HealthResponse is the response body for /health and /ready.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Cells  int    `json:"cells,omitempty"`
}

// Package domain defines the core domain models for CheckGrid.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
//
// Codes have the form CG-<AREA>-<NNNN>, where the numeric part mirrors the
// HTTP status the JSON API answers with (4000 -> 400, 4040 -> 404, ...).
type DomainError struct {
	Code    string // Error code (e.g., "CG-CELL-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Cell Errors (CELL)
// ============================================================================

var (
	// ErrInvalidIndex indicates the cell id is not a non-negative integer.
	ErrInvalidIndex = NewDomainError("CG-CELL-4000", "invalid cell id")

	// ErrIndexOutOfRange indicates the cell id is outside [0, N).
	ErrIndexOutOfRange = NewDomainError("CG-CELL-4040", "cell id out of range")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("CG-SYS-5000", "internal server error")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("CG-SYS-4290", "too many requests")

	// ErrNotModified is not a failure; it tells the caller the client copy is current.
	ErrNotModified = NewDomainError("CG-SYS-3040", "not modified")
)

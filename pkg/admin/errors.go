// Error handling utilities for the HTTP API.
// Internal errors are logged in full and answered with a generic message.

package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/praskarnam/DSynth/pkg/store"
)

// Error codes carried in types.ErrorResponse.Error.
const (
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeInvalidJSON    = "invalid_json"
	CodeInvalidRequest = "invalid_request"
	CodeValidation     = "validation_error"
	CodeReadOnly       = "read_only"
	CodeInternal       = "internal_error"
)

// Safe error messages for client responses.
const (
	ErrMsgInternalError   = "An internal error occurred"
	ErrMsgInvalidJSON     = "Invalid JSON in request body"
	ErrMsgNotFound        = "Resource not found"
	ErrMsgConflict        = "Resource already exists"
	ErrMsgReadOnly        = "Store is read-only"
	ErrMsgOperationFailed = "Operation failed"
)

// writeStoreError answers a store failure. Known store errors map to 4xx
// statuses; anything else is logged and reported as a 500.
func writeStoreError(w http.ResponseWriter, log *slog.Logger, err error, operation string, details ...any) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, ErrMsgNotFound)
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, CodeConflict, ErrMsgConflict)
	case errors.Is(err, store.ErrInvalid):
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, store.ErrReadOnly):
		writeError(w, http.StatusForbidden, CodeReadOnly, ErrMsgReadOnly)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, sanitizeError(err, log, operation, details...))
	}
}

// sanitizeError logs err server-side and returns a message safe to send.
func sanitizeError(err error, log *slog.Logger, operation string, details ...any) string {
	if log != nil {
		args := []any{"operation", operation, "error", err}
		args = append(args, details...)
		log.Error("operation failed", args...)
	}
	return ErrMsgOperationFailed
}

// sanitizeJSONError logs a body decode failure and returns a safe message.
func sanitizeJSONError(err error, log *slog.Logger) string {
	if log != nil {
		log.Debug("JSON parsing failed", "error", err)
	}
	return ErrMsgInvalidJSON
}

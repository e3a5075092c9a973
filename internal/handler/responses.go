package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/treedoctor/treedoctor-api/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// bufferPool reuses encode buffers across responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgServerError          = "Server error occurred. Please try again."
	ErrMsgUnavailableError     = "Storage is temporarily unavailable. Please try again later."
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgStudentNotFoundError = "Student not found"
	ErrMsgStudentExistsError   = "Username is already taken"
	ErrMsgTreeNotFoundError    = "Tree not found"
	ErrMsgTreeLimitError       = "You have reached the maximum number of trees"
	ErrMsgInvalidMeasureError  = "Invalid measurement. Check the height, diameter and health status."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages that users can act upon without exposing internal details.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgStudentNotFoundError
	case errors.Is(err, domain.ErrTreeNotFound):
		return http.StatusNotFound, ErrMsgTreeNotFoundError
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrMsgStudentExistsError
	case errors.Is(err, domain.ErrTreeLimitReached):
		return http.StatusConflict, ErrMsgTreeLimitError
	case errors.Is(err, domain.ErrInvalidMeasurement):
		return http.StatusBadRequest, ErrMsgInvalidMeasureError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrStoreRead):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	default:
		return http.StatusInternalServerError, ErrMsgServerError
	}
}

// respondServiceError logs err and writes the mapped response.
// Client errors are logged at warn, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := loggerFor(r)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "action", action, "error", err)
	} else {
		log.Warn(LogMsgRequestFailed, "action", action, "error", err)
	}
	respondError(w, status, msg)
}

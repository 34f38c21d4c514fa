package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jhardel/caskwatch/internal/domain"
	"github.com/jhardel/caskwatch/internal/logger"
	"github.com/jhardel/caskwatch/internal/session"
)

// encodeBuffers pools encode scratch space across responses.
var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing more to write
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request. Please check your inputs."
	ErrMsgMissingQueryParam  = "Missing required query parameter: %s"

	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgDataFileBadRowError = "Reward data could not be parsed"
	ErrMsgNotInitializedError = "Service has not been initialized"

	// The database file is held open by another process (commonly a viewer
	// such as DB Browser). Telling the caller what to close makes the 409
	// actionable.
	ErrMsgResourceBusyError = "Database file is in use. Close any program holding it open and retry."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages the caller can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	case errors.Is(err, domain.ErrResourceBusy):
		return http.StatusConflict, ErrMsgResourceBusyError
	case errors.Is(err, domain.ErrUnprocessable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrParse):
		return http.StatusBadRequest, ErrMsgDataFileBadRowError
	case errors.Is(err, domain.ErrLookupFailed):
		return http.StatusBadGateway, ErrMsgGenericServerError
	case errors.Is(err, session.ErrNotInitialized):
		return http.StatusConflict, ErrMsgNotInitializedError
	}

	var rowErr *domain.RowParseError
	if errors.As(err, &rowErr) {
		return http.StatusBadRequest, ErrMsgDataFileBadRowError
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the failure and writes the mapped error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

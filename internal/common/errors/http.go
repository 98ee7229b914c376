// internal/common/errors/http.go
package errors

import (
	"encoding/json"
	"net/http"
)

// HTTPHandler writes standardized error responses.
type HTTPHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Error *StandardError `json:"error"`
}

// WriteError normalizes err and writes it as a JSON error response with the
// status derived from its error code.
func (h *HTTPHandler) WriteError(w http.ResponseWriter, err error) {
	stdErr := Normalize(err)

	h.logger.Error("request failed", map[string]interface{}{
		"errorCode":    stdErr.Code,
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"retryable":    stdErr.Retryable,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForCode(stdErr.Code))
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: stdErr})
}

// StatusForCode maps internal error codes to HTTP status codes.
func StatusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeRatingOutOfRange:
		return http.StatusUnprocessableEntity
	case ErrCodeMentorFetchFailed, ErrCodeHistoryFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

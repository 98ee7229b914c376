// internal/common/errors/errors.go

// Package errors provides standardized error handling for the recommendation engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMentorFetchFailed  ErrorCode = "MENTOR_FETCH_FAILED"
	ErrCodeHistoryFetchFailed ErrorCode = "HISTORY_FETCH_FAILED"
	ErrCodeRatingOutOfRange   ErrorCode = "RATING_OUT_OF_RANGE"

	ErrCodeCacheReadFailed  ErrorCode = "CACHE_READ_FAILED"
	ErrCodeCacheWriteFailed ErrorCode = "CACHE_WRITE_FAILED"
	ErrCodeCacheSweepFailed ErrorCode = "CACHE_SWEEP_FAILED"

	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMentorFetchError signals that the upstream mentor pool could not be read.
// Fetch errors propagate to the caller; the engine performs no retries itself.
func NewMentorFetchError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorFetchFailed,
		Message:   "Failed to fetch mentor candidates",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryFetchError signals that the student's session history could not be read.
func NewHistoryFetchError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryFetchFailed,
		Message:   "Failed to fetch session history",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRatingOutOfRangeError signals a contract violation in the upstream data
// feed: a mentor rating outside [0,5]. Raised at the ingestion boundary, never
// inside the scorers.
func NewRatingOutOfRangeError(mentorID string, rating float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeRatingOutOfRange,
		Message:   "Mentor rating outside [0,5]",
		Details:   fmt.Sprintf("mentor %s has rating %.2f", mentorID, rating),
		Retryable: false,
		Metadata:  map[string]interface{}{"mentorId": mentorID, "rating": rating},
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheReadError wraps a cache lookup failure. Always swallowed by the
// engine (degrades to recompute) but surfaced in logs and metrics.
func NewCacheReadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Recommendation cache read failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheWriteError wraps a cache store failure. Always swallowed by the
// engine (the result is served uncached).
func NewCacheWriteError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheWriteFailed,
		Message:   "Recommendation cache write failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheSweepError wraps a failure of the background expiry sweep.
func NewCacheSweepError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheSweepFailed,
		Message:   "Recommendation cache sweep failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError signals a malformed API request.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError signals a request payload that failed schema validation.
func NewValidationError(details string, violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": violations},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

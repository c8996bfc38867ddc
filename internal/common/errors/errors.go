// Package errors provides standardized error handling for the analytics
// dashboard service.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeMessageInvalid  ErrorCode = "MESSAGE_INVALID"

	ErrCodeRemoteResolutionFailed ErrorCode = "REMOTE_RESOLUTION_FAILED"
	ErrCodeRemoteAPITimeout       ErrorCode = "REMOTE_API_TIMEOUT"
	ErrCodeConfigurationAbsent    ErrorCode = "CONFIGURATION_ABSENT"

	ErrCodeCacheReadFailed  ErrorCode = "CACHE_READ_FAILED"
	ErrCodeCacheWriteFailed ErrorCode = "CACHE_WRITE_FAILED"

	ErrCodeFeedbackSaveFailed ErrorCode = "FEEDBACK_SAVE_FAILED"

	ErrCodeUnknownWidget ErrorCode = "UNKNOWN_WIDGET"
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

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageInvalidError creates a non-retryable request validation error.
func NewMessageInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageInvalid,
		Message:   "Message payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteResolutionFailedError creates a retryable remote API error. The
// resolver swallows this internally; it surfaces only in logs.
func NewRemoteResolutionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteResolutionFailed,
		Message:   "Remote resolution API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteAPITimeoutError creates a retryable remote API timeout error.
func NewRemoteAPITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteAPITimeout,
		Message:   "Remote resolution API timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationAbsentError marks the remote path as unusable.
func NewConfigurationAbsentError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationAbsent,
		Message:   "Remote resolution endpoint not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheReadFailedError creates a retryable cache backend error.
func NewCacheReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Cache read error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFeedbackSaveFailedError creates a retryable persistence error.
func NewFeedbackSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFeedbackSaveFailed,
		Message:   "Feedback persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownWidgetError creates a non-retryable widget lookup error.
func NewUnknownWidgetError(entity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownWidget,
		Message:   "Unknown widget entity",
		Details:   fmt.Sprintf("entity: %s", entity),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the response status the API layer uses.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeSessionNotFound, ErrCodeUnknownWidget:
		return http.StatusNotFound
	case ErrCodeMessageInvalid:
		return http.StatusBadRequest
	case ErrCodeRemoteAPITimeout:
		return http.StatusGatewayTimeout
	case ErrCodeFeedbackSaveFailed, ErrCodeCacheReadFailed, ErrCodeCacheWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeRemoteResolutionFailed,
		ErrCodeRemoteAPITimeout,
		ErrCodeCacheReadFailed,
		ErrCodeCacheWriteFailed,
		ErrCodeFeedbackSaveFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "MESSAGE"):
		return "CONVERSATION"
	case strings.Contains(codeStr, "REMOTE") || strings.Contains(codeStr, "CONFIGURATION"):
		return "RESOLUTION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "FEEDBACK"):
		return "PERSISTENCE"
	default:
		return "OTHER"
	}
}

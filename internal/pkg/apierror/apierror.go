// internal/pkg/apierror/apierror.go
package apierror

import (
	"errors"
	"net/http"
)

// Code identifies a failure class. The set is closed: every error surfaced
// by the API carries exactly one of these codes.
type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"
	CodeAIServiceError     Code = "AI_SERVICE_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeDatabaseError      Code = "DATABASE_ERROR"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
)

// statusByCode is total over the code enumeration; StatusOf falls back to
// 500 for anything outside it.
var statusByCode = map[Code]int{
	CodeValidation:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeRateLimitExceeded:  http.StatusTooManyRequests,
	CodeAIServiceError:     http.StatusServiceUnavailable,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeDatabaseError:      http.StatusInternalServerError,
	CodeInternal:           http.StatusInternalServerError,
}

// StatusOf maps a code to its transport status.
func StatusOf(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a tagged application error: a stable code, a client-safe message
// and optional structured details. Internal detail never travels in either.
type Error struct {
	Code    Code
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation builds a VALIDATION_ERROR with the field/constraint detail pair.
func Validation(message, field, constraint string) *Error {
	details := map[string]interface{}{}
	if field != "" {
		details["field"] = field
	}
	if constraint != "" {
		details["constraint"] = constraint
	}
	if len(details) == 0 {
		details = nil
	}
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return New(CodeForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(CodeNotFound, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

// RateLimited builds a RATE_LIMIT_EXCEEDED error; retryAfter <= 0 omits the
// retry_after detail.
func RateLimited(message string, retryAfter int) *Error {
	e := New(CodeRateLimitExceeded, message)
	if retryAfter > 0 {
		e.Details = map[string]interface{}{"retry_after": retryAfter}
	}
	return e
}

func AIService(message string) *Error {
	if message == "" {
		message = "AI service temporarily unavailable"
	}
	return New(CodeAIServiceError, message)
}

func Unavailable(message string) *Error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return New(CodeServiceUnavailable, message)
}

func Database(message string) *Error {
	if message == "" {
		message = "A database error occurred"
	}
	return New(CodeDatabaseError, message)
}

// From classifies an arbitrary error. Anything that is not (or does not
// wrap) an *Error becomes a generic internal error; the original message is
// discarded so internal detail cannot leak to clients.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(CodeInternal, "An unexpected error occurred")
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError carries a per-field validation message for the response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Status int
	Code   string
	Err    error
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(fields ...FieldError) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "validation_error",
		Err:    errors.New("validation error"),
		Fields: fields,
	}
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, "not_found", errors.New(msg))
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, "conflict", errors.New(msg))
}

// RateLimited is the retryable subtype of provider unavailability.
func RateLimited(msg string) *Error {
	return New(http.StatusServiceUnavailable, "provider_rate_limited", errors.New(msg))
}

func ProviderUnavailable(msg string) *Error {
	return New(http.StatusServiceUnavailable, "provider_unavailable", errors.New(msg))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal_error", err)
}

// From returns err as *Error when it is one, otherwise wraps it as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

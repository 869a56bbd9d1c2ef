// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by services and the HTTP layer.

Services return *AppError for anything a client should see. Everything else
is wrapped by [Internal] at the edge and logged, never echoed.

Machine codes come in two families:

  - Upper-case generic codes (NOT_FOUND, VALIDATION_ERROR, ...).
  - Lower-case access decisions (forbidden, department_scope_required, ...)
    created with [WithCode]; clients branch on these.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Generic machine codes.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError is a client-safe error with its HTTP mapping.
// Cause is logged server-side and never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	// RetryAfter, in seconds, becomes a Retry-After header when positive.
	RetryAfter int `json:"-"`
}

// FieldError is one failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches on status and code, so errors.Is works against sentinel values
// such as validate.ErrInvalidJSON.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.HTTPStatus == other.HTTPStatus && e.Code == other.Code
}

// WithCode builds an error with an explicit status and machine code.
func WithCode(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # Constructors

// NotFound reports a missing resource, e.g. NotFound("Ticket").
func NotFound(resource string) *AppError {
	return WithCode(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return WithCode(http.StatusUnauthorized, CodeUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return WithCode(http.StatusForbidden, CodeForbidden, msg)
}

func Conflict(msg string) *AppError {
	return WithCode(http.StatusConflict, CodeConflict, msg)
}

func Unprocessable(msg string) *AppError {
	return WithCode(http.StatusUnprocessableEntity, CodeUnprocessable, msg)
}

// ValidationError is a 400 carrying optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := WithCode(http.StatusBadRequest, CodeValidation, msg)
	appError.Details = details
	return appError
}

// RateLimited is a 429 telling the client how long to back off.
func RateLimited(retryAfterSeconds int) *AppError {
	appError := WithCode(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
	appError.RetryAfter = retryAfterSeconds
	return appError
}

// Internal hides cause behind a generic 500.
func Internal(cause error) *AppError {
	appError := WithCode(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// # Inspection

// As returns the first *AppError in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// HasCode reports whether err's chain carries an *AppError with code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}

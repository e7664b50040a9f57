package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("invalid api credential")
	ErrNotConfigured     = errors.New("payment provider not configured")
	ErrUpstream          = errors.New("payment provider error")
	ErrPersistence       = errors.New("persistence error")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

// Validation reports a field-specific form validation failure.
// The message names the offending field so the caller can surface it inline.
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func InvalidCredential(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrInvalidCredential)
}

func NotConfigured() *AppError {
	return NewAppError(http.StatusUnauthorized,
		"payment provider not configured: set an API key first", ErrNotConfigured)
}

func Upstream(message string, err error) *AppError {
	if err == nil {
		err = ErrUpstream
	}
	return NewAppError(http.StatusBadGateway, message, err)
}

func Persistence(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "storage operation failed", err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

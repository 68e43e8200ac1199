package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or mismatched credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure inside the application.
var ErrInternal = errors.New("internal error")

// AppError carries the HTTP status and client-facing message for a failure.
// Kind is one of the sentinel errors above so callers can keep using errors.Is.
type AppError struct {
	StatusCode int
	Message    string
	Errors     []string
	Kind       error
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrNotFound) works on an *AppError.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// NewAppError builds an AppError whose kind is derived from the status code.
func NewAppError(statusCode int, message string, err error) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
		Kind:       kindForStatus(statusCode),
		Err:        err,
	}
}

// NewValidationError returns a 400 error. details end up in the errors[] list of the response.
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Errors: details, Kind: ErrValidation}
}

// NewConflictError returns a 409 error for duplicate resources.
func NewConflictError(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message, Kind: ErrDuplicate}
}

// NewUnauthorizedError returns a 401 error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message, Kind: ErrUnauthorized}
}

// NewNotFoundError returns a 404 error.
func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message, Kind: ErrNotFound}
}

// NewInternalError returns a 500 error wrapping the underlying cause.
func NewInternalError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Kind: ErrInternal, Err: err}
}

func kindForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrDuplicate
	default:
		return ErrInternal
	}
}

// StatusCodeOf returns the HTTP status for err, falling back to the sentinel kinds
// and finally to 500.
func StatusCodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

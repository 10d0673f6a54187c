package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	TypeValidation  = "VALIDATION"
	TypeNotFound    = "NOT_FOUND"
	TypeConflict    = "CONFLICT"
	TypeUnavailable = "UNAVAILABLE"
	TypeInternal    = "INTERNAL"
	TypeUnknown     = "UNKNOWN"
)

// UnavailableMessage is the single message shown for any backing-store failure.
const UnavailableMessage = "Serviço indisponível, tenta novamente mais tarde."

type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(errType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(TypeValidation, message, nil)
}

func NotFound(message string) *AppError {
	return New(TypeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(TypeConflict, message, nil)
}

// Unavailable wraps a store failure. The cause is kept for logs only.
func Unavailable(err error) *AppError {
	return New(TypeUnavailable, UnavailableMessage, err)
}

func Internal(message string, err error) *AppError {
	return New(TypeInternal, message, err)
}

func TypeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeUnknown
}

func Is(err error, errType string) bool {
	return err != nil && TypeOf(err) == errType
}

func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage never exposes the wrapped cause.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Ocorreu um erro inesperado."
}

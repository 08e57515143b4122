// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenMissing = errors.New("token missing")
)

// AppError is an error that already knows how it should be rendered to the
// client. Extra is merged into the JSON body next to "error".
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
	Extra      map[string]any
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

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func (e *AppError) With(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = make(map[string]any, 1)
	}
	e.Extra[key] = value
	return e
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "BAD_REQUEST")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, resource+" not found", http.StatusNotFound, "NOT_FOUND")
}

func TokenMissingError() *AppError {
	return NewAppError(ErrTokenMissing, "No token provided", http.StatusUnauthorized, "TOKEN_MISSING")
}

func TokenMalformedError() *AppError {
	return NewAppError(ErrTokenInvalid, "Invalid token format", http.StatusUnauthorized, "TOKEN_MALFORMED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "Invalid or expired token", http.StatusForbidden, "TOKEN_INVALID")
}

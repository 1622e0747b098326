package errors

import "fmt"

type ErrorCode string

const (
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the typed error every service returns. The HTTP layer maps
// Code to a status; Err keeps the underlying cause for server-side logs.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsBusinessError reports whether the error represents a rule violation or
// failed lookup rather than an infrastructure failure. Business errors are
// surfaced to the caller with their message; everything else becomes a
// generic 500.
func (e *AppError) IsBusinessError() bool {
	switch e.Code {
	case ErrInvalidInput, ErrInvalidRequestData, ErrNotFound, ErrAlreadyExists,
		ErrUnauthorized, ErrForbidden, ErrTokenExpired, ErrInvalidTokenFormat,
		ErrMissingAuthorizationHeader:
		return true
	}
	return false
}

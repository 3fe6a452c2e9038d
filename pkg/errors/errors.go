package errors

import (
	"errors"
	"fmt"
)

var (
	// Tokens and auth.
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")
	ErrEmptyAuthHeader      = errors.New("authorization header is missing")
	ErrInvalidAuthHeader    = errors.New("malformed authorization header")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")

	// Request context.
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// Generic.
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrBadRequest = errors.New("bad request")
)

// HttpError carries an HTTP status code together with a user-facing message.
// The wrapped error keeps the technical cause for the logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

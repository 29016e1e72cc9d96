// Package apperr holds the error kinds surfaced by the blog API and their
// HTTP status mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrAuth             = errors.New("authentication failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries a client-facing message and one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error { return newf(ErrNotFound, format, args...) }

func Validation(format string, args ...any) error { return newf(ErrValidation, format, args...) }

func Auth(format string, args ...any) error { return newf(ErrAuth, format, args...) }

// StoreUnavailable reports a connectivity failure; the cause text is kept in
// the message.
func StoreUnavailable(cause error) error {
	return &Error{Kind: ErrStoreUnavailable, Msg: "store unavailable: " + cause.Error()}
}

// Status maps err to an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

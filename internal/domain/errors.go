package domain

import (
	"errors"
	"net/http"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// ErrDuplicate is returned by repositories on a uniqueness violation.
var ErrDuplicate = errors.New("duplicate record")

// Error carries a user-facing message together with its kind. Cause, when
// set, is the underlying failure and is never shown to clients.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewValidationError(msg string) *Error   { return &Error{Kind: ErrValidation, Message: msg} }
func NewConflictError(msg string) *Error     { return &Error{Kind: ErrConflict, Message: msg} }
func NewNotFoundError(msg string) *Error     { return &Error{Kind: ErrNotFound, Message: msg} }
func NewUnauthorizedError(msg string) *Error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func NewForbiddenError(msg string) *Error    { return &Error{Kind: ErrForbidden, Message: msg} }

// NewInternalError reports a system failure with a message that is safe to
// return while keeping cause for logs.
func NewInternalError(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: msg, Cause: cause}
}

var (
	ErrInvalidID    = NewValidationError("Invalid id")
	ErrInvalidDate  = NewValidationError("Invalid date format")
	ErrBlogNotFound = NewNotFoundError("Blog not found")
	ErrNoBlogsFound = NewNotFoundError("No blogs found")
	ErrUserNotFound = NewNotFoundError("User does not exist")
)

// StatusCode maps an error to its HTTP status. Unknown errors are internal.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to clients.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "Internal server error"
}

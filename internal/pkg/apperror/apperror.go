// Package apperror defines the error kinds returned by services and rendered by the HTTP layer.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuthorization   Kind = "authorization"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidState    Kind = "invalid_state"
	KindTooManyRequests Kind = "too_many_requests"
	KindUpstream        Kind = "upstream"
)

var statusByKind = map[Kind]int{
	KindValidation:      http.StatusBadRequest,
	KindAuthorization:   http.StatusForbidden,
	KindUnauthenticated: http.StatusUnauthorized,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindInvalidState:    http.StatusBadRequest,
	KindTooManyRequests: http.StatusTooManyRequests,
	KindUpstream:        http.StatusInternalServerError,
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error      { return newError(KindValidation, message) }
func Authorization(message string) *Error   { return newError(KindAuthorization, message) }
func Unauthenticated(message string) *Error { return newError(KindUnauthenticated, message) }
func NotFound(message string) *Error        { return newError(KindNotFound, message) }
func Conflict(message string) *Error        { return newError(KindConflict, message) }
func InvalidState(message string) *Error    { return newError(KindInvalidState, message) }
func TooManyRequests(message string) *Error { return newError(KindTooManyRequests, message) }

func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: cause}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

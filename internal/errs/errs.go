// Package errs defines the domain error carried from the data layer to the
// HTTP layer: an explicit status paired with a client-facing message.
package errs

import (
	"net/http"
)

const (
	MsgBadRequest = "Bad request"
	MsgNotFound   = "Not found"
	MsgInternal   = "Internal server error"
)

// Error is returned by the store and handlers when the failure maps to a
// known HTTP status. Msg is sent to the client verbatim.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches any *Error with the same status, so callers can write
// errors.Is(err, errs.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Status == e.Status
}

// nolint
var (
	ErrBadRequest = BadRequest()
	ErrNotFound   = NotFound()
)

func New(status int, msg string) *Error {
	return &Error{Status: status, Msg: msg}
}

func BadRequest() *Error {
	return New(http.StatusBadRequest, MsgBadRequest)
}

func NotFound() *Error {
	return New(http.StatusNotFound, MsgNotFound)
}

func Internal() *Error {
	return New(http.StatusInternalServerError, MsgInternal)
}

// Package errresponse maps handler errors to JSON error responses. Handlers
// return errors instead of writing them; Handle is the single place where
// an error becomes a status code and a {"msg": ...} body.
package errresponse

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/newsboard/internal/errs"
	"github.com/SergeyParamoshkin/newsboard/internal/logging"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Msg string `json:"msg"` // user-level message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// ErrInvalidRequest marks err as a client input failure.
func ErrInvalidRequest(err error) error {
	return &invalidRequest{err: err}
}

type invalidRequest struct {
	err error
}

func (e *invalidRequest) Error() string { return e.err.Error() }
func (e *invalidRequest) Unwrap() error { return e.err }

// nolint
var (
	ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Msg: errs.MsgNotFound}
)

// FromError picks the response for err:
//   - an *errs.Error keeps its status and message;
//   - input failures without a status (bad ids, undecodable bodies, failed
//     validation) become 400 "Bad request";
//   - anything else is a 500 that does not reveal the cause.
func FromError(err error) *ErrResponse {
	var domainErr *errs.Error
	if errors.As(err, &domainErr) {
		return &ErrResponse{Err: err, HTTPStatusCode: domainErr.Status, Msg: domainErr.Msg}
	}

	if isInputError(err) {
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Msg: errs.MsgBadRequest}
	}

	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, Msg: errs.MsgInternal}
}

func isInputError(err error) bool {
	var (
		invalid     *invalidRequest
		numErr      *strconv.NumError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		validateErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &invalid),
		errors.As(err, &numErr),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.As(err, &validateErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}

	return false
}

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h into an http.HandlerFunc, rendering any returned error.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			Render(w, r, err)
		}
	}
}

// Render writes the error response for err and logs server-side failures.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	resp := FromError(err)

	logger := logging.FromContext(r.Context())
	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		logger.Errorw("request failed", "error", err)
	} else {
		logger.Debugw("request rejected", "status", resp.HTTPStatusCode, "error", err)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		logger.Errorw("render error response", "error", rerr)
	}
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if err := render.Render(w, r, ErrNotFound); err != nil {
		logging.FromContext(r.Context()).Errorw(err.Error())
	}
}

// Recoverer turns a panic into a logged 500 with a JSON body.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}

			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logging.FromContext(r.Context()).Errorw("panic", "recovered", rvr, "stack", string(debug.Stack()))
			Render(w, r, errs.Internal())
		}()

		next.ServeHTTP(w, r)
	})
}

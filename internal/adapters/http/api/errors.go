package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = NewKind("bad request")
	ErrRateLimited = NewKind("rate limit exceeded")
	ErrBodyTooBig  = NewKind("request body too large")
)

// NewKind creates a sentinel error kind.
func NewKind(text string) error {
	return errors.New(text)
}

// Error tags err with the handler operation that failed and an optional kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap tags err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// statusOf maps an error to its HTTP status and response code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrBodyTooBig):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, model.ErrLookup):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrDataFormat):
		return http.StatusUnprocessableEntity, "data_format"
	case errors.Is(err, aggregate.ErrInsufficientHistory):
		return http.StatusConflict, "insufficient_history"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

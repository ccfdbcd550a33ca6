package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel errors for the dashboard service.
var (
	ErrLimitRange = fmt.Errorf("%w: ranking limit out of range", model.ErrValidation)
	ErrNoStore    = errors.New("service has no dataset store")
)

// Error kinds used as metric labels.
const (
	KindValidation   = "validation"
	KindLookup       = "lookup"
	KindDataFormat   = "data_format"
	KindHistory      = "insufficient_history"
	KindInternal     = "internal"
	KindCanceled     = "canceled"
	KindNotAvailable = "unavailable"
)

// Kind classifies err into one of the error kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return KindValidation
	case errors.Is(err, model.ErrLookup):
		return KindLookup
	case errors.Is(err, model.ErrDataFormat):
		return KindDataFormat
	case errors.Is(err, aggregate.ErrInsufficientHistory):
		return KindHistory
	case errors.Is(err, ErrNoStore):
		return KindNotAvailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}

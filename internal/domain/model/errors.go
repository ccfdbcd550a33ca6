package model

import (
	"errors"
	"fmt"
)

// Error kinds shared across the domain. Specific errors wrap one of these so
// callers can classify failures with errors.Is.
var (
	ErrDataFormat = errors.New("data format error")
	ErrLookup     = errors.New("lookup failed")
	ErrValidation = errors.New("invalid input")
)

// Sentinel errors for the observation model.
var (
	ErrInvalidSemester  = fmt.Errorf("%w: semester must be 1 or 2", ErrDataFormat)
	ErrMissingIndicator = fmt.Errorf("%w: indicator not present", ErrValidation)
	ErrUnknownIndicator = fmt.Errorf("%w: unknown indicator", ErrLookup)
	ErrUnknownProvince  = fmt.Errorf("%w: unknown province", ErrLookup)
	ErrEmptyDataset     = fmt.Errorf("%w: no observations", ErrValidation)
)

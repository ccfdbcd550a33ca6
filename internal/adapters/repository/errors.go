package repository

import (
	"errors"
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel kinds for dataset errors.
var (
	ErrOpenDataset = errors.New("open dataset")

	ErrReadCSV              = fmt.Errorf("%w: unreadable csv", model.ErrDataFormat)
	ErrMissingColumn        = fmt.Errorf("%w: missing required column", model.ErrDataFormat)
	ErrInvalidValue         = fmt.Errorf("%w: unparsable value", model.ErrDataFormat)
	ErrEmptyProvince        = fmt.Errorf("%w: empty province", model.ErrDataFormat)
	ErrDuplicateObservation = fmt.Errorf("%w: duplicate province period", model.ErrDataFormat)
)

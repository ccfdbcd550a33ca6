package aggregate

import (
	"errors"
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
)

// ErrInsufficientHistory is returned when a comparison needs a previous period that does not exist.
var ErrInsufficientHistory = errors.New("insufficient history")

// Sentinel errors for aggregations.
var (
	ErrPartialIndicator = fmt.Errorf("%w: indicator present on only some observations", model.ErrDataFormat)
	ErrNoProvinces      = fmt.Errorf("%w: select at least one province", model.ErrValidation)
	ErrThresholdRange   = fmt.Errorf("%w: threshold must be within [0.5, 3.0]", model.ErrValidation)
)

package synth

import (
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel kinds for generator errors.
var (
	ErrYearRange   = fmt.Errorf("%w: end year before start year", model.ErrValidation)
	ErrNoProvinces = fmt.Errorf("%w: no provinces to generate", model.ErrValidation)
)

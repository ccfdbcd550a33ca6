package scoring

import (
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel errors for scoring.
var (
	ErrUnknownSector = fmt.Errorf("%w: unknown sector", model.ErrLookup)
	ErrUnknownPillar = fmt.Errorf("%w: unknown GTCI pillar", model.ErrLookup)
	ErrNegativeYears = fmt.Errorf("%w: experience years must not be negative", model.ErrValidation)
)

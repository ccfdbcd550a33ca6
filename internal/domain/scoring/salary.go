package scoring

import (
	"fmt"
	"math"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

const (
	experiencePremium   = 0.03
	underempFloor       = 5.0
	underempPenaltyRate = 0.5
	salaryRounding      = 100.0
)

// EstimateSalary returns a monthly entry salary for sector adjusted by the
// province's wage growth, underemployment slack and years of experience,
// rounded to the nearest hundred rupiah.
func EstimateSalary(in model.Indicators, sector string, experienceYears float64) (float64, error) {
	base, ok := reference.BaseSalary(sector)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSector, sector)
	}
	if experienceYears < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNegativeYears, experienceYears)
	}
	wage, err := in.Get(model.WageGrowthRate)
	if err != nil {
		return 0, err
	}
	under, err := in.Get(model.UnderemploymentRate)
	if err != nil {
		return 0, err
	}

	penalty := math.Max(0, (under-underempFloor)/100)
	estimate := base * (1 + wage/100) * (1 + experiencePremium*experienceYears) * (1 - underempPenaltyRate*penalty)
	return math.RoundToEven(estimate/salaryRounding) * salaryRounding, nil
}

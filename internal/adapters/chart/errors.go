package chart

import (
	"errors"
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
)

// Sentinel kinds for chart errors.
var (
	ErrUnknownChart = fmt.Errorf("%w: unknown chart", model.ErrLookup)
	ErrNoData       = fmt.Errorf("%w: nothing to plot", model.ErrValidation)
	ErrRender       = errors.New("render chart")
)

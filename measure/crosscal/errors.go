package crosscal

import (
	"errors"
	"fmt"
)

// ErrCalibration is the root of every calibration failure.
var ErrCalibration = errors.New("crosscal: calibration failed")

// Calibration failure kinds; all wrap [ErrCalibration].
var (
	ErrNoOverlap         = fmt.Errorf("%w: profiles do not overlap", ErrCalibration)
	ErrNonPositiveSlope  = fmt.Errorf("%w: affine fit has non-positive slope", ErrCalibration)
	ErrInsufficientPairs = fmt.Errorf("%w: not enough value pairs", ErrCalibration)
)

// ErrInvalidConfig reports an option value that cannot be used.
var ErrInvalidConfig = errors.New("crosscal: invalid configuration")

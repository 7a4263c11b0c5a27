package crosscal

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cwbudde/algo-profile/profile"
	"github.com/cwbudde/algo-profile/stats/fit"
	"github.com/cwbudde/algo-profile/stats/summary"
)

// Curve maps a measured value to a reference value.
type Curve interface {
	Eval(v float64) float64
	Segments() int
}

var (
	_ Curve = fit.Line{}
	_ Curve = fit.Piecewise{}
)

// StopReason tells why the piecewise search ended.
type StopReason int

const (
	// StopMaxSegments means every segment count up to the limit fitted.
	StopMaxSegments StopReason = iota
	// StopNonMonotonic means the next fit decreased somewhere.
	StopNonMonotonic
	// StopFitFailure means the next fit could not be computed.
	StopFitFailure
	// StopTimeout means the time budget ran out.
	StopTimeout
)

func (s StopReason) String() string {
	switch s {
	case StopMaxSegments:
		return "max-segments"
	case StopNonMonotonic:
		return "non-monotonic"
	case StopFitFailure:
		return "fit-failure"
	case StopTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("StopReason(%d)", int(s))
	}
}

// Pair is one measured value and the reference value at the same position.
type Pair struct {
	Measured  float64
	Reference float64
}

// Result is the outcome of a calibration.
type Result struct {
	// Curve is the best monotonic model found: the affine fit or a
	// piecewise-linear fit.
	Curve    Curve
	Affine   fit.Line
	Segments int
	Stop     StopReason
	// TimedOut is set when the budget stopped the search. Curve is still
	// the best model found before that.
	TimedOut bool
	Elapsed  time.Duration
	// Pairs are sorted by measured value.
	Pairs []Pair
	// Residuals describes reference - Curve(measured) over Pairs.
	Residuals summary.Stats
	// Alignment is the mapping applied to the measured profile. Zero
	// when the result came from [Fit].
	Alignment profile.AlignResult
}

// Calibrate aligns measured to reference, pairs their values on a common
// grid over the overlap and fits a calibration curve.
func Calibrate(reference, measured *profile.Profile, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	log := cfg.Logger

	aligned, al, err := measured.AlignTo(reference, cfg.alignOptions()...)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrCalibration, err)
	}
	log.Debug().
		Stringer("mode", al.Mode).
		Float64("offset", al.Offset).
		Float64("scale", al.Scale).
		Msg("aligned measured profile")

	grid, err := overlapGrid(reference, aligned)
	if err != nil {
		return Result{}, err
	}
	meas := make([]float64, len(grid))
	ref := make([]float64, len(grid))
	for i, x := range grid {
		if meas[i], err = aligned.ValueAt(x); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrCalibration, err)
		}
		if ref[i], err = reference.ValueAt(x); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrCalibration, err)
		}
	}
	log.Debug().Int("pairs", len(grid)).Float64("from", grid[0]).Float64("to", grid[len(grid)-1]).Msg("sampled overlap")

	res, err := search(cfg, meas, ref)
	if err != nil {
		return Result{}, err
	}
	res.Alignment = al
	return res, nil
}

// overlapGrid returns lo, lo+step, ... below hi, where [lo, hi] is the
// overlap and step the coarser of the two increments.
func overlapGrid(a, b *profile.Profile) ([]float64, error) {
	aLo, aHi := a.Domain()
	bLo, bHi := b.Domain()
	lo, hi := math.Max(aLo, bLo), math.Min(aHi, bHi)
	step := math.Max(a.Increment(), b.Increment())
	if !(hi > lo) {
		return nil, fmt.Errorf("%w: [%g, %g] and [%g, %g]", ErrNoOverlap, aLo, aHi, bLo, bHi)
	}

	n := int(math.Ceil((hi-lo)/step - gridSlack))
	if n < 2 {
		return nil, fmt.Errorf("%w: overlap [%g, %g] holds %d points at step %g", ErrNoOverlap, lo, hi, n, step)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out, nil
}

// gridSlack keeps a point that lands on hi through rounding out of the
// overlap grid.
const gridSlack = 1e-9

// Fit fits a calibration curve to paired values: measured[i] was observed
// where the reference instrument read reference[i].
func Fit(measured, reference []float64, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	return search(cfg, measured, reference)
}

func search(cfg Config, measured, reference []float64) (Result, error) {
	start := cfg.Clock()
	log := cfg.Logger

	pairs, err := sortedPairs(measured, reference)
	if err != nil {
		return Result{}, err
	}
	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i], ys[i] = p.Measured, p.Reference
	}

	affine, err := fit.Linear(xs, ys)
	if err != nil {
		return Result{}, fmt.Errorf("%w: affine fit: %w", ErrCalibration, err)
	}
	if !(affine.Slope > 0) {
		return Result{}, fmt.Errorf("%w: %s", ErrNonPositiveSlope, affine)
	}
	log.Debug().Stringer("affine", affine).Int("pairs", len(pairs)).Msg("affine fit")

	res := Result{
		Curve:    affine,
		Affine:   affine,
		Segments: 1,
		Stop:     StopMaxSegments,
		Pairs:    pairs,
	}
	for segments := 2; segments <= cfg.MaxSegments; segments++ {
		if elapsed := cfg.Clock().Sub(start); elapsed > cfg.Budget {
			res.Stop = StopTimeout
			res.TimedOut = true
			log.Warn().
				Dur("elapsed", elapsed).
				Dur("budget", cfg.Budget).
				Int("segments", res.Segments).
				Msg("calibration search ran out of time, keeping best fit")
			break
		}

		pw, err := fit.PiecewiseLinear(xs, ys, segments)
		if err != nil {
			res.Stop = StopFitFailure
			log.Debug().Err(err).Int("segments", segments).Msg("piecewise fit failed")
			break
		}
		if !pw.NonDecreasingOn(xs) {
			res.Stop = StopNonMonotonic
			log.Debug().Int("segments", segments).Msg("piecewise fit not monotonic")
			break
		}
		log.Debug().Int("segments", segments).Float64("ssr", pw.SSR).Msg("piecewise fit")
		res.Curve = pw
		res.Segments = segments
	}
	res.Residuals = summary.Residuals(xs, ys, res.Curve.Eval)
	res.Elapsed = cfg.Clock().Sub(start)
	log.Debug().
		Int("segments", res.Segments).
		Stringer("stop", res.Stop).
		Float64("residual_rms", res.Residuals.RMS).
		Msg("calibration done")
	return res, nil
}

func sortedPairs(measured, reference []float64) ([]Pair, error) {
	if len(measured) != len(reference) {
		return nil, fmt.Errorf("%w: %d measured values but %d reference values",
			ErrInsufficientPairs, len(measured), len(reference))
	}
	if len(measured) < 2 {
		return nil, fmt.Errorf("%w: need 2, got %d", ErrInsufficientPairs, len(measured))
	}
	pairs := make([]Pair, len(measured))
	for i := range measured {
		m, r := measured[i], reference[i]
		if math.IsNaN(m) || math.IsInf(m, 0) || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("%w: pair %d is not finite (%g, %g)", ErrCalibration, i, m, r)
		}
		pairs[i] = Pair{Measured: m, Reference: r}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Measured < pairs[j].Measured })
	return pairs, nil
}

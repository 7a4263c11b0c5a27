package profile

import (
	"fmt"
	"math"
	"sort"
)

const (
	// gridSlack absorbs rounding when deciding whether the last grid
	// point still fits inside a range.
	gridSlack = 1e-9
	// maxGridPoints bounds resampling grids.
	maxGridPoints = 1 << 24
	// fineGridFraction is the walking step of ResampleY relative to the
	// profile increment.
	fineGridFraction = 0.01
)

// ValueAt returns the linearly interpolated value at x. Sample positions
// return the sample value exactly. Positions outside the sampled range
// fail with [ErrDomain]; there is no extrapolation.
func (p *Profile) ValueAt(x float64) (float64, error) {
	lo, hi := p.Domain()
	if !(x >= lo && x <= hi) {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrDomain, x, lo, hi)
	}
	return p.valueAt(x), nil
}

// valueAt interpolates without a range check.
func (p *Profile) valueAt(x float64) float64 {
	n := len(p.x)
	i := sort.SearchFloat64s(p.x, x)
	switch {
	case i >= n:
		return p.y[n-1]
	case p.x[i] == x:
		return p.y[i]
	case i == 0:
		return p.y[0]
	}
	x0, x1 := p.x[i-1], p.x[i]
	y0, y1 := p.y[i-1], p.y[i]
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// PositionsAt returns, in ascending order, every position where the
// piecewise-linear profile takes the value level: samples equal to level
// and interpolated points where consecutive samples straddle it. A
// profile that rises and falls yields several positions; a flat run at
// exactly level yields each of its samples.
func (p *Profile) PositionsAt(level float64) []float64 {
	var out []float64
	n := len(p.x)
	for i := 0; i < n-1; i++ {
		d0 := p.y[i] - level
		d1 := p.y[i+1] - level
		if d0 == 0 {
			out = append(out, p.x[i])
			continue
		}
		if (d0 < 0 && d1 > 0) || (d0 > 0 && d1 < 0) {
			t := d0 / (d0 - d1)
			out = append(out, p.x[i]+t*(p.x[i+1]-p.x[i]))
		}
	}
	if p.y[n-1] == level {
		out = append(out, p.x[n-1])
	}
	return out
}

// Increment returns the mean sample spacing, which equals the spacing of
// a uniformly sampled profile.
func (p *Profile) Increment() float64 {
	lo, hi := p.Domain()
	return (hi - lo) / float64(len(p.x)-1)
}

// ResampleX returns the profile sampled at lo, lo+step, lo+2*step, ...
// up to the last position. The last position is included when it lies on
// the grid.
func (p *Profile) ResampleX(step float64) (*Profile, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}
	lo, hi := p.Domain()
	x, err := grid(lo, hi, step)
	if err != nil {
		return nil, err
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: step %g leaves fewer than 2 samples", ErrShape, step)
	}
	y := make([]float64, len(x))
	for i, pos := range x {
		y[i] = p.valueAt(pos)
	}
	return p.withSamples(x, y), nil
}

// ResampleY returns a profile whose consecutive samples differ in value
// by at least step. The profile is walked on a grid of 1% of its
// increment; the first and last samples are always kept.
func (p *Profile) ResampleY(step float64) (*Profile, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}
	lo, hi := p.Domain()
	fine, err := grid(lo, hi, fineGridFraction*p.Increment())
	if err != nil {
		return nil, err
	}

	x := []float64{lo}
	y := []float64{p.y[0]}
	last := p.y[0]
	for _, pos := range fine[1:] {
		v := p.valueAt(pos)
		if math.Abs(v-last) >= step {
			x = append(x, pos)
			y = append(y, v)
			last = v
		}
	}
	if x[len(x)-1] < hi {
		x = append(x, hi)
		y = append(y, p.y[len(p.y)-1])
	}
	return p.withSamples(x, y), nil
}

func validateStep(step float64) error {
	if !finite(step) || step <= 0 {
		return fmt.Errorf("%w: step must be > 0: %g", ErrInvalidArgument, step)
	}
	return nil
}

// grid returns lo, lo+step, ... not exceeding hi. The last point is
// clamped to hi when rounding would push it past.
func grid(lo, hi, step float64) ([]float64, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}
	if !(hi >= lo) {
		return nil, fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidArgument, lo, hi)
	}
	span := (hi - lo) / step
	if span > maxGridPoints {
		return nil, fmt.Errorf("%w: step %g yields more than %d points", ErrInvalidArgument, step, maxGridPoints)
	}
	n := int(math.Floor(span+gridSlack)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Min(lo+float64(i)*step, hi)
	}
	return out, nil
}

package profile

import (
	"fmt"
	"math"
)

// Flipped mirrors the profile about position 0.
func (p *Profile) Flipped() *Profile {
	n := len(p.x)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range n {
		x[i] = -p.x[n-1-i]
		y[i] = p.y[n-1-i]
	}
	return p.withSamples(x, y)
}

// Shifted adds dx to every position.
func (p *Profile) Shifted(dx float64) (*Profile, error) {
	if !finite(dx) {
		return nil, fmt.Errorf("%w: shift %g is not finite", ErrInvalidArgument, dx)
	}
	x := make([]float64, len(p.x))
	for i, v := range p.x {
		x[i] = v + dx
	}
	if err := strictlyIncreasing(x); err != nil {
		return nil, err
	}
	return p.withSamples(x, copyOf(p.y)), nil
}

// Scaled multiplies every position by factor, scaling about 0.
func (p *Profile) Scaled(factor float64) (*Profile, error) {
	if !finite(factor) || factor <= 0 {
		return nil, fmt.Errorf("%w: scale factor must be > 0: %g", ErrInvalidArgument, factor)
	}
	x := make([]float64, len(p.x))
	for i, v := range p.x {
		x[i] = v * factor
	}
	if err := strictlyIncreasing(x); err != nil {
		return nil, err
	}
	return p.withSamples(x, copyOf(p.y)), nil
}

// Centered shifts the profile so the midpoint of its edges sits at 0.
func (p *Profile) Centered() (*Profile, error) {
	center, _, err := p.fieldGeometry()
	if err != nil {
		return nil, err
	}
	return p.Shifted(-center)
}

// NormalX scales positions so the edges are 2 apart. Positions are scaled
// about 0, so a centered profile ends up with edges at -1 and 1.
func (p *Profile) NormalX() (*Profile, error) {
	left, right, err := p.Edges()
	if err != nil {
		return nil, err
	}
	return p.Scaled(2 / (right - left))
}

// NormalY scales values so the profile passes through (x0, y0).
func (p *Profile) NormalY(x0, y0 float64) (*Profile, error) {
	if !finite(y0) {
		return nil, fmt.Errorf("%w: target value %g is not finite", ErrInvalidArgument, y0)
	}
	v, err := p.ValueAt(x0)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, fmt.Errorf("%w: value at %g", ErrZeroValue, x0)
	}
	k := y0 / v
	y := make([]float64, len(p.y))
	for i, s := range p.y {
		y[i] = s * k
	}
	return p.withSamples(copyOf(p.x), y), nil
}

// Symmetric averages the profile with its mirror image. The result is
// sampled at multiples of the increment over [-L, L], where L is the
// largest distance from 0 covered on both sides.
func (p *Profile) Symmetric() (*Profile, error) {
	lo, hi := p.Domain()
	limit := math.Min(hi, -lo)
	if !(limit > 0) {
		return nil, fmt.Errorf("%w: domain [%g, %g] does not straddle 0", ErrShape, lo, hi)
	}
	inc := p.Increment()
	k := int(math.Floor(limit/inc + gridSlack))
	if k < 1 {
		return nil, fmt.Errorf("%w: mirrored domain %g is narrower than the increment %g", ErrShape, limit, inc)
	}

	n := 2*k + 1
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range n {
		pos := math.Max(-limit, math.Min(limit, float64(i-k)*inc))
		x[i] = pos
		y[i] = (p.valueAt(pos) + p.valueAt(-pos)) / 2
	}
	return p.withSamples(x, y), nil
}

func strictlyIncreasing(x []float64) error {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) || !finite(x[i]) {
			return fmt.Errorf("%w: positions collapse after transform near %g", ErrShape, x[i])
		}
	}
	return nil
}

func copyOf(s []float64) []float64 {
	return append([]float64(nil), s...)
}

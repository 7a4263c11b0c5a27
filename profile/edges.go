package profile

import (
	"fmt"
	"math"
	"slices"
)

// edgeLevel is the fraction of the peak value that defines a field edge.
const edgeLevel = 0.5

// Edges returns the field edges: the 50%-of-peak crossings closest to the
// peak on its low and high side. It fails with [ErrNoEdges] when the peak
// is not positive or a side has no crossing.
func (p *Profile) Edges() (left, right float64, err error) {
	peak := p.Peak()
	if !(peak.Y > 0) {
		return 0, 0, fmt.Errorf("%w: peak value %g is not positive", ErrNoEdges, peak.Y)
	}

	left, right = math.NaN(), math.NaN()
	for _, c := range p.PositionsAt(edgeLevel * peak.Y) {
		switch {
		case c < peak.X:
			left = c
		case c > peak.X && math.IsNaN(right):
			right = c
		}
	}
	if math.IsNaN(left) || math.IsNaN(right) {
		return 0, 0, fmt.Errorf("%w: no 50%% crossing on %s side of peak at %g",
			ErrNoEdges, missingSide(left), peak.X)
	}
	return left, right, nil
}

func missingSide(left float64) string {
	if math.IsNaN(left) {
		return "low"
	}
	return "high"
}

// fieldGeometry returns the field center and half width from the edges.
func (p *Profile) fieldGeometry() (center, half float64, err error) {
	left, right, err := p.Edges()
	if err != nil {
		return 0, 0, err
	}
	return (left + right) / 2, (right - left) / 2, nil
}

// Flatness returns (max-min)/(max+min) of the umbra values.
func (p *Profile) Flatness() (float64, error) {
	umbra, err := p.Umbra()
	if err != nil {
		return 0, err
	}
	hi, lo := slices.Max(umbra.y), slices.Min(umbra.y)
	if hi+lo == 0 {
		return 0, fmt.Errorf("%w: umbra extremes sum to zero", ErrZeroValue)
	}
	return (hi - lo) / (hi + lo), nil
}

// Symmetry returns the largest relative difference |a-b|/(a+b) between
// umbra values at positions mirrored about the field center. Mirror
// positions are interpolated; pairs whose mirror falls outside the umbra
// are skipped. A perfectly symmetric profile returns 0.
func (p *Profile) Symmetry() (float64, error) {
	center, _, err := p.fieldGeometry()
	if err != nil {
		return 0, err
	}
	umbra, err := p.Umbra()
	if err != nil {
		return 0, err
	}

	lo, hi := umbra.Domain()
	worst := 0.0
	for i, x := range umbra.x {
		m := 2*center - x
		if m < lo || m > hi {
			continue
		}
		a, b := umbra.y[i], umbra.valueAt(m)
		if a+b == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(a-b)/(a+b))
	}
	return worst, nil
}

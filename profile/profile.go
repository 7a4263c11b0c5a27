package profile

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Point is a single (position, value) sample.
type Point struct {
	X float64
	Y float64
}

// Metadata maps keys to string values. A plain value is stored as a
// one-element slice, a tuple value (e.g. jaw positions) as several
// elements. Profiles carry metadata without interpreting it.
type Metadata map[string][]string

// Get returns the first value stored under key, or "".
func (m Metadata) Get(key string) string {
	if v := m[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Clone returns a deep copy of m. A nil map clones to nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// Profile is an immutable sequence of samples with strictly increasing
// positions. The zero value is not usable; construct with [New],
// [FromPairs] or [Pulse].
type Profile struct {
	x    []float64
	y    []float64
	meta Metadata
}

// New builds a profile from parallel position and value slices. Samples
// are sorted by position; duplicate positions, non-finite numbers,
// mismatched lengths and fewer than two samples are rejected with
// [ErrShape]. The inputs are copied.
func New(x, y []float64, meta Metadata) (*Profile, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d positions but %d values", ErrShape, len(x), len(y))
	}
	pts := make([]Point, len(x))
	for i := range x {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	return FromPairs(pts, meta)
}

// FromPairs builds a profile from (position, value) pairs with the same
// validation as [New].
func FromPairs(pts []Point, meta Metadata) (*Profile, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrShape, len(pts))
	}
	for i, pt := range pts {
		if !finite(pt.X) || !finite(pt.Y) {
			return nil, fmt.Errorf("%w: sample %d is not finite (%g, %g)", ErrShape, i, pt.X, pt.Y)
		}
	}

	sorted := slices.Clone(pts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	p := &Profile{
		x:    make([]float64, len(sorted)),
		y:    make([]float64, len(sorted)),
		meta: meta.Clone(),
	}
	for i, pt := range sorted {
		if i > 0 && pt.X == sorted[i-1].X {
			return nil, fmt.Errorf("%w: duplicate position %g", ErrShape, pt.X)
		}
		p.x[i] = pt.X
		p.y[i] = pt.Y
	}
	return p, nil
}

// fromSorted wraps slices already known to be finite and strictly increasing.
// Ownership of x and y passes to the profile.
func fromSorted(x, y []float64, meta Metadata) *Profile {
	return &Profile{x: x, y: y, meta: meta}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of samples.
func (p *Profile) Len() int { return len(p.x) }

// Positions returns a copy of the sample positions.
func (p *Profile) Positions() []float64 { return slices.Clone(p.x) }

// Values returns a copy of the sample values.
func (p *Profile) Values() []float64 { return slices.Clone(p.y) }

// At returns sample i. It panics if i is out of range.
func (p *Profile) At(i int) Point { return Point{X: p.x[i], Y: p.y[i]} }

// Points returns a copy of all samples.
func (p *Profile) Points() []Point {
	out := make([]Point, len(p.x))
	for i := range p.x {
		out[i] = Point{X: p.x[i], Y: p.y[i]}
	}
	return out
}

// Metadata returns a copy of the profile metadata.
func (p *Profile) Metadata() Metadata { return p.meta.Clone() }

// WithMetadata returns a profile sharing p's samples with meta attached.
func (p *Profile) WithMetadata(meta Metadata) *Profile {
	return fromSorted(p.x, p.y, meta.Clone())
}

// Domain returns the smallest and largest sample position.
func (p *Profile) Domain() (lo, hi float64) {
	return p.x[0], p.x[len(p.x)-1]
}

// Peak returns the sample with the largest value. Ties resolve to the
// lowest position.
func (p *Profile) Peak() Point {
	idx := 0
	for i, v := range p.y {
		if v > p.y[idx] {
			idx = i
		}
	}
	return p.At(idx)
}

// String summarises the profile for logs.
func (p *Profile) String() string {
	lo, hi := p.Domain()
	minV, maxV := slices.Min(p.y), slices.Max(p.y)
	return fmt.Sprintf("Profile(n=%d, x=[%g, %g], y=[%g, %g])", len(p.x), lo, hi, minV, maxV)
}

// withSamples returns a profile with p's metadata and the given samples.
func (p *Profile) withSamples(x, y []float64) *Profile {
	return fromSorted(x, y, p.meta)
}

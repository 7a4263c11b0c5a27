package profile

import (
	"fmt"
	"math"
)

// Region identifies a physically meaningful part of a profile.
type Region int

const (
	RegionUmbra Region = iota
	RegionPenumbra
	RegionShoulder
	RegionTail
)

func (r Region) String() string {
	switch r {
	case RegionUmbra:
		return "umbra"
	case RegionPenumbra:
		return "penumbra"
	case RegionShoulder:
		return "shoulder"
	case RegionTail:
		return "tail"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// RegionConfig holds region bounds as relative distances from the field
// center in units of the half field width (an edge sits at 1).
//
//	umbra      f < Umbra
//	penumbra   Umbra <= f < Penumbra
//	shoulder   Penumbra <= f < Shoulder
//	tail       f >= Shoulder
type RegionConfig struct {
	Umbra    float64
	Penumbra float64
	Shoulder float64
}

// DefaultRegionConfig returns the bounds used by [Profile.Umbra],
// [Profile.Penumbra], [Profile.Shoulders] and [Profile.Tails].
func DefaultRegionConfig() RegionConfig {
	return RegionConfig{
		Umbra:    0.8,
		Penumbra: 1.2,
		Shoulder: 1.5,
	}
}

// Validate checks 0 < Umbra < Penumbra < Shoulder.
func (c RegionConfig) Validate() error {
	if !(c.Umbra > 0 && c.Umbra < c.Penumbra && c.Penumbra < c.Shoulder) || !finite(c.Shoulder) {
		return fmt.Errorf("%w: region bounds must satisfy 0 < %g < %g < %g",
			ErrInvalidConfig, c.Umbra, c.Penumbra, c.Shoulder)
	}
	return nil
}

// Pair holds the low-position and high-position halves of a region.
type Pair struct {
	Left  *Profile
	Right *Profile
}

// Partition splits a profile into all of its regions. Rejoined in the
// order returned by [Partition.Profiles], the pieces reproduce the
// input samples exactly.
type Partition struct {
	Umbra     *Profile
	Penumbra  Pair
	Shoulders Pair
	Tails     Pair
}

// Profiles returns the seven pieces in ascending position order.
func (pt Partition) Profiles() []*Profile {
	return []*Profile{
		pt.Tails.Left, pt.Shoulders.Left, pt.Penumbra.Left,
		pt.Umbra,
		pt.Penumbra.Right, pt.Shoulders.Right, pt.Tails.Right,
	}
}

// Bucket layout: seven contiguous index ranges in position order.
const (
	bucketCenter = 3
	numBuckets   = 7
)

type span struct{ start, end int } // [start, end)

type regionMap struct {
	buckets [numBuckets]span
}

// classify assigns every sample to one bucket. Buckets are contiguous
// because the relative distance grows monotonically away from the center
// on each side.
func (p *Profile) classify(cfg RegionConfig) (regionMap, error) {
	var rm regionMap
	if err := cfg.Validate(); err != nil {
		return rm, err
	}
	center, half, err := p.fieldGeometry()
	if err != nil {
		return rm, err
	}

	for i := range rm.buckets {
		rm.buckets[i] = span{start: -1, end: -1}
	}
	for i, x := range p.x {
		f := math.Abs(x-center) / half
		var r Region
		switch {
		case f < cfg.Umbra:
			r = RegionUmbra
		case f < cfg.Penumbra:
			r = RegionPenumbra
		case f < cfg.Shoulder:
			r = RegionShoulder
		default:
			r = RegionTail
		}
		b := bucketCenter + int(r)
		if x < center {
			b = bucketCenter - int(r)
		}
		if rm.buckets[b].start < 0 {
			rm.buckets[b].start = i
		}
		rm.buckets[b].end = i + 1
	}
	return rm, nil
}

func (p *Profile) piece(rm regionMap, b int) (*Profile, error) {
	s := rm.buckets[b]
	if s.start < 0 || s.end-s.start < 2 {
		count := 0
		if s.start >= 0 {
			count = s.end - s.start
		}
		return nil, fmt.Errorf("%w: %s has %d samples, need 2", ErrShape, bucketName(b), count)
	}
	x := make([]float64, s.end-s.start)
	y := make([]float64, s.end-s.start)
	copy(x, p.x[s.start:s.end])
	copy(y, p.y[s.start:s.end])
	return p.withSamples(x, y), nil
}

func bucketName(b int) string {
	r := Region(b - bucketCenter)
	side := "right"
	if b < bucketCenter {
		r = Region(bucketCenter - b)
		side = "left"
	}
	if r == RegionUmbra {
		return r.String()
	}
	return side + " " + r.String()
}

func (p *Profile) pair(cfg RegionConfig, r Region) (Pair, error) {
	rm, err := p.classify(cfg)
	if err != nil {
		return Pair{}, err
	}
	left, err := p.piece(rm, bucketCenter-int(r))
	if err != nil {
		return Pair{}, err
	}
	right, err := p.piece(rm, bucketCenter+int(r))
	if err != nil {
		return Pair{}, err
	}
	return Pair{Left: left, Right: right}, nil
}

// Partition returns every region for the given bounds. Each piece must
// hold at least two samples.
func (p *Profile) Partition(cfg RegionConfig) (Partition, error) {
	rm, err := p.classify(cfg)
	if err != nil {
		return Partition{}, err
	}
	var pieces [numBuckets]*Profile
	for b := range pieces {
		if pieces[b], err = p.piece(rm, b); err != nil {
			return Partition{}, err
		}
	}
	return Partition{
		Umbra:     pieces[bucketCenter],
		Penumbra:  Pair{Left: pieces[2], Right: pieces[4]},
		Shoulders: Pair{Left: pieces[1], Right: pieces[5]},
		Tails:     Pair{Left: pieces[0], Right: pieces[6]},
	}, nil
}

// Umbra returns the central high-dose region.
func (p *Profile) Umbra() (*Profile, error) {
	rm, err := p.classify(DefaultRegionConfig())
	if err != nil {
		return nil, err
	}
	return p.piece(rm, bucketCenter)
}

// Penumbra returns the transition regions around each edge.
func (p *Profile) Penumbra() (left, right *Profile, err error) {
	pr, err := p.pair(DefaultRegionConfig(), RegionPenumbra)
	return pr.Left, pr.Right, err
}

// Shoulders returns the regions between the penumbrae and the tails.
func (p *Profile) Shoulders() (left, right *Profile, err error) {
	pr, err := p.pair(DefaultRegionConfig(), RegionShoulder)
	return pr.Left, pr.Right, err
}

// Tails returns the outer low-dose regions.
func (p *Profile) Tails() (left, right *Profile, err error) {
	pr, err := p.pair(DefaultRegionConfig(), RegionTail)
	return pr.Left, pr.Right, err
}

// Segment returns the samples with start <= x <= stop.
func (p *Profile) Segment(start, stop float64) (*Profile, error) {
	if !(start <= stop) {
		return nil, fmt.Errorf("%w: segment start %g is after stop %g", ErrDomain, start, stop)
	}
	first, last := -1, -1
	for i, x := range p.x {
		if x < start {
			continue
		}
		if x > stop {
			break
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || last-first < 1 {
		return nil, fmt.Errorf("%w: segment [%g, %g] holds fewer than 2 samples", ErrShape, start, stop)
	}
	x := make([]float64, last-first+1)
	y := make([]float64, last-first+1)
	copy(x, p.x[first:last+1])
	copy(y, p.y[first:last+1])
	return p.withSamples(x, y), nil
}

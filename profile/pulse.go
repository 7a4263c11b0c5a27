package profile

import "fmt"

// PulseConfig describes a synthetic unit pulse. All fields except Meta
// are required.
type PulseConfig struct {
	Center    float64
	Width     float64
	Start     float64 // first sample position
	End       float64 // last sample position, included when on the grid
	Increment float64
	Meta      Metadata
}

// Validate checks that the pulse can be sampled.
func (c PulseConfig) Validate() error {
	for name, v := range map[string]float64{
		"center": c.Center, "width": c.Width, "start": c.Start,
		"end": c.End, "increment": c.Increment,
	} {
		if !finite(v) {
			return fmt.Errorf("%w: pulse %s is not finite", ErrInvalidConfig, name)
		}
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: pulse width must be > 0: %g", ErrInvalidConfig, c.Width)
	}
	if c.Increment <= 0 {
		return fmt.Errorf("%w: pulse increment must be > 0: %g", ErrInvalidConfig, c.Increment)
	}
	if c.End <= c.Start {
		return fmt.Errorf("%w: pulse domain [%g, %g] is empty", ErrInvalidConfig, c.Start, c.End)
	}
	return nil
}

// Pulse builds a rectangular pulse of unit height: 1 inside the field,
// 0 outside and 0.5 on a sample that falls exactly on an edge.
func Pulse(cfg PulseConfig) (*Profile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	x, err := grid(cfg.Start, cfg.End, cfg.Increment)
	if err != nil {
		return nil, err
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: pulse increment %g exceeds domain", ErrShape, cfg.Increment)
	}

	half := cfg.Width / 2
	y := make([]float64, len(x))
	for i, pos := range x {
		d := pos - cfg.Center
		if d < 0 {
			d = -d
		}
		switch {
		case d < half:
			y[i] = 1
		case d == half:
			y[i] = 0.5
		}
	}
	return fromSorted(x, y, cfg.Meta.Clone()), nil
}

package profile

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-profile/internal/xcorr"
)

// AlignMode selects how [Profile.AlignTo] registers two profiles.
type AlignMode int

const (
	// AlignEdges moves the field center (midpoint of the 50% edges) onto
	// the reference field center.
	AlignEdges AlignMode = iota
	// AlignCorrelation maximises the cross-correlation of the min-max
	// normalised profiles. It does not need field edges.
	AlignCorrelation
	// AlignPhase uses phase correlation, which only looks at spectral
	// phase and tolerates a different intensity response.
	AlignPhase
)

func (m AlignMode) String() string {
	switch m {
	case AlignEdges:
		return "edges"
	case AlignCorrelation:
		return "correlation"
	case AlignPhase:
		return "phase"
	default:
		return fmt.Sprintf("AlignMode(%d)", int(m))
	}
}

// ParseAlignMode maps "edges", "correlation" or "phase" to a mode.
func ParseAlignMode(s string) (AlignMode, error) {
	for _, m := range []AlignMode{AlignEdges, AlignCorrelation, AlignPhase} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown align mode %q", ErrInvalidConfig, s)
}

// AlignConfig controls [Profile.AlignTo].
type AlignConfig struct {
	Mode AlignMode
	// Scale also matches the field width to the reference. Edge mode only.
	Scale bool
}

// AlignOption mutates an AlignConfig.
type AlignOption func(*AlignConfig)

// DefaultAlignConfig returns edge alignment without scaling.
func DefaultAlignConfig() AlignConfig {
	return AlignConfig{Mode: AlignEdges}
}

// WithAlignMode sets the registration method.
func WithAlignMode(m AlignMode) AlignOption {
	return func(cfg *AlignConfig) {
		cfg.Mode = m
	}
}

// WithScale enables width matching in edge mode.
func WithScale(enabled bool) AlignOption {
	return func(cfg *AlignConfig) {
		cfg.Scale = enabled
	}
}

// ApplyAlignOptions applies zero or more options to the default config.
func ApplyAlignOptions(opts ...AlignOption) AlignConfig {
	cfg := DefaultAlignConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate rejects unknown modes and scaling outside edge mode.
func (c AlignConfig) Validate() error {
	switch c.Mode {
	case AlignEdges, AlignCorrelation, AlignPhase:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Mode)
	}
	if c.Scale && c.Mode != AlignEdges {
		return fmt.Errorf("%w: scaling requires edge alignment, got %s", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// AlignResult describes the position mapping x' = Scale*x + Offset that
// was applied to bring a profile into the reference frame.
type AlignResult struct {
	Mode   AlignMode
	Scale  float64
	Offset float64
}

// AlignTo returns p expressed in the position frame of ref, together with
// the mapping that was applied. Values are left untouched.
func (p *Profile) AlignTo(ref *Profile, opts ...AlignOption) (*Profile, AlignResult, error) {
	cfg := ApplyAlignOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, AlignResult{}, err
	}

	res := AlignResult{Mode: cfg.Mode, Scale: 1}
	var err error
	switch cfg.Mode {
	case AlignEdges:
		res.Scale, res.Offset, err = edgeMapping(ref, p, cfg.Scale)
	default:
		res.Offset, err = correlationOffset(ref, p, cfg.Mode == AlignPhase)
	}
	if err != nil {
		return nil, AlignResult{}, fmt.Errorf("align %s: %w", cfg.Mode, err)
	}

	out := p
	if res.Scale != 1 {
		if out, err = out.Scaled(res.Scale); err != nil {
			return nil, AlignResult{}, err
		}
	}
	if out, err = out.Shifted(res.Offset); err != nil {
		return nil, AlignResult{}, err
	}
	return out, res, nil
}

func edgeMapping(ref, p *Profile, scale bool) (float64, float64, error) {
	refCenter, refHalf, err := ref.fieldGeometry()
	if err != nil {
		return 0, 0, fmt.Errorf("reference: %w", err)
	}
	center, half, err := p.fieldGeometry()
	if err != nil {
		return 0, 0, err
	}
	s := 1.0
	if scale {
		s = refHalf / half
	}
	return s, refCenter - s*center, nil
}

// correlationOffset samples both profiles with the finer of the two
// increments, each starting at its own first position, and converts the
// correlation peak lag back to a position offset.
func correlationOffset(ref, p *Profile, phase bool) (float64, error) {
	step := math.Min(ref.Increment(), p.Increment())
	a, refLo, err := normalisedSamples(ref, step)
	if err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}
	b, lo, err := normalisedSamples(p, step)
	if err != nil {
		return 0, err
	}

	var c []float64
	if phase {
		c, err = xcorr.PhaseCorrelate(a, b)
	} else {
		c, err = xcorr.Correlate(a, b)
	}
	if err != nil {
		return 0, err
	}
	idx, frac := xcorr.Peak(c)
	lag := float64(xcorr.Lag(idx, len(b))) + frac
	return refLo + lag*step - lo, nil
}

func normalisedSamples(p *Profile, step float64) ([]float64, float64, error) {
	lo, hi := p.Domain()
	x, err := grid(lo, hi, step)
	if err != nil {
		return nil, 0, err
	}
	y := make([]float64, len(x))
	for i, pos := range x {
		y[i] = p.valueAt(pos)
	}
	minV, maxV := slices.Min(y), slices.Max(y)
	if maxV == minV {
		return nil, 0, fmt.Errorf("%w: constant profile cannot be correlated", ErrShape)
	}
	for i := range y {
		y[i] = (y[i] - minV) / (maxV - minV)
	}
	return y, lo, nil
}

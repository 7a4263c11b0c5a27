package crosscal

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-profile/profile"
)

// DefaultBudget bounds the piecewise search.
const DefaultBudget = 60 * time.Second

// DefaultMaxSegments is the largest number of linear pieces tried.
const DefaultMaxSegments = 9

// Config controls a calibration run.
type Config struct {
	// Budget is checked before each additional segment is tried. A fit
	// already in progress is never interrupted.
	Budget      time.Duration
	MaxSegments int
	AlignMode   profile.AlignMode
	// AlignScale also matches field widths before pairing. Edge mode only.
	AlignScale bool
	Logger     zerolog.Logger
	// Clock returns the current time. Tests inject a fake.
	Clock func() time.Time
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 60 s budget, up to 9 segments, edge alignment
// and a disabled logger.
func DefaultConfig() Config {
	return Config{
		Budget:      DefaultBudget,
		MaxSegments: DefaultMaxSegments,
		AlignMode:   profile.AlignEdges,
		Logger:      zerolog.Nop(),
		Clock:       time.Now,
	}
}

// WithBudget sets the search time budget.
func WithBudget(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.Budget = d
	}
}

// WithMaxSegments sets the largest segment count tried. 1 disables the
// piecewise search.
func WithMaxSegments(n int) Option {
	return func(cfg *Config) {
		cfg.MaxSegments = n
	}
}

// WithAlignMode selects how [Calibrate] registers the profiles.
func WithAlignMode(m profile.AlignMode) Option {
	return func(cfg *Config) {
		cfg.AlignMode = m
	}
}

// WithAlignScale lets edge alignment rescale the measured profile so its
// field width matches the reference, for modalities with different
// magnification.
func WithAlignScale(enabled bool) Option {
	return func(cfg *Config) {
		cfg.AlignScale = enabled
	}
}

// WithLogger sets the logger for search progress.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		cfg.Clock = now
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate rejects values the search cannot run with.
func (c Config) Validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("%w: budget must be > 0: %s", ErrInvalidConfig, c.Budget)
	}
	if c.MaxSegments < 1 {
		return fmt.Errorf("%w: max segments must be >= 1: %d", ErrInvalidConfig, c.MaxSegments)
	}
	if c.Clock == nil {
		return fmt.Errorf("%w: clock is nil", ErrInvalidConfig)
	}
	if err := profile.ApplyAlignOptions(c.alignOptions()...).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) alignOptions() []profile.AlignOption {
	return []profile.AlignOption{
		profile.WithAlignMode(c.AlignMode),
		profile.WithScale(c.AlignScale),
	}
}

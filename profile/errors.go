package profile

import "errors"

// Errors returned by profile operations.
var (
	// ErrDomain reports a query outside the sampled position range.
	ErrDomain = errors.New("profile: position outside sampled domain")
	// ErrShape reports mismatched lengths, too few samples, non-finite
	// samples, duplicate positions or a region with too few samples.
	ErrShape = errors.New("profile: invalid shape")
	// ErrInvalidArgument reports a non-positive or non-finite step,
	// factor or offset.
	ErrInvalidArgument = errors.New("profile: invalid argument")
	// ErrNoEdges reports a profile without a 50% crossing on both sides
	// of its peak.
	ErrNoEdges = errors.New("profile: field edges not found")
	// ErrZeroValue reports a normalisation point with zero value.
	ErrZeroValue = errors.New("profile: zero value at normalisation point")
	// ErrInvalidConfig reports inconsistent configuration values.
	ErrInvalidConfig = errors.New("profile: invalid configuration")
)

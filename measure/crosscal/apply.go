package crosscal

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/algo-profile/profile"
)

// MetaSegments is the metadata key [Apply] records the curve's segment
// count under.
const MetaSegments = "calibration_segments"

// Apply converts a raw signal profile into a dose profile by mapping
// every value through c. Positions and metadata are kept.
func Apply(c Curve, p *profile.Profile) (*profile.Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil curve", ErrInvalidConfig)
	}
	values := p.Values()
	for i, v := range values {
		values[i] = c.Eval(v)
	}
	meta := p.Metadata()
	if meta == nil {
		meta = profile.Metadata{}
	}
	meta[MetaSegments] = []string{strconv.Itoa(c.Segments())}

	out, err := profile.New(p.Positions(), values, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalibration, err)
	}
	return out, nil
}

// Package profile models one-dimensional dose or intensity profiles as
// measured by radiation-therapy QA instruments (diode arrays, ion chamber
// scans, film strips, planning-system line doses).
//
// A [Profile] is an immutable, position-sorted sequence of samples with
// opaque [Metadata]. Every operation that changes a profile returns a new
// value, so profiles can be shared freely and replaced wholesale by callers
// that need undo.
//
// The package covers:
//
//   - Sampling: [Profile.ValueAt], [Profile.PositionsAt], [Profile.Increment],
//     [Profile.ResampleX], [Profile.ResampleY]
//   - Geometry: [Profile.Edges], [Profile.Flatness], [Profile.Symmetry]
//   - Regions: [Profile.Segment], [Profile.Umbra], [Profile.Penumbra],
//     [Profile.Shoulders], [Profile.Tails], [Profile.Partition]
//   - Transforms: [Profile.Flipped], [Profile.Centered], [Profile.NormalX],
//     [Profile.NormalY], [Profile.Symmetric], [Profile.Shifted], [Profile.Scaled]
//   - Registration: [Profile.AlignTo]
//
// # Usage
//
//	p, err := profile.New(positions, doses, profile.Metadata{"Energy": {"6 MV"}})
//	left, right, err := p.Edges()
//	flat, err := p.Flatness()
//	film, _, err := filmProfile.AlignTo(p)
//
// Field edges are located at 50% of the peak value. Regions are defined by
// the relative distance from the field center in units of the half field
// width; see [RegionConfig].
package profile

// Package crosscal derives a value mapping between two instruments that
// measured the same physical dose profile, for example film optical
// density against ion chamber dose.
//
// The mapping is found in stages:
//
//   - the measured profile is aligned to the reference profile
//   - both are sampled on a common grid over their overlap
//   - the (measured, reference) pairs are sorted by measured value
//   - an affine least-squares fit serves as fallback and sanity check
//   - continuous piecewise-linear fits with 2, 3, ... segments are tried
//     until a fit stops being monotonic, fails, or the time budget runs out
//
// The last monotonic fit wins. A [Result] reports why the search stopped;
// running out of time is not an error but sets [Result.TimedOut].
//
// # Usage
//
//	res, err := crosscal.Calibrate(chamber, film, crosscal.WithBudget(10*time.Second))
//	dose, err := crosscal.Apply(res.Curve, otherFilm)
package crosscal

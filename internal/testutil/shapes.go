package testutil

import (
	"math"
	"math/rand"
)

// Grid returns n positions lo, lo+step, ...
func Grid(lo, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Field evaluates a flat field of unit height with error-function edges at
// center±width/2 for every position in x. sigma sets the penumbra width.
func Field(x []float64, center, width, sigma float64) []float64 {
	out := make([]float64, len(x))
	lo, hi := center-width/2, center+width/2
	for i, pos := range x {
		out[i] = 0.5 * (math.Erf((pos-lo)/sigma) - math.Erf((pos-hi)/sigma))
	}
	return out
}

// Ramp evaluates slope*x+intercept for every position in x.
func Ramp(x []float64, slope, intercept float64) []float64 {
	out := make([]float64, len(x))
	for i, pos := range x {
		out[i] = slope*pos + intercept
	}
	return out
}

// Map applies fn to every element of x.
func Map(x []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = fn(v)
	}
	return out
}

// Jitter adds uniform noise in [-amplitude, amplitude] with a fixed seed.
func Jitter(y []float64, seed int64, amplitude float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v + (rng.Float64()*2-1)*amplitude
	}
	return out
}

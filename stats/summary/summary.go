// Package summary computes descriptive statistics of dose values: umbra
// dose levels, calibration residuals and similar sample sets.
package summary

import (
	"math"

	"github.com/cwbudde/algo-profile/profile"
)

// Stats holds descriptive statistics of a sample set.
type Stats struct {
	N        int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	Skewness float64
	RMS      float64
	Min      float64
	Max      float64
	// MinAt and MaxAt are the positions of the extremes for a profile,
	// or the sample indices for a plain slice.
	MinAt float64
	MaxAt float64
	// CV is StdDev/|Mean|, 0 for a zero mean.
	CV float64
}

// Of computes the statistics of values in a single pass.
func Of(values []float64) Stats {
	var acc Accumulator
	for i, v := range values {
		acc.Add(float64(i), v)
	}
	return acc.Result()
}

// Profile computes the statistics of the values of p.
func Profile(p *profile.Profile) Stats {
	var acc Accumulator
	for _, pt := range p.Points() {
		acc.Add(pt.X, pt.Y)
	}
	return acc.Result()
}

// Residuals returns the statistics of y[i]-model(x[i]).
func Residuals(x, y []float64, model func(float64) float64) Stats {
	var acc Accumulator
	for i := range min(len(x), len(y)) {
		acc.Add(x[i], y[i]-model(x[i]))
	}
	return acc.Result()
}

// Accumulator collects statistics incrementally using Welford updates for
// the moments. The zero value is ready to use.
type Accumulator struct {
	n        int
	mean     float64
	m2, m3   float64
	sumSq    float64
	min, max float64
	minAt    float64
	maxAt    float64
}

// Add records value v observed at position at.
func (a *Accumulator) Add(at, v float64) {
	a.n++
	ni := float64(a.n)
	delta := v - a.mean
	deltaN := delta / ni
	term1 := delta * deltaN * float64(a.n-1)

	// m3 before m2.
	a.m3 += term1*deltaN*(ni-2) - 3*deltaN*a.m2
	a.m2 += term1
	a.mean += deltaN
	a.sumSq += v * v

	if a.n == 1 || v > a.max {
		a.max, a.maxAt = v, at
	}
	if a.n == 1 || v < a.min {
		a.min, a.minAt = v, at
	}
}

// Result returns the statistics so far. An empty accumulator yields NaN
// moments and extremes.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Variance: nan, StdDev: nan, RMS: nan, Min: nan, Max: nan, MinAt: nan, MaxAt: nan}
	}
	nf := float64(a.n)
	s := Stats{
		N:        a.n,
		Mean:     a.mean,
		Variance: a.m2 / nf,
		RMS:      math.Sqrt(a.sumSq / nf),
		Min:      a.min,
		Max:      a.max,
		MinAt:    a.minAt,
		MaxAt:    a.maxAt,
	}
	s.StdDev = math.Sqrt(s.Variance)
	if s.Variance > 0 {
		s.Skewness = (a.m3 / nf) / (s.Variance * s.StdDev)
	}
	if s.Mean != 0 {
		s.CV = s.StdDev / math.Abs(s.Mean)
	}
	return s
}

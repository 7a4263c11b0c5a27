// Package xcorr estimates the displacement between two uniformly sampled
// signals from the peak of their cross-correlation.
package xcorr

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyInput is returned when either signal is empty.
var ErrEmptyInput = errors.New("xcorr: empty input")

const (
	// whitenFloor keeps phase correlation finite on empty spectrum bins.
	whitenFloor = 1e-12
	// whitenRelFloor damps bins far below the strongest one, which carry
	// rounding noise rather than phase.
	whitenRelFloor = 1e-3
)

// Correlate computes the full linear cross-correlation of a and b via FFT.
// The result has length len(a)+len(b)-1; index k corresponds to lag
// k-(len(b)-1), where lag L means a[n+L] lines up with b[n].
func Correlate(a, b []float64) ([]float64, error) {
	return correlate(a, b, false)
}

// PhaseCorrelate is like Correlate but whitens the cross-spectrum so only
// phase contributes. Both inputs are tapered with a Tukey window first.
// The peak location is insensitive to a gain difference between a and b.
func PhaseCorrelate(a, b []float64) ([]float64, error) {
	return correlate(a, b, true)
}

func correlate(a, b []float64, whiten bool) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n, m := len(a), len(b)
	size := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	aIn, bIn := a, b
	if whiten {
		aIn = tapered(a)
		bIn = tapered(b)
	}

	aFreq, err := forward(plan, aIn, size)
	if err != nil {
		return nil, err
	}
	bFreq, err := forward(plan, bIn, size)
	if err != nil {
		return nil, err
	}

	cross := make([]complex128, size)
	for i := range cross {
		cross[i] = aFreq[i] * complex(real(bFreq[i]), -imag(bFreq[i]))
	}
	if whiten {
		re := make([]float64, size)
		im := make([]float64, size)
		mag := make([]float64, size)
		for i, c := range cross {
			re[i], im[i] = real(c), imag(c)
		}
		vecmath.Magnitude(mag, re, im)
		floor := whitenFloor
		for _, v := range mag {
			floor = math.Max(floor, whitenRelFloor*v)
		}
		for i := range cross {
			cross[i] /= complex(mag[i]+floor, 0)
		}
	}

	lagTime := make([]complex128, size)
	if err := plan.Inverse(lagTime, cross); err != nil {
		return nil, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	// Circular result to linear lag order: negative lags sit at the end.
	out := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		out[m-1+i] = real(lagTime[i])
	}
	for i := 0; i < m-1; i++ {
		out[i] = real(lagTime[size-m+1+i])
	}
	return out, nil
}

func forward(plan *algofft.Plan[complex128], x []float64, size int) ([]complex128, error) {
	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}
	return out, nil
}

// tapered returns x multiplied by a Tukey window with 10% cosine tapers.
func tapered(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	vecmath.MulBlockInPlace(out, tukey(len(x), 0.1))
	return out
}

func tukey(n int, alpha float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	edge := alpha * float64(n-1) / 2
	for i := range w {
		pos := float64(i)
		switch {
		case pos < edge:
			w[i] = 0.5 * (1 - math.Cos(math.Pi*pos/edge))
		case pos > float64(n-1)-edge:
			w[i] = 0.5 * (1 - math.Cos(math.Pi*(float64(n-1)-pos)/edge))
		default:
			w[i] = 1
		}
	}
	return w
}

// Lag converts a correlation index to a lag for a second signal of length lenB.
func Lag(index, lenB int) int {
	return index - (lenB - 1)
}

// Peak returns the index of the correlation maximum and a sub-sample
// offset in [-0.5, 0.5] from a parabola through the peak and its
// neighbours. It returns -1 for an empty input.
func Peak(c []float64) (int, float64) {
	if len(c) == 0 {
		return -1, 0
	}
	idx := 0
	for i, v := range c {
		if v > c[idx] {
			idx = i
		}
	}
	if idx == 0 || idx == len(c)-1 {
		return idx, 0
	}

	l, m, r := c[idx-1], c[idx], c[idx+1]
	denom := l - 2*m + r
	if denom >= 0 {
		return idx, 0
	}
	frac := 0.5 * (l - r) / denom
	return idx, math.Max(-0.5, math.Min(0.5, frac))
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

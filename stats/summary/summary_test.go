package summary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-profile/profile"
)

func TestOf(t *testing.T) {
	s := Of([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5, s.Mean, 1e-12)
	assert.InDelta(t, 4, s.Variance, 1e-12)
	assert.InDelta(t, 2, s.StdDev, 1e-12)
	assert.InDelta(t, 0.4, s.CV, 1e-12)
	assert.InDelta(t, math.Sqrt(232.0/8), s.RMS, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 0.0, s.MinAt)
	assert.Equal(t, 7.0, s.MaxAt)
	assert.InDelta(t, 0.65625, s.Skewness, 1e-12)
}

func TestOfSymmetricHasNoSkew(t *testing.T) {
	s := Of([]float64{1, 2, 3, 4, 5})
	assert.InDelta(t, 0, s.Skewness, 1e-12)
}

func TestOfConstant(t *testing.T) {
	s := Of([]float64{3, 3, 3})
	assert.Equal(t, 0.0, s.Variance)
	assert.Equal(t, 0.0, s.Skewness)
	assert.Equal(t, 0.0, s.CV)
}

func TestOfEmpty(t *testing.T) {
	s := Of(nil)
	assert.Equal(t, 0, s.N)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Max))
}

func TestProfileUsesPositions(t *testing.T) {
	p, err := profile.New([]float64{-1, 0.5, 2}, []float64{0.2, 1, 0.1}, nil)
	require.NoError(t, err)

	s := Profile(p)
	assert.Equal(t, 0.5, s.MaxAt)
	assert.Equal(t, 2.0, s.MinAt)
}

func TestResiduals(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3.5, 5, 6.5}

	s := Residuals(x, y, func(v float64) float64 { return 2*v + 1 })
	assert.InDelta(t, 0, s.Mean, 1e-12)
	assert.InDelta(t, 0.5, s.Max, 1e-12)
	assert.Equal(t, 1.0, s.MaxAt)
	assert.InDelta(t, -0.5, s.Min, 1e-12)
	assert.InDelta(t, 0.5/math.Sqrt2, s.RMS, 1e-12)
}

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-profile/internal/testutil"
)

func pulse(t testing.TB, center, width float64) *Profile {
	t.Helper()
	p, err := Pulse(PulseConfig{Center: center, Width: width, Start: -10, End: 10, Increment: 0.5})
	require.NoError(t, err)
	return p
}

func TestAlignEdges(t *testing.T) {
	ref := pulse(t, 0, 6)
	p := pulse(t, 2, 6).WithMetadata(Metadata{"Modality": {"film"}})

	out, res, err := p.AlignTo(ref)
	require.NoError(t, err)
	assert.Equal(t, AlignResult{Mode: AlignEdges, Scale: 1, Offset: -2}, res)
	assert.Equal(t, "film", out.Metadata().Get("Modality"))

	left, right, err := out.Edges()
	require.NoError(t, err)
	assert.Equal(t, -3.0, left)
	assert.Equal(t, 3.0, right)
}

func TestAlignEdgesWithScale(t *testing.T) {
	ref := pulse(t, 0, 6)
	p := pulse(t, 2, 3)

	out, res, err := p.AlignTo(ref, WithScale(true))
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Scale)
	assert.Equal(t, -4.0, res.Offset)

	left, right, err := out.Edges()
	require.NoError(t, err)
	assert.InDelta(t, -3, left, 1e-12)
	assert.InDelta(t, 3, right, 1e-12)
}

func TestAlignCorrelationModesRecoverShift(t *testing.T) {
	x := testutil.Grid(-20, 0.5, 81)
	ref := mustNew(t, x, testutil.Field(x, 0, 8, 1))

	tests := []struct {
		mode  AlignMode
		shift float64
		gain  float64
	}{
		{AlignCorrelation, 2.3, 1},
		{AlignCorrelation, -3.6, 0.5},
		{AlignPhase, 2.3, 0.6},
		{AlignPhase, -1.2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			y := testutil.Field(x, tt.shift, 8, 1)
			for i := range y {
				y[i] *= tt.gain
			}
			p := mustNew(t, x, y)

			out, res, err := p.AlignTo(ref, WithAlignMode(tt.mode))
			require.NoError(t, err)
			assert.Equal(t, tt.mode, res.Mode)
			assert.Equal(t, 1.0, res.Scale)
			assert.InDelta(t, -tt.shift, res.Offset, 0.5)

			lo, _ := out.Domain()
			assert.InDelta(t, -20+res.Offset, lo, 1e-12)
		})
	}
}

func TestAlignCorrelationDifferentGrids(t *testing.T) {
	xr := testutil.Grid(-15, 0.25, 121)
	ref := mustNew(t, xr, testutil.Field(xr, 0, 8, 1))

	xm := testutil.Grid(-12, 1, 25)
	p := mustNew(t, xm, testutil.Field(xm, -1.5, 8, 1))

	_, res, err := p.AlignTo(ref, WithAlignMode(AlignCorrelation))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, res.Offset, 0.25)
}

func TestAlignErrors(t *testing.T) {
	ref := pulse(t, 0, 6)

	_, _, err := pulse(t, 0, 6).AlignTo(ref, WithAlignMode(AlignPhase), WithScale(true))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = pulse(t, 0, 6).AlignTo(ref, WithAlignMode(AlignMode(7)))
	require.ErrorIs(t, err, ErrInvalidConfig)

	flat := mustNew(t, []float64{-1, 0, 1}, []float64{2, 2, 2})
	_, _, err = flat.AlignTo(ref)
	require.ErrorIs(t, err, ErrNoEdges)
	_, _, err = flat.AlignTo(ref, WithAlignMode(AlignCorrelation))
	require.ErrorIs(t, err, ErrShape)
}

func TestParseAlignMode(t *testing.T) {
	for _, m := range []AlignMode{AlignEdges, AlignCorrelation, AlignPhase} {
		got, err := ParseAlignMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseAlignMode("xcorr")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

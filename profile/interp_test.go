package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-profile/internal/testutil"
)

func TestValueAt(t *testing.T) {
	p := mustNew(t, []float64{0, 1, 2}, []float64{0, 10, 40})

	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.5, 25},
		{2, 40},
	}
	for _, tt := range tests {
		got, err := p.ValueAt(tt.x)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}

	for _, x := range []float64{-0.1, 2.1} {
		_, err := p.ValueAt(x)
		require.ErrorIs(t, err, ErrDomain)
	}
}

func TestValueAtSamplesAndMidpoints(t *testing.T) {
	x := testutil.Grid(-3, 0.7, 20)
	y := testutil.Jitter(testutil.Field(x, 2, 6, 1), 3, 0.05)
	p := mustNew(t, x, y)

	for i := range x {
		got, err := p.ValueAt(x[i])
		require.NoError(t, err)
		assert.Equal(t, y[i], got)
		if i > 0 {
			mid, err := p.ValueAt((x[i-1] + x[i]) / 2)
			require.NoError(t, err)
			assert.InDelta(t, (y[i-1]+y[i])/2, mid, 1e-12)
		}
	}
}

func TestPositionsAt(t *testing.T) {
	p := mustNew(t, []float64{0, 1, 2, 3, 4}, []float64{0, 1, 0, 1, 0})

	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, p.PositionsAt(0.5))
	assert.Equal(t, []float64{1, 3}, p.PositionsAt(1))
	assert.Equal(t, []float64{0, 2, 4}, p.PositionsAt(0))
	assert.Empty(t, p.PositionsAt(2))
}

func TestPositionsAtLastSample(t *testing.T) {
	p := mustNew(t, []float64{0, 1}, []float64{0, 1})
	assert.Equal(t, []float64{1}, p.PositionsAt(1))
}

func TestIncrement(t *testing.T) {
	p := mustNew(t, []float64{0, 1, 3}, []float64{0, 0, 0})
	assert.Equal(t, 1.5, p.Increment())
}

func TestResampleX(t *testing.T) {
	x := testutil.Grid(0, 1, 11)
	p := mustNew(t, x, testutil.Ramp(x, 2, 0))

	fine, err := p.ResampleX(0.25)
	require.NoError(t, err)
	require.Equal(t, 41, fine.Len())
	lo, hi := fine.Domain()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
	testutil.RequireSliceNearlyEqual(t, fine.Values(), testutil.Ramp(fine.Positions(), 2, 0), 1e-12)

	coarse, err := p.ResampleX(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3, 6, 9}, coarse.Positions())
	assert.Equal(t, []float64{0, 6, 12, 18}, coarse.Values())
}

func TestResampleXRoundTrip(t *testing.T) {
	x := testutil.Grid(-10, 0.5, 41)
	p := mustNew(t, x, testutil.Field(x, 0, 8, 1.5))

	same, err := p.ResampleX(0.5)
	require.NoError(t, err)
	assert.Equal(t, p.Points(), same.Points())

	fine, err := p.ResampleX(0.1)
	require.NoError(t, err)
	for i, pos := range x {
		got, err := fine.ValueAt(pos)
		require.NoError(t, err)
		assert.InDelta(t, p.At(i).Y, got, 1e-9, "x=%v", pos)
	}
}

func TestResampleXInvalid(t *testing.T) {
	p := mustNew(t, []float64{0, 1}, []float64{0, 1})

	for _, step := range []float64{0, -1} {
		_, err := p.ResampleX(step)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
	_, err := p.ResampleX(5)
	require.ErrorIs(t, err, ErrShape)
}

func TestResampleY(t *testing.T) {
	x := testutil.Grid(0, 1, 11)
	p := mustNew(t, x, x)

	q, err := p.ResampleY(2)
	require.NoError(t, err)
	require.Equal(t, 6, q.Len())

	got := q.Positions()
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 10.0, got[5])
	for i := 1; i < 5; i++ {
		assert.InDelta(t, 2*float64(i), got[i], 0.05)
	}
	testutil.RequireNonDecreasing(t, q.Values(), 0)
}

func TestResampleYInvalid(t *testing.T) {
	p := mustNew(t, []float64{0, 1}, []float64{0, 1})
	_, err := p.ResampleY(0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

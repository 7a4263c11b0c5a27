package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-profile/internal/testutil"
)

// handBuilt is a field of width 10 on a unit grid with a dip at -2 and a
// deeper one at +2.
func handBuilt(t testing.TB) *Profile {
	t.Helper()
	x := testutil.Grid(-10, 1, 21)
	y := []float64{
		0, 0, 0, 0, 0.25, 0.5, // -10 .. -5
		1, 1, 0.9, 1, 1, 1, 0.8, 1, 1, // -4 .. 4
		0.5, 0.25, 0, 0, 0, 0, // 5 .. 10
	}
	return mustNew(t, x, y)
}

func fieldProfile(t testing.TB) *Profile {
	t.Helper()
	x := testutil.Grid(-20, 0.5, 81)
	return mustNew(t, x, testutil.Field(x, 0, 10, 0.25))
}

func TestEdges(t *testing.T) {
	left, right, err := handBuilt(t).Edges()
	require.NoError(t, err)
	assert.Equal(t, -5.0, left)
	assert.Equal(t, 5.0, right)

	left, right, err = fieldProfile(t).Edges()
	require.NoError(t, err)
	assert.Equal(t, -5.0, left)
	assert.Equal(t, 5.0, right)
}

func TestEdgesPulseWithinOneIncrement(t *testing.T) {
	tests := []struct {
		center, width, inc float64
	}{
		{0, 10, 0.1},
		{1.3, 7, 0.1},
		{-4.25, 12.5, 0.3},
		{2.71, 3.3, 0.05},
	}
	for _, tt := range tests {
		p, err := Pulse(PulseConfig{
			Center: tt.center, Width: tt.width,
			Start: -20, End: 20, Increment: tt.inc,
		})
		require.NoError(t, err)

		left, right, err := p.Edges()
		require.NoError(t, err)
		assert.InDelta(t, tt.center-tt.width/2, left, tt.inc)
		assert.InDelta(t, tt.center+tt.width/2, right, tt.inc)
	}
}

func TestEdgesUsesCrossingsNearestPeak(t *testing.T) {
	// Secondary bump beyond the right edge rises above half peak.
	x := testutil.Grid(0, 1, 13)
	y := []float64{0, 0, 1, 1, 1, 1, 0, 0, 0.8, 0.8, 0, 0, 0}
	p := mustNew(t, x, y)

	assert.Len(t, p.PositionsAt(0.5), 4)
	left, right, err := p.Edges()
	require.NoError(t, err)
	assert.Equal(t, 1.5, left)
	assert.Equal(t, 5.5, right)
}

func TestEdgesErrors(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
	}{
		{"non-positive peak", []float64{0, -1, 0, -2}},
		{"no low crossing", []float64{1, 1, 0.2, 0}},
		{"no high crossing", []float64{0, 0.2, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustNew(t, testutil.Grid(0, 1, len(tt.y)), tt.y)
			_, _, err := p.Edges()
			require.ErrorIs(t, err, ErrNoEdges)
		})
	}
}

func TestFlatnessAndSymmetry(t *testing.T) {
	p := handBuilt(t)

	flat, err := p.Flatness()
	require.NoError(t, err)
	assert.InDelta(t, 0.2/1.8, flat, 1e-12)

	sym, err := p.Symmetry()
	require.NoError(t, err)
	assert.InDelta(t, 0.1/1.7, sym, 1e-12)
}

func TestFlatFieldIsSymmetric(t *testing.T) {
	p := fieldProfile(t)

	flat, err := p.Flatness()
	require.NoError(t, err)
	assert.InDelta(t, 0, flat, 1e-9)

	sym, err := p.Symmetry()
	require.NoError(t, err)
	assert.InDelta(t, 0, sym, 1e-9)
}

func TestSymmetryInterpolatesMirror(t *testing.T) {
	// Off-grid center so mirrored samples fall between grid points.
	x := testutil.Grid(-20, 0.5, 81)
	p := mustNew(t, x, testutil.Field(x, 0.1, 10, 0.25))

	sym, err := p.Symmetry()
	require.NoError(t, err)
	assert.Less(t, sym, 1e-6)
}

func TestRegions(t *testing.T) {
	p := fieldProfile(t)

	umbra, err := p.Umbra()
	require.NoError(t, err)
	lo, hi := umbra.Domain()
	assert.Equal(t, 15, umbra.Len())
	assert.Equal(t, -3.5, lo)
	assert.Equal(t, 3.5, hi)

	left, right, err := p.Penumbra()
	require.NoError(t, err)
	assert.Equal(t, []float64{-5.5, -5, -4.5, -4}, left.Positions())
	assert.Equal(t, []float64{4, 4.5, 5, 5.5}, right.Positions())

	left, right, err = p.Shoulders()
	require.NoError(t, err)
	assert.Equal(t, []float64{-7, -6.5, -6}, left.Positions())
	assert.Equal(t, []float64{6, 6.5, 7}, right.Positions())

	left, right, err = p.Tails()
	require.NoError(t, err)
	assert.Equal(t, 26, left.Len())
	assert.Equal(t, 26, right.Len())
	_, hi = left.Domain()
	lo, _ = right.Domain()
	assert.Equal(t, -7.5, hi)
	assert.Equal(t, 7.5, lo)
}

func TestPartitionReconstructsProfile(t *testing.T) {
	for _, p := range []*Profile{handBuilt(t), fieldProfile(t)} {
		part, err := p.Partition(DefaultRegionConfig())
		require.NoError(t, err)

		var joined []Point
		for _, piece := range part.Profiles() {
			joined = append(joined, piece.Points()...)
		}
		assert.Equal(t, p.Points(), joined)
	}
}

func TestPartitionCustomBounds(t *testing.T) {
	part, err := fieldProfile(t).Partition(RegionConfig{Umbra: 0.5, Penumbra: 1.1, Shoulder: 2})
	require.NoError(t, err)

	assert.Equal(t, 9, part.Umbra.Len())
	assert.Equal(t, []float64{2.5, 3, 3.5, 4, 4.5, 5}, part.Penumbra.Right.Positions())
	assert.Equal(t, []float64{-9.5, -9, -8.5, -8, -7.5, -7, -6.5, -6, -5.5}, part.Shoulders.Left.Positions())
}

func TestPartitionErrors(t *testing.T) {
	p := fieldProfile(t)

	for _, cfg := range []RegionConfig{
		{Umbra: 0, Penumbra: 1, Shoulder: 2},
		{Umbra: 1, Penumbra: 0.5, Shoulder: 2},
		{Umbra: 0.5, Penumbra: 1, Shoulder: math.Inf(1)},
	} {
		_, err := p.Partition(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	}

	// Bounds so tight the umbra keeps a single sample.
	_, err := p.Partition(RegionConfig{Umbra: 0.05, Penumbra: 1.2, Shoulder: 1.5})
	require.ErrorIs(t, err, ErrShape)

	pulse, err := Pulse(PulseConfig{Center: 0, Width: 4, Start: -4, End: 4, Increment: 1})
	require.NoError(t, err)
	_, _, err = pulse.Penumbra()
	require.ErrorIs(t, err, ErrShape)
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "umbra", RegionUmbra.String())
	assert.Equal(t, "tail", RegionTail.String())
	assert.Equal(t, "Region(9)", Region(9).String())
}

func TestSegment(t *testing.T) {
	p := handBuilt(t)

	s, err := p.Segment(-1.5, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, s.Positions())

	s, err = p.Segment(-10, 10)
	require.NoError(t, err)
	assert.Equal(t, p.Points(), s.Points())

	_, err = p.Segment(0.2, 0.8)
	require.ErrorIs(t, err, ErrShape)

	_, err = p.Segment(2, 1)
	require.ErrorIs(t, err, ErrDomain)
}

// Package testutil holds sample shapes and tolerance checks shared by
// package tests.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireNonDecreasing fails t if values ever drop by more than eps.
func RequireNonDecreasing(t testing.TB, values []float64, eps float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1]-eps {
			t.Fatalf("index %d: %v drops below previous %v", i, values[i], values[i-1])
		}
	}
}

// MaxAbsDiff returns the largest absolute elementwise difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	worst := 0.0
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}
	return worst, nil
}

package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by the fitting functions.
var (
	ErrLengthMismatch = errors.New("fit: x and y must have the same length")
	ErrTooFewPoints   = errors.New("fit: not enough points for the requested model")
	ErrDegenerate     = errors.New("fit: x values have no spread")
	ErrUnsorted       = errors.New("fit: x values must be sorted ascending")
	ErrSegments       = errors.New("fit: segment count must be >= 1")
	ErrNoSolution     = errors.New("fit: no breakpoint placement gives a solvable system")
)

// Line is an affine model y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// Eval returns the model value at x.
func (l Line) Eval(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Segments reports the number of linear pieces, always 1.
func (l Line) Segments() int { return 1 }

// String formats the line for logs and CLI output.
func (l Line) String() string {
	return fmt.Sprintf("y = %.6g*x %+.6g", l.Slope, l.Intercept)
}

// Linear computes the ordinary least-squares line through (x, y).
func Linear(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, ErrLengthMismatch
	}
	n := len(x)
	if n < 2 {
		return Line{}, fmt.Errorf("%w: linear fit needs 2, got %d", ErrTooFewPoints, n)
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) || math.IsNaN(alpha) {
		return Line{}, ErrDegenerate
	}
	return Line{Slope: beta, Intercept: alpha}, nil
}

// Package fit provides the least-squares models used to build calibration
// curves: an affine [Line] and a continuous piecewise-linear [Piecewise]
// model whose breakpoints are found by a deterministic search.
//
// # Usage
//
//	line, err := fit.Linear(x, y)
//	pw, err := fit.PiecewiseLinear(x, y, 3) // x sorted ascending
//	if pw.NonDecreasingOn(x) {
//		dose := pw.Eval(signal)
//	}
package fit

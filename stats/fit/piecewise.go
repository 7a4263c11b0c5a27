package fit

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Search parameters for breakpoint placement.
const (
	maxSweeps      = 25
	scanPoints     = 10
	goldenIters    = 36
	sweepRelTol    = 1e-12
	monotoneRelTol = 1e-9
	exactFitRelTol = 1e-18
)

var invPhi = (math.Sqrt(5) - 1) / 2

// Piecewise is a continuous piecewise-linear model. Breaks holds
// Segments()+1 ascending positions; Breaks[0] and the last entry bound
// the fitted domain. Segment i covers [Breaks[i], Breaks[i+1]] and has
// value Slopes[i]*x + Intercepts[i]. Outside the fitted domain the first
// and last segment extrapolate.
type Piecewise struct {
	Breaks     []float64
	Slopes     []float64
	Intercepts []float64
	SSR        float64 // residual sum of squares of the fit
}

// Segments returns the number of linear pieces.
func (p Piecewise) Segments() int { return len(p.Slopes) }

// Eval returns the model value at x.
func (p Piecewise) Eval(x float64) float64 {
	if len(p.Slopes) == 0 {
		return math.NaN()
	}
	i := p.segmentIndex(x)
	return p.Slopes[i]*x + p.Intercepts[i]
}

func (p Piecewise) segmentIndex(x float64) int {
	if len(p.Breaks) < 3 {
		return 0
	}
	inner := p.Breaks[1 : len(p.Breaks)-1]
	return sort.SearchFloat64s(inner, x)
}

// NonDecreasingOn reports whether the model never decreases on
// [xs[0], xs[len(xs)-1]] for ascending positions xs. Every segment that
// overlaps that interval is checked, including segments no sample falls
// in. A relative tolerance absorbs rounding at breakpoints.
func (p Piecewise) NonDecreasingOn(xs []float64) bool {
	if len(xs) < 2 || len(p.Slopes) == 0 {
		return true
	}
	vals := make([]float64, len(xs))
	scale := 1.0
	for i, x := range xs {
		vals[i] = p.Eval(x)
		scale = math.Max(scale, math.Abs(vals[i]))
	}
	tol := monotoneRelTol * scale
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1]-tol {
			return false
		}
	}

	first, last := xs[0], xs[len(xs)-1]
	for i, slope := range p.Slopes {
		lo, hi := first, last
		if i > 0 {
			lo = math.Max(lo, p.Breaks[i])
		}
		if i < len(p.Slopes)-1 {
			hi = math.Min(hi, p.Breaks[i+1])
		}
		if hi > lo && slope*(hi-lo) < -tol {
			return false
		}
	}
	return true
}

// String formats the breakpoints and slopes for logs and CLI output.
func (p Piecewise) String() string {
	var sb strings.Builder
	for i := range p.Slopes {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "[%.6g, %.6g]: y = %.6g*x %+.6g",
			p.Breaks[i], p.Breaks[i+1], p.Slopes[i], p.Intercepts[i])
	}
	return sb.String()
}

// PiecewiseLinear fits a continuous piecewise-linear model with the given
// number of segments to (x, y). x must be sorted ascending.
//
// The model is linear in its coefficients once the breakpoints are fixed,
// so each candidate placement is solved exactly with a hinge basis
//
//	y = b0 + b1*u + sum_j g_j * max(0, u - c_j)
//
// in normalised coordinates u in [0, 1]. Breakpoints start at index
// quantiles of x and are refined by coordinate descent: a coarse scan of
// each breakpoint's admissible interval followed by golden-section search.
// The search is deterministic.
func PiecewiseLinear(x, y []float64, segments int) (Piecewise, error) {
	if len(x) != len(y) {
		return Piecewise{}, ErrLengthMismatch
	}
	if segments < 1 {
		return Piecewise{}, ErrSegments
	}
	n := len(x)
	if n < segments+2 {
		return Piecewise{}, fmt.Errorf("%w: %d segments need %d points, got %d",
			ErrTooFewPoints, segments, segments+2, n)
	}
	for i := 1; i < n; i++ {
		if x[i] < x[i-1] {
			return Piecewise{}, ErrUnsorted
		}
	}
	x0, span := x[0], x[n-1]-x[0]
	if !(span > 0) {
		return Piecewise{}, ErrDegenerate
	}

	if segments == 1 {
		line, err := Linear(x, y)
		if err != nil {
			return Piecewise{}, err
		}
		var ssr float64
		for i := range x {
			r := y[i] - line.Eval(x[i])
			ssr += r * r
		}
		return Piecewise{
			Breaks:     []float64{x[0], x[n-1]},
			Slopes:     []float64{line.Slope},
			Intercepts: []float64{line.Intercept},
			SSR:        ssr,
		}, nil
	}

	h := hinge{u: make([]float64, n), y: y}
	for i := range x {
		h.u[i] = (x[i] - x0) / span
	}

	c := h.initialBreaks(segments)
	best, _ := h.solve(c)
	if math.IsInf(best, 1) {
		// Quantile placement collapsed on repeated x values; fall back
		// to even spacing before giving the search a chance.
		for j := 1; j < segments; j++ {
			c[j] = float64(j) / float64(segments)
		}
		best, _ = h.solve(c)
	}

	floor := exactFitRelTol * sumSquares(y)
	for sweep := 0; sweep < maxSweeps && best > floor; sweep++ {
		prev := best
		for j := 1; j < segments; j++ {
			t, f := h.lineSearch(c, j)
			if f < best {
				c[j] = t
				best = f
			}
		}
		if !math.IsInf(prev, 1) && prev-best <= sweepRelTol*(prev+1e-300) {
			break
		}
	}
	if math.IsInf(best, 1) {
		return Piecewise{}, ErrNoSolution
	}
	best, coef := h.solve(c)
	return h.toPiecewise(c, coef, x0, span, x[n-1], best), nil
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

// hinge evaluates least-squares fits for fixed normalised breakpoints.
type hinge struct {
	u []float64
	y []float64
}

// initialBreaks returns c[0..k] with c[0]=0, c[k]=1 and interior
// breakpoints at index quantiles.
func (h hinge) initialBreaks(k int) []float64 {
	n := len(h.u)
	c := make([]float64, k+1)
	c[k] = 1
	for j := 1; j < k; j++ {
		c[j] = h.u[j*(n-1)/k]
	}
	for j := 1; j <= k; j++ {
		if c[j] <= c[j-1] {
			for i := 1; i < k; i++ {
				c[i] = float64(i) / float64(k)
			}
			break
		}
	}
	return c
}

// solve returns the SSR and coefficients for breakpoints c. The tall
// hinge design matrix is solved by QR least squares; a singular or
// ill-conditioned system yields +Inf.
func (h hinge) solve(c []float64) (float64, []float64) {
	k := len(c) - 1
	cols := k + 1
	n := len(h.u)
	data := make([]float64, n*cols)
	for i, u := range h.u {
		row := data[i*cols : (i+1)*cols]
		row[0] = 1
		row[1] = u
		for j := 1; j < k; j++ {
			row[1+j] = math.Max(0, u-c[j])
		}
	}

	var sol mat.VecDense
	if err := sol.SolveVec(mat.NewDense(n, cols, data), mat.NewVecDense(n, h.y)); err != nil {
		return math.Inf(1), nil
	}
	coef := make([]float64, cols)
	for j := range coef {
		coef[j] = sol.AtVec(j)
	}

	var ssr float64
	for i, u := range h.u {
		r := h.y[i] - h.eval(c, coef, u)
		ssr += r * r
	}
	if math.IsNaN(ssr) {
		return math.Inf(1), nil
	}
	return ssr, coef
}

func (h hinge) eval(c, coef []float64, u float64) float64 {
	v := coef[0] + coef[1]*u
	for j := 1; j < len(c)-1; j++ {
		if u > c[j] {
			v += coef[1+j] * (u - c[j])
		}
	}
	return v
}

// lineSearch minimises the SSR over breakpoint j, keeping the others
// fixed. c is restored before returning.
func (h hinge) lineSearch(c []float64, j int) (float64, float64) {
	lo, hi := c[j-1], c[j+1]
	orig := c[j]
	defer func() { c[j] = orig }()

	f := func(t float64) float64 {
		c[j] = t
		ssr, _ := h.solve(c)
		return ssr
	}

	// Coarse scan to pick a bracket.
	cand := make([]float64, scanPoints+2)
	cand[0], cand[len(cand)-1] = lo, hi
	bestT, bestF, bestG := orig, math.Inf(1), -1
	for g := 1; g <= scanPoints; g++ {
		cand[g] = lo + (hi-lo)*float64(g)/float64(scanPoints+1)
		if v := f(cand[g]); v < bestF {
			bestT, bestF, bestG = cand[g], v, g
		}
	}
	if bestG < 0 {
		return orig, math.Inf(1)
	}

	// Golden-section refinement inside the neighbouring cells.
	a, b := cand[bestG-1], cand[bestG+1]
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for it := 0; it < goldenIters; it++ {
		if f1 <= f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	if f1 < bestF {
		bestT, bestF = x1, f1
	}
	if f2 < bestF {
		bestT, bestF = x2, f2
	}
	return bestT, bestF
}

func (h hinge) toPiecewise(c, coef []float64, x0, span, xEnd, ssr float64) Piecewise {
	k := len(c) - 1
	p := Piecewise{
		Breaks:     make([]float64, k+1),
		Slopes:     make([]float64, k),
		Intercepts: make([]float64, k),
		SSR:        ssr,
	}
	for i := 0; i <= k; i++ {
		p.Breaks[i] = x0 + c[i]*span
	}
	p.Breaks[0], p.Breaks[k] = x0, xEnd

	slopeU := coef[1]
	for i := 0; i < k; i++ {
		if i > 0 {
			slopeU += coef[1+i]
		}
		slope := slopeU / span
		p.Slopes[i] = slope
		p.Intercepts[i] = h.eval(c, coef, c[i]) - slope*p.Breaks[i]
	}
	return p
}

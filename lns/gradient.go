// SPDX-License-Identifier: MIT

package lns

import (
	"math"

	"github.com/katalvlaran/lvsim/matrix"
)

// GradientDescent solves A·x = b for symmetric positive-definite A by
// steepest descent with exact line search.
//
//	r ← b − A·x
//	loop:
//	    α ← rᵀr / rᵀA r          (rᵀA r = 0 ⇒ stop: r is zero or A is not SPD)
//	    x ← x + α r
//	    r ← r − α A r            (exact b − A·x every WithResidualRefresh iterations)
//	    stop when rᵀr ≤ t² · r₀ᵀr₀
//
// A zero initial residual returns 0 iterations immediately.
// Complexity: O(nnz(A)) per iteration, O(n) extra memory.
func GradientDescent[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], stop StopCondition, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateSystem(a, x, b); err != nil {
		return 0, lnsErrorf(opGD, err)
	}
	limit, capErr := stop.limit(DefaultMaxIterations, true)

	n := len(x)
	r := make(matrix.Vector[T], n)
	ar := make(matrix.Vector[T], n)
	residual(a, x, b, r)

	rr0 := float64(r.SquaredLength())
	if rr0 == 0 {
		return 0, nil
	}
	rr := rr0
	k := 0
	for k < limit {
		_ = a.MulVecTo(ar, r)
		rAr, _ := r.Dot(ar)
		if rAr == 0 {
			break
		}
		alpha := r.SquaredLength() / rAr
		_ = x.AddScaled(alpha, r)
		k++

		if k%o.refresh == 0 {
			residual(a, x, b, r)
		} else {
			_ = r.AddScaled(-alpha, ar)
		}
		rr = float64(r.SquaredLength())
		if math.IsNaN(rr) || math.IsInf(rr, 0) {
			return k, lnsErrorf(opGD, ErrDiverged)
		}
		if stop.convergedRelative(rr, rr0) {
			break
		}
	}
	logSummary(o, opGD, k, math.Sqrt(rr))
	if capErr && k >= limit && !stop.convergedRelative(rr, rr0) {
		return k, lnsErrorf(opGD, ErrNotConverged)
	}

	return k, nil
}

// residual writes r = b − A·x. Shapes are validated by the caller.
func residual[T matrix.Float](a matrix.Matrix[T], x, b, r matrix.Vector[T]) {
	_ = a.MulVecTo(r, x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
}

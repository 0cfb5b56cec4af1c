// SPDX-License-Identifier: MIT

package lns

import (
	"math"

	"github.com/katalvlaran/lvsim/matrix"
)

// ConjugateGradient solves A·x = b for symmetric positive-definite A with the
// preconditioned conjugate gradient method, building the preconditioner
// selected by WithPreconditioner (identity by default) from A.
//
// A threshold condition without WithMaxIterations is capped at N = len(x);
// reaching N is not an error.
func ConjugateGradient[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], stop StopCondition, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateSystem(a, x, b); err != nil {
		return 0, lnsErrorf(opCG, err)
	}
	pc, err := NewPreconditioner(o.preconditioner, a)
	if err != nil {
		return 0, lnsErrorf(opCG, err)
	}

	return pcg(a, x, b, pc, stop, o)
}

// PreconditionedCG is ConjugateGradient with a caller-supplied preconditioner.
// A nil pc means Identity.
//
//	r ← b − A·x;  z ← M⁻¹r;  d ← z
//	loop:
//	    α ← rᵀz / dᵀA d        (dᵀA d = 0 ⇒ stop)
//	    x ← x + α d
//	    r ← r − α A d           (exact b − A·x every WithResidualRefresh iterations)
//	    z ← M⁻¹r
//	    stop when rᵀz ≤ t² · r₀ᵀz₀
//	    β ← rᵀz_new / rᵀz_old;  d ← z + β d
//
// Complexity: O(nnz(A) + cost(M⁻¹)) per iteration, O(n) extra memory.
func PreconditionedCG[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], pc Preconditioner[T], stop StopCondition, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateSystem(a, x, b); err != nil {
		return 0, lnsErrorf(opCG, err)
	}
	if pc == nil {
		pc = Identity[T]{}
	}

	return pcg(a, x, b, pc, stop, o)
}

func pcg[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], pc Preconditioner[T], stop StopCondition, o Options) (int, error) {
	n := len(x)
	limit, _ := stop.limit(n, false)

	r := make(matrix.Vector[T], n)
	z := make(matrix.Vector[T], n)
	ad := make(matrix.Vector[T], n)
	residual(a, x, b, r)
	if err := pc.Apply(z, r); err != nil {
		return 0, lnsErrorf(opCG, err)
	}
	d := z.Clone()

	rz, _ := r.Dot(z)
	rz0 := float64(rz)
	if rz0 == 0 {
		return 0, nil
	}

	k := 0
	for k < limit {
		_ = a.MulVecTo(ad, d)
		dAd, _ := d.Dot(ad)
		if dAd == 0 {
			break
		}
		alpha := rz / dAd
		_ = x.AddScaled(alpha, d)

		if (k+1)%o.refresh == 0 {
			residual(a, x, b, r)
		} else {
			_ = r.AddScaled(-alpha, ad)
		}
		if err := pc.Apply(z, r); err != nil {
			return k, lnsErrorf(opCG, err)
		}
		rzNew, _ := r.Dot(z)
		k++

		f := float64(rzNew)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return k, lnsErrorf(opCG, ErrDiverged)
		}
		if stop.convergedRelative(math.Abs(f), math.Abs(rz0)) {
			rz = rzNew

			break
		}
		beta := rzNew / rz
		for i := range d {
			d[i] = z[i] + beta*d[i]
		}
		rz = rzNew
	}
	logSummary(o, opCG, k, math.Sqrt(math.Abs(float64(rz))))

	return k, nil
}

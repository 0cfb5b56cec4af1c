// SPDX-License-Identifier: MIT

package lns

import (
	"math"

	"github.com/katalvlaran/lvsim/matrix"
)

// prepareDiagonal validates the system and returns A's diagonal,
// rejecting zero entries with matrix.ErrSingular.
func prepareDiagonal[T matrix.Float](tag string, a matrix.Matrix[T], x, b matrix.Vector[T]) (matrix.Vector[T], error) {
	if err := matrix.ValidateSystem(a, x, b); err != nil {
		return nil, lnsErrorf(tag, err)
	}
	diag := a.Diagonal()
	for _, d := range diag {
		if d == 0 {
			return nil, lnsErrorf(tag, matrix.ErrSingular)
		}
	}

	return diag, nil
}

// Jacobi solves A·x = b with the Jacobi method.
//
// Each sweep computes every x_i from the previous iterate only:
//
//	x_i ← (b_i − Σ_{j≠i} a_ij · x_j^old) / a_ii
//
// The convergence measure is max_i |x_i − x_i^old|. Jacobi converges for
// strictly diagonally dominant A.
//
// Errors: matrix.ErrDimensionMismatch, matrix.ErrSingular (zero diagonal),
// ErrDiverged, ErrNotConverged (threshold-only cap).
// Complexity: O(nnz(A)) per sweep, O(n) extra memory.
func Jacobi[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], stop StopCondition, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	diag, err := prepareDiagonal(opJacobi, a, x, b)
	if err != nil {
		return 0, err
	}
	limit, capErr := stop.limit(DefaultMaxIterations, true)

	n := len(x)
	old := x.Clone()
	var delta float64
	k := 0
	for k < limit {
		copy(old, x)
		for i := 0; i < n; i++ {
			var sum T
			for j, v := range a.Row(i) {
				if j != i {
					sum += v * old[j]
				}
			}
			x[i] = (b[i] - sum) / diag[i]
		}
		k++

		delta = maxDelta(x, old)
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			return k, lnsErrorf(opJacobi, ErrDiverged)
		}
		if stop.converged(delta) {
			logSummary(o, opJacobi, k, delta)

			return k, nil
		}
	}
	logSummary(o, opJacobi, k, delta)
	if capErr {
		return k, lnsErrorf(opJacobi, ErrNotConverged)
	}

	return k, nil
}

// GaussSeidel solves A·x = b with the Gauss-Seidel method.
//
// The sweep updates x in place so row i already sees x_0..x_{i-1} of the
// current sweep:
//
//	x_i ← (b_i − Σ_{j≠i} a_ij · x_j) / a_ii
//
// The convergence measure is the largest per-component change of the sweep.
// Errors and complexity as Jacobi, without the extra vector.
func GaussSeidel[T matrix.Float](a matrix.Matrix[T], x, b matrix.Vector[T], stop StopCondition, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	diag, err := prepareDiagonal(opGS, a, x, b)
	if err != nil {
		return 0, err
	}
	limit, capErr := stop.limit(DefaultMaxIterations, true)

	n := len(x)
	var delta float64
	k := 0
	for k < limit {
		delta = 0
		for i := 0; i < n; i++ {
			var sum T
			for j, v := range a.Row(i) {
				if j != i {
					sum += v * x[j]
				}
			}
			next := (b[i] - sum) / diag[i]
			d := math.Abs(float64(next - x[i]))
			if d > delta || math.IsNaN(d) {
				delta = d
			}
			x[i] = next
		}
		k++

		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			return k, lnsErrorf(opGS, ErrDiverged)
		}
		if stop.converged(delta) {
			logSummary(o, opGS, k, delta)

			return k, nil
		}
	}
	logSummary(o, opGS, k, delta)
	if capErr {
		return k, lnsErrorf(opGS, ErrNotConverged)
	}

	return k, nil
}

// maxDelta returns max_i |x_i − y_i|, propagating NaN.
func maxDelta[T matrix.Float](x, y matrix.Vector[T]) float64 {
	var m float64
	for i := range x {
		d := math.Abs(float64(x[i] - y[i]))
		if d > m || math.IsNaN(d) {
			m = d
		}
	}

	return m
}

func logSummary(o Options, method string, k int, measure float64) {
	o.logger.V(2).Info("solve finished", "method", method, "iterations", k, "measure", measure)
}

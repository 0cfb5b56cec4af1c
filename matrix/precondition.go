// SPDX-License-Identifier: MIT

package matrix

import "math"

// IncompleteCholesky computes the zero-fill incomplete Cholesky factor of a
// symmetric positive-definite matrix.
//
// Only the lower triangle of a is read, and a itself is left untouched. For
// each column k:
//
//	l_kk = sqrt(a_kk)                         (a_kk <= 0 → ErrNotPositiveDefinite)
//	l_ik = a_ik / l_kk                        for i > k with a_ik != 0
//	a_ij -= l_ik · l_jk                       for i >= j > k, only where a_ij != 0
//
// No fill-in is introduced: the factor's pattern is the lower-triangle pattern
// of a. The result has a's layout; for Dense the upper triangle is zero.
// L·Lᵀ reproduces a exactly on that pattern when the exact Cholesky factor
// has no fill (tridiagonal, banded-without-gaps), and approximately otherwise.
//
// Complexity: O(Σ_k |col k|²) with |col k| the stored entries below the diagonal.
func IncompleteCholesky[T Float](a Matrix[T]) (Matrix[T], error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.Rows()

	// Stage 1: copy the nonzero lower triangle row by row and index its columns.
	lower := make([]*SparseVector[T], n)
	below := make([][]int, n) // below[k] = rows i > k storing (i,k), ascending
	for i := 0; i < n; i++ {
		row := NewSparseVector[T](0)
		for j, v := range a.Row(i) {
			if j > i {
				break
			}
			if v == 0 {
				continue
			}
			row.idx = append(row.idx, j)
			row.val = append(row.val, v)
			if j < i {
				below[j] = append(below[j], i)
			}
		}
		lower[i] = row
	}

	// Stage 2: right-looking elimination restricted to the pattern.
	for k := 0; k < n; k++ {
		pivot := lower[k].At(k)
		if !(pivot > 0) {
			return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
		}
		d := T(math.Sqrt(float64(pivot)))
		_ = lower[k].Set(k, d)

		col := below[k]
		for _, i := range col {
			if v := lower[i].At(k); v != 0 {
				_ = lower[i].Set(k, v/d)
			}
		}
		for jj, j := range col {
			ljk := lower[j].At(k)
			if ljk == 0 {
				continue
			}
			for _, i := range col[jj:] {
				lik := lower[i].At(k)
				if lik == 0 {
					continue
				}
				row := lower[i]
				if slot, ok := row.search(j); ok && row.val[slot] != 0 {
					row.val[slot] -= lik * ljk
				}
			}
		}
	}

	// Stage 3: emit in the input layout.
	if a.Layout() == LayoutSparse {
		return &Sparse[T]{cols: n, rows: lower}, nil
	}
	out := &Dense[T]{r: n, c: n, data: make([]T, n*n)}
	for i, row := range lower {
		for k, j := range row.idx {
			out.data[i*n+j] = row.val[k]
		}
	}

	return out, nil
}

// SolveLower solves L·x = b by forward substitution, writing x.
// Only entries with j <= i are read. x may alias b.
// Errors: ErrDimensionMismatch, ErrSingular on a zero diagonal.
// Complexity: O(nnz(L)).
func SolveLower[T Float](l Matrix[T], x, b Vector[T]) error {
	if err := ValidateSystem(l, x, b); err != nil {
		return matrixErrorf(opForward, err)
	}
	for i := 0; i < l.Rows(); i++ {
		s := b[i]
		var diag T
		for j, v := range l.Row(i) {
			if j < i {
				s -= v * x[j]
			} else if j == i {
				diag = v
			} else {
				break
			}
		}
		if diag == 0 {
			return matrixErrorf(opForward, ErrSingular)
		}
		x[i] = s / diag
	}

	return nil
}

// SolveLowerTransposed solves Lᵀ·x = b by column-oriented back substitution
// over the rows of L, writing x. x may alias b.
// Complexity: O(nnz(L)).
func SolveLowerTransposed[T Float](l Matrix[T], x, b Vector[T]) error {
	if err := ValidateSystem(l, x, b); err != nil {
		return matrixErrorf(opBackward, err)
	}
	copy(x, b)
	for i := l.Rows() - 1; i >= 0; i-- {
		var diag T
		for j, v := range l.Row(i) {
			if j == i {
				diag = v

				break
			}
		}
		if diag == 0 {
			return matrixErrorf(opBackward, ErrSingular)
		}
		x[i] /= diag
		xi := x[i]
		for j, v := range l.Row(i) {
			if j >= i {
				break
			}
			x[j] -= v * xi
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT

package matrix

// LowerTriangularInvert returns M⁻¹ for a lower-triangular M with a nonzero
// diagonal, via the terminating Neumann series.
//
// Split M = D + N (diagonal + strictly lower). T = −D⁻¹N is strictly lower
// triangular, hence nilpotent (Tⁿ = 0), and
//
//	M⁻¹ = Σ_{k=0}^{n-1} T^k · D⁻¹
//
// The sum stops early once a term vanishes. The result keeps M's layout.
// Errors: ErrNonSquare, ErrNotLowerTriangular, ErrSingular (zero diagonal).
// Complexity: O(n · cost(Mul)) worst case.
func LowerTriangularInvert[T Float](m Matrix[T]) (Matrix[T], error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opTriInvert, err)
	}
	if !IsLowerTriangular(m) {
		return nil, matrixErrorf(opTriInvert, ErrNotLowerTriangular)
	}
	n := m.Rows()
	diag := m.Diagonal()
	for _, d := range diag {
		if d == 0 {
			return nil, matrixErrorf(opTriInvert, ErrSingular)
		}
	}

	layout := m.Layout()
	dinv, err := newMatrix[T](layout, n, n)
	if err != nil {
		return nil, matrixErrorf(opTriInvert, err)
	}
	t, err := newMatrix[T](layout, n, n)
	if err != nil {
		return nil, matrixErrorf(opTriInvert, err)
	}
	for i := 0; i < n; i++ {
		_ = dinv.Set(i, i, 1/diag[i])
		for j, v := range m.Row(i) {
			if j >= i {
				break
			}
			if v != 0 {
				_ = t.Set(i, j, -v/diag[i])
			}
		}
	}

	sum := dinv.Clone()
	term := dinv
	for k := 1; k < n; k++ {
		if term, err = Mul(t, term); err != nil {
			return nil, matrixErrorf(opTriInvert, err)
		}
		if isZero(term) {
			break
		}
		if sum, err = Add(sum, term); err != nil {
			return nil, matrixErrorf(opTriInvert, err)
		}
	}

	return sum, nil
}

// isZero reports whether every element of m is zero.
func isZero[T Float](m Matrix[T]) bool {
	for i := 0; i < m.Rows(); i++ {
		for _, v := range m.Row(i) {
			if v != 0 {
				return false
			}
		}
	}

	return true
}

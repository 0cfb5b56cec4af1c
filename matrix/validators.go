// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single source of truth for shape and nil checks.
//   - Keep kernels minimal by delegating guard logic here.
//   - Return sentinels wrapped with a validator tag so call sites can add
//     their own operation tag on top.
//
// AI-Hints:
//   - Use ValidateVecLen before any MulVec-like sweep to avoid ad hoc length code.
//   - Use ValidateSystem at the top of every iterative solver.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil[T Float](m Matrix[T]) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape[T Float](a, b Matrix[T]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks m is non-nil and Rows == Cols.
// Errors: ErrNilMatrix, ErrNonSquare (which also matches ErrDimensionMismatch).
func ValidateSquare[T Float](m Matrix[T]) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateMulCompatible checks a.Cols == b.Rows.
func ValidateMulCompatible[T Float](a, b Matrix[T]) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen checks len(v) == n.
func ValidateVecLen[T Float](v Vector[T], n int) error {
	if len(v) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSystem checks the operands of A·x = b:
// A non-nil and square, len(x) == len(b) == A.Rows().
// Sequence: NotNil → Square → VecLen(x) → VecLen(b).
func ValidateSystem[T Float](a Matrix[T], x, b Vector[T]) error {
	if err := ValidateSquare(a); err != nil {
		return err
	}
	if err := ValidateVecLen(x, a.Rows()); err != nil {
		return err
	}

	return ValidateVecLen(b, a.Rows())
}

// IsLowerTriangular reports whether every stored entry above the diagonal is zero.
// Complexity: O(nnz) for Sparse, O(r*c) for Dense.
func IsLowerTriangular[T Float](m Matrix[T]) bool {
	for i := 0; i < m.Rows(); i++ {
		for j, v := range m.Row(i) {
			if j > i && v != 0 {
				return false
			}
		}
	}

	return true
}

// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Wrap with
// matrixErrorf(tag, ErrX) at the detection site; callers use errors.Is.

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row, column or vector slot) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand sizes,
	// e.g. Add of different shapes, Mul where a.Cols != b.Rows, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required. It matches ErrDimensionMismatch too.
	ErrNonSquare = fmt.Errorf("%w: matrix is not square", ErrDimensionMismatch)

	// ErrRagged indicates literal rows of different lengths.
	ErrRagged = fmt.Errorf("%w: rows have different lengths", ErrDimensionMismatch)

	// ErrNilMatrix indicates that a nil matrix or vector argument was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned when a zero pivot or zero diagonal entry is met in a
	// non-pivoting scheme (Jacobi, Gauss-Seidel, triangular inversion).
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotLowerTriangular is returned when LowerTriangularInvert receives a
	// matrix with a nonzero entry above the diagonal.
	ErrNotLowerTriangular = errors.New("matrix: matrix is not lower triangular")

	// ErrNotPositiveDefinite is returned by IncompleteCholesky on a non-positive pivot.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrNegativeExponent is returned by Pow for k < 0.
	ErrNegativeExponent = errors.New("matrix: negative exponent")

	// ErrMatrixFileNotFound is returned by Load when the path does not exist.
	ErrMatrixFileNotFound = errors.New("matrix: matrix file not found")

	// ErrMatrixFileFormat is returned by Load/Read on a malformed header or entry line.
	ErrMatrixFileFormat = errors.New("matrix: malformed matrix file")
)

// Operation tags used by matrixErrorf; keep them in one place for grep-ability.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opMulVec     = "MulVec"
	opScale      = "Scale"
	opTranspose  = "Transpose"
	opPow        = "Pow"
	opIdentity   = "Identity"
	opCholesky   = "IncompleteCholesky"
	opTriInvert  = "LowerTriangularInvert"
	opForward    = "SolveLower"
	opBackward   = "SolveLowerTransposed"
	opLoad       = "Load"
	opRead       = "Read"
	opWrite      = "Write"
	opFromRows   = "NewDenseFrom"
	opNewDense   = "NewDense"
	opNewSparse  = "NewSparse"
	opGenerate   = "Generate"
	opFromGonum  = "FromGonum"
	opVector     = "Vector"
	opSparseVec  = "SparseVector"
	opSparseFrom = "SparseFrom"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid a non-nil wrapper around a nil cause.
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseErrorf wraps an error with Dense/Sparse accessor context and coordinates.
func denseErrorf(kind, method string, row, col int, err error) error {
	return fmt.Errorf("%s.%s(%d,%d): %w", kind, method, row, col, err)
}

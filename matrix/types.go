// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by both storages.
// This file intentionally contains ONLY the scalar constraint, the storage
// layout tag and the Matrix row-accessor interface.
package matrix

import "iter"

// Float is the scalar constraint of every vector and matrix in this package.
type Float interface {
	~float32 | ~float64
}

// Layout tags the physical storage of a Matrix.
type Layout int

const (
	// LayoutDense is row-major storage; Row(i) yields every column.
	LayoutDense Layout = iota
	// LayoutSparse is row-sparse storage; Row(i) yields only stored entries.
	LayoutSparse
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case LayoutDense:
		return "dense"
	case LayoutSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Matrix is a two-dimensional mutable array of T.
//
// Row is the storage capability kernels dispatch on: a *Dense yields every
// (column, value) pair of the row, a *Sparse yields only its stored entries.
// Both yield in ascending column order, which keeps floating-point summation
// order identical across layouts for the same logical matrix.
type Matrix[T Float] interface {
	// Rows returns the number of rows. Complexity: O(1).
	Rows() int

	// Cols returns the number of columns. Complexity: O(1).
	Cols() int

	// At retrieves the element at (i, j); ErrOutOfRange on invalid indices.
	At(i, j int) (T, error)

	// Set assigns v at (i, j); ErrOutOfRange on invalid indices.
	Set(i, j int, v T) error

	// Row iterates (column, value) pairs of row i in ascending column order.
	// An out-of-range row yields nothing.
	Row(i int) iter.Seq2[int, T]

	// Diagonal returns a copy of the main diagonal (length min(Rows, Cols)).
	Diagonal() Vector[T]

	// MulVecTo computes dst = M·x. len(x) must equal Cols, len(dst) Rows.
	MulVecTo(dst, x Vector[T]) error

	// Layout reports the physical storage.
	Layout() Layout

	// Clone returns a deep copy with the same layout.
	Clone() Matrix[T]
}

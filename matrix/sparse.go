// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Sparse is a row-sparse matrix: one SparseVector per row plus an explicit
// column count. Only stored entries are visited by Row, so row kernels cost
// O(nnz) instead of O(r*c).
type Sparse[T Float] struct {
	cols int
	rows []*SparseVector[T]
}

var _ Matrix[float64] = (*Sparse[float64])(nil)

// NewSparse creates an empty rows×cols sparse matrix.
func NewSparse[T Float](rows, cols int) (*Sparse[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewSparse, fmt.Errorf("%w: %d×%d", ErrInvalidDimensions, rows, cols))
	}
	s := &Sparse[T]{cols: cols, rows: make([]*SparseVector[T], rows)}
	for i := range s.rows {
		s.rows[i] = NewSparseVector[T](0)
	}

	return s, nil
}

// NewSquareSparse creates an empty n×n sparse matrix.
func NewSquareSparse[T Float](n int) (*Sparse[T], error) {
	return NewSparse[T](n, n)
}

// SparseFrom copies the nonzero entries of any Matrix.
// Complexity: O(r*c) for a Dense source, O(nnz) for a Sparse one.
func SparseFrom[T Float](m Matrix[T]) (*Sparse[T], error) {
	if m == nil {
		return nil, matrixErrorf(opSparseFrom, ErrNilMatrix)
	}
	s, err := NewSparse[T](m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opSparseFrom, err)
	}
	for i := 0; i < m.Rows(); i++ {
		row := s.rows[i]
		for j, v := range m.Row(i) {
			if v != 0 {
				row.idx = append(row.idx, j)
				row.val = append(row.val, v)
			}
		}
	}

	return s, nil
}

// Rows returns the number of rows.
func (s *Sparse[T]) Rows() int { return len(s.rows) }

// Cols returns the number of columns.
func (s *Sparse[T]) Cols() int { return s.cols }

// Layout reports LayoutSparse.
func (s *Sparse[T]) Layout() Layout { return LayoutSparse }

// NNZ returns the number of stored entries.
func (s *Sparse[T]) NNZ() int {
	n := 0
	for _, r := range s.rows {
		n += r.Len()
	}

	return n
}

func (s *Sparse[T]) check(method string, i, j int) error {
	if i < 0 || i >= len(s.rows) || j < 0 || j >= s.cols {
		return denseErrorf("Sparse", method, i, j, ErrOutOfRange)
	}

	return nil
}

// At returns the element at (i, j), zero when not stored.
// Complexity: O(log nnz(row)).
func (s *Sparse[T]) At(i, j int) (T, error) {
	if err := s.check("At", i, j); err != nil {
		return 0, err
	}

	return s.rows[i].At(j), nil
}

// Set stores v at (i, j). A zero written to an absent slot creates no entry.
func (s *Sparse[T]) Set(i, j int, v T) error {
	if err := s.check("Set", i, j); err != nil {
		return err
	}

	return s.rows[i].Set(j, v)
}

// Accumulate performs (i, j) += v.
func (s *Sparse[T]) Accumulate(i, j int, v T) error {
	if err := s.check("Accumulate", i, j); err != nil {
		return err
	}

	return s.rows[i].Accumulate(j, v)
}

// Row yields the stored entries of row i in ascending column order.
func (s *Sparse[T]) Row(i int) iter.Seq2[int, T] {
	if i < 0 || i >= len(s.rows) {
		return func(func(int, T) bool) {}
	}

	return s.rows[i].All()
}

// RowVector returns the sparse row i itself (not a copy); mutations are visible.
func (s *Sparse[T]) RowVector(i int) (*SparseVector[T], error) {
	if i < 0 || i >= len(s.rows) {
		return nil, denseErrorf("Sparse", "RowVector", i, 0, ErrOutOfRange)
	}

	return s.rows[i], nil
}

// Diagonal returns a dense copy of the main diagonal.
func (s *Sparse[T]) Diagonal() Vector[T] {
	n := min(len(s.rows), s.cols)
	out := make(Vector[T], n)
	for i := 0; i < n; i++ {
		out[i] = s.rows[i].At(i)
	}

	return out
}

// MulVecTo computes dst = S·x over stored entries. Complexity: O(nnz).
func (s *Sparse[T]) MulVecTo(dst, x Vector[T]) error {
	if len(x) != s.cols || len(dst) != len(s.rows) {
		return matrixErrorf(opMulVec, ErrDimensionMismatch)
	}
	for i, row := range s.rows {
		var sum T
		for k, j := range row.idx {
			sum += row.val[k] * x[j]
		}
		dst[i] = sum
	}

	return nil
}

// ToDense expands S over columns 0..Cols()-1.
func (s *Sparse[T]) ToDense() *Dense[T] {
	d := &Dense[T]{r: len(s.rows), c: s.cols, data: make([]T, len(s.rows)*s.cols)}
	for i, row := range s.rows {
		for k, j := range row.idx {
			d.data[i*s.cols+j] = row.val[k]
		}
	}

	return d
}

// Clone returns a deep copy.
func (s *Sparse[T]) Clone() Matrix[T] {
	return s.CloneSparse()
}

// CloneSparse is Clone without the interface conversion.
func (s *Sparse[T]) CloneSparse() *Sparse[T] {
	out := &Sparse[T]{cols: s.cols, rows: make([]*SparseVector[T], len(s.rows))}
	for i, r := range s.rows {
		out.rows[i] = r.Clone()
	}

	return out
}

// String renders stored entries as "(i,j)=v" per row.
func (s *Sparse[T]) String() string {
	var sb strings.Builder
	for i, row := range s.rows {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(':')
		for k, j := range row.idx {
			sb.WriteString(" (")
			sb.WriteString(strconv.Itoa(j))
			sb.WriteString(")=")
			sb.WriteString(strconv.FormatFloat(float64(row.val[k]), 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

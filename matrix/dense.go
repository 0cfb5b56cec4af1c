// SPDX-License-Identifier: MIT

// Dense is the row-major implementation of Matrix, storing elements in a flat
// slice for cache-friendly row sweeps.
package matrix

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Dense is a row-major r×c matrix of T.
type Dense[T Float] struct {
	r, c int // number of rows and columns
	data []T // flat backing storage, len == r*c
}

// Compile-time check.
var _ Matrix[float64] = (*Dense[float64])(nil)

// NewDense creates an r×c zero matrix.
// Stage 1 (Validate): rows and cols > 0.
// Stage 2 (Prepare): allocate the flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense[T Float](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewDense, fmt.Errorf("%w: %d×%d", ErrInvalidDimensions, rows, cols))
	}

	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// NewSquareDense creates an n×n zero matrix.
func NewSquareDense[T Float](n int) (*Dense[T], error) {
	return NewDense[T](n, n)
}

// NewDenseFrom builds a Dense from a rectangular literal.
// Stage 1 (Validate): non-empty, rectangular (ErrRagged otherwise).
// Stage 2 (Execute): copy rows into the flat slice.
func NewDenseFrom[T Float](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(opFromRows, ErrInvalidDimensions)
	}
	c := len(rows[0])
	m := &Dense[T]{r: len(rows), c: c, data: make([]T, len(rows)*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opFromRows, ErrRagged)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// Layout reports LayoutDense.
func (m *Dense[T]) Layout() Layout { return LayoutDense }

// indexOf computes the flat index of (row, col) or returns ErrOutOfRange.
func (m *Dense[T]) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("Dense", method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col). Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col). Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row yields every (column, value) pair of row i.
func (m *Dense[T]) Row(i int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if i < 0 || i >= m.r {
			return
		}
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			if !yield(j, v) {
				return
			}
		}
	}
}

// RowVector returns a copy of row i.
func (m *Dense[T]) RowVector(i int) (Vector[T], error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Dense", "RowVector", i, 0, ErrOutOfRange)
	}

	return Vector[T](m.data[i*m.c : (i+1)*m.c]).Clone(), nil
}

// Column returns a copy of column j.
func (m *Dense[T]) Column(j int) (Vector[T], error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf("Dense", "Column", 0, j, ErrOutOfRange)
	}
	out := make(Vector[T], m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Diagonal returns a copy of the main diagonal.
func (m *Dense[T]) Diagonal() Vector[T] {
	n := min(m.r, m.c)
	out := make(Vector[T], n)
	for i := 0; i < n; i++ {
		out[i] = m.data[i*m.c+i]
	}

	return out
}

// MulVecTo computes dst = M·x, accumulating each row left to right.
// Complexity: O(r*c).
func (m *Dense[T]) MulVecTo(dst, x Vector[T]) error {
	if len(x) != m.c || len(dst) != m.r {
		return matrixErrorf(opMulVec, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		var s T
		base := i * m.c
		for j := 0; j < m.c; j++ {
			s += m.data[base+j] * x[j]
		}
		dst[i] = s
	}

	return nil
}

// SetIdentity overwrites a square matrix with I.
func (m *Dense[T]) SetIdentity() error {
	if m.r != m.c {
		return matrixErrorf(opIdentity, ErrNonSquare)
	}
	clear(m.data)
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+i] = 1
	}

	return nil
}

// Clone returns a deep copy. Complexity: O(r*c).
func (m *Dense[T]) Clone() Matrix[T] {
	return m.CloneDense()
}

// CloneDense is Clone without the interface conversion.
func (m *Dense[T]) CloneDense() *Dense[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: data}
}

// String renders one bracketed row per line.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(float64(m.data[i*m.c+j]), 'g', -1, 64))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

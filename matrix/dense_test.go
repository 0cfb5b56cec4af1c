// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvsim/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense[float64](0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	require.ErrorContains(t, err, "NewDense: ")
	_, err = matrix.NewSparse[float64](3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	require.ErrorContains(t, err, "NewSparse: ")
	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAccessors_OutOfRange(t *testing.T) {
	d, s := both(t, sample)
	for _, m := range []matrix.Matrix[float64]{d, s} {
		_, err := m.At(-1, 0)
		require.ErrorIs(t, err, matrix.ErrOutOfRange)
		_, err = m.At(0, 4)
		require.ErrorIs(t, err, matrix.ErrOutOfRange)
		require.ErrorIs(t, m.Set(4, 0, 1), matrix.ErrOutOfRange)
	}
}

func TestRow_DenseYieldsAllSparseYieldsStored(t *testing.T) {
	d, s := both(t, sample)

	var dense, sparse []int
	for j := range d.Row(2) {
		dense = append(dense, j)
	}
	for j := range s.Row(2) {
		sparse = append(sparse, j)
	}
	require.Equal(t, []int{0, 1, 2, 3}, dense)
	require.Equal(t, []int{1, 2}, sparse)

	for range s.Row(10) {
		t.Fatal("out-of-range row must yield nothing")
	}
}

func TestDense_RowColumnDiagonal(t *testing.T) {
	d := mustDense(t, sample)

	row, err := d.RowVector(1)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{1, 6, -2, 1}, row)

	col, err := d.Column(1)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{1, 6, 1, 2}, col)

	require.Equal(t, matrix.Vector[float64]{4, 6, 5, 5}, d.Diagonal())

	_, err = d.Column(9)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSparse_SetZeroKeepsPattern(t *testing.T) {
	s, err := matrix.NewSquareSparse[float64](3)
	require.NoError(t, err)

	require.NoError(t, s.Set(0, 2, 0))
	require.Equal(t, 0, s.NNZ())

	require.NoError(t, s.Set(0, 2, 5))
	require.NoError(t, s.Set(0, 2, 0))
	require.Equal(t, 1, s.NNZ())

	require.NoError(t, s.Accumulate(1, 1, 2))
	require.NoError(t, s.Accumulate(1, 1, 3))
	require.Equal(t, 5.0, at(t, s, 1, 1))
}

func TestSparse_ToDenseRoundTrip(t *testing.T) {
	d, s := both(t, sample)
	sp := s.(*matrix.Sparse[float64])
	require.True(t, matrix.Equal[float64](d, sp.ToDense()))
	require.Equal(t, 11, sp.NNZ())
	require.Equal(t, matrix.LayoutSparse, s.Layout())
	require.Equal(t, "sparse", s.Layout().String())
}

func TestMulVecTo_LayoutsAgree(t *testing.T) {
	d, s := both(t, sample)
	x := matrix.Vector[float64]{1, -1, 2, 0.5}

	got1 := make(matrix.Vector[float64], 4)
	got2 := make(matrix.Vector[float64], 4)
	require.NoError(t, d.MulVecTo(got1, x))
	require.NoError(t, s.MulVecTo(got2, x))
	require.Equal(t, got1, got2)
	require.Equal(t, matrix.Vector[float64]{1, -8.5, 9, 0.5}, got1)

	require.ErrorIs(t, d.MulVecTo(got1, x[:3]), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, s.MulVecTo(got1[:2], x), matrix.ErrDimensionMismatch)
}

func TestClone_Independent(t *testing.T) {
	d, s := both(t, sample)
	for _, m := range []matrix.Matrix[float64]{d, s} {
		c := m.Clone()
		require.NoError(t, c.Set(0, 0, 99))
		require.Equal(t, 4.0, at(t, m, 0, 0))
		require.Equal(t, m.Layout(), c.Layout())
	}
}

func TestSetIdentity(t *testing.T) {
	d := mustDense(t, sample)
	require.NoError(t, d.SetIdentity())
	s, err := matrix.NewSquareSparse[float64](4)
	require.NoError(t, err)
	require.NoError(t, s.SetIdentity())
	require.True(t, matrix.Equal[float64](d, s))

	rect, err := matrix.NewDense[float64](2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, rect.SetIdentity(), matrix.ErrNonSquare)
}

// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvsim/matrix"
	"github.com/stretchr/testify/require"
)

func TestSparseVector_SetGet(t *testing.T) {
	s := matrix.NewSparseVector[float64](4)

	require.NoError(t, s.Set(7, 2))
	require.NoError(t, s.Set(1, 3))
	require.NoError(t, s.Set(4, 0)) // zero on absent index: no entry
	require.Equal(t, 2, s.Len())
	require.False(t, s.Contains(4))
	require.Equal(t, 0.0, s.At(4))
	require.Equal(t, 3.0, s.At(1))

	// an existing entry keeps its slot when zeroed
	require.NoError(t, s.Set(7, 0))
	require.True(t, s.Contains(7))
	require.Equal(t, 2, s.Len())

	require.ErrorIs(t, s.Set(-1, 1), matrix.ErrOutOfRange)
}

func TestSparseVector_IterationIsSorted(t *testing.T) {
	s := matrix.NewSparseVector[float64](0)
	for _, i := range []int{9, 2, 5, 0, 7} {
		require.NoError(t, s.Set(i, float64(i+1)))
	}

	var got []int
	for i, v := range s.All() {
		require.Equal(t, float64(i+1), v)
		got = append(got, i)
	}
	require.Equal(t, []int{0, 2, 5, 7, 9}, got)
	require.Equal(t, 9, s.MaxIndex())
}

func TestSparseVector_Accumulate(t *testing.T) {
	s := matrix.NewSparseVector[float64](0)
	require.NoError(t, s.Accumulate(3, 1.5))
	require.NoError(t, s.Accumulate(3, 2.5))
	require.NoError(t, s.Accumulate(1, 0))
	require.Equal(t, 4.0, s.At(3))
	require.Equal(t, 1, s.Len())
}

func TestSparseVector_DenseInterop(t *testing.T) {
	dense := matrix.Vector[float64]{0, 2, 0, -1, 0}
	s := matrix.SparseFromDense(dense)
	require.Equal(t, 2, s.Len())

	back, err := s.ToDense(5)
	require.NoError(t, err)
	require.Equal(t, dense, back)

	_, err = s.ToDense(3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	w := matrix.Vector[float64]{1, 2, 3, 4, 5}
	d, err := s.Dot(w)
	require.NoError(t, err)
	require.Equal(t, 2*2-4.0, d)

	sum, err := s.AddDense(w)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{1, 4, 3, 3, 5}, sum)

	diff, err := s.SubDense(w)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{-1, 0, -3, -5, -5}, diff)

	prod, err := s.MulDense(w)
	require.NoError(t, err)
	require.Equal(t, 4.0, prod.At(1))
	require.Equal(t, -4.0, prod.At(3))
	require.Equal(t, 2, prod.Len())
}

func TestSparseVector_AddSubMerge(t *testing.T) {
	a := matrix.SparseFromDense(matrix.Vector[float64]{1, 0, 2, 0})
	b := matrix.SparseFromDense(matrix.Vector[float64]{0, 3, 2, 4})

	sum, err := a.Add(b).ToDense(4)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{1, 3, 4, 4}, sum)

	diff, err := a.Sub(b).ToDense(4)
	require.NoError(t, err)
	require.Equal(t, matrix.Vector[float64]{1, -3, 0, -4}, diff)

	a.Scale(2)
	require.Equal(t, 4.0, a.At(2))
	require.Equal(t, float64(4+16), a.SquaredLength())
}

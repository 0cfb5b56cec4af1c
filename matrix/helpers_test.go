// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvsim/matrix"
	"github.com/stretchr/testify/require"
)

// both returns the dense and sparse renditions of the same literal.
func both(t *testing.T, rows [][]float64) (matrix.Matrix[float64], matrix.Matrix[float64]) {
	t.Helper()
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)
	s, err := matrix.SparseFrom[float64](d)
	require.NoError(t, err)

	return d, s
}

// mustDense builds a Dense from a literal or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense[float64] {
	t.Helper()
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return d
}

// at reads (i,j) or fails the test.
func at(t *testing.T, m matrix.Matrix[float64], i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireClose asserts AllClose with eps.
func requireClose(t *testing.T, want, got matrix.Matrix[float64], eps float64) {
	t.Helper()
	require.True(t, matrix.AllClose(want, got, matrix.WithEpsilon(eps)), "want\n%v\ngot\n%v", want, got)
}

var sample = [][]float64{
	{4, 1, -1, 0},
	{1, 6, -2, 1},
	{0, 1, 5, 0},
	{0, 2, 0, 5},
}

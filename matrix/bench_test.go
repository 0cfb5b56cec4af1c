// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvsim/matrix"
)

var (
	sinkVec    matrix.Vector[float32]
	sinkMatrix matrix.Matrix[float32]
)

func benchMulVec(b *testing.B, opt matrix.Option) {
	a, err := matrix.Poisson2D[float32](64, opt)
	if err != nil {
		b.Fatal(err)
	}
	x := matrix.RandomVector[float32](a.Cols(), -1, 1, 1)
	dst := make(matrix.Vector[float32], a.Rows())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = a.MulVecTo(dst, x); err != nil {
			b.Fatal(err)
		}
	}
	sinkVec = dst
}

func BenchmarkMulVec_Sparse(b *testing.B) { benchMulVec(b, matrix.WithLayout(matrix.LayoutSparse)) }
func BenchmarkMulVec_Dense(b *testing.B)  { benchMulVec(b, matrix.WithDense()) }

func BenchmarkIncompleteCholesky_Poisson(b *testing.B) {
	a, err := matrix.Poisson2D[float32](32)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if sinkMatrix, err = matrix.IncompleteCholesky(a); err != nil {
			b.Fatal(err)
		}
	}
}

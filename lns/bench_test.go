// SPDX-License-Identifier: MIT

package lns_test

import (
	"testing"

	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
)

var sinkIterations int

func benchSolve(b *testing.B, m lns.Method, opts ...lns.Option) {
	a, err := matrix.Poisson2D[float32](32)
	if err != nil {
		b.Fatal(err)
	}
	want := matrix.RandomVector[float32](a.Rows(), -10, 10, 1<<20)
	rhs, err := matrix.MulVec(a, want)
	if err != nil {
		b.Fatal(err)
	}
	x := make(matrix.Vector[float32], a.Rows())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Clear()
		if sinkIterations, err = lns.Run(m, a, x, rhs, lns.Iterations(50), opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJacobi_Poisson32(b *testing.B)      { benchSolve(b, lns.MethodJacobi) }
func BenchmarkGaussSeidel_Poisson32(b *testing.B) { benchSolve(b, lns.MethodGaussSeidel) }
func BenchmarkGD_Poisson32(b *testing.B)          { benchSolve(b, lns.MethodGradientDescent) }
func BenchmarkCG_Poisson32(b *testing.B)          { benchSolve(b, lns.MethodConjugateGradient) }
func BenchmarkPCG_IC_Poisson32(b *testing.B) {
	benchSolve(b, lns.MethodConjugateGradient, lns.WithPreconditioner(lns.PreconditionerIncompleteCholesky))
}

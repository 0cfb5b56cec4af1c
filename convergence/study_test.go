// SPDX-License-Identifier: MIT

package convergence_test

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/lvsim/convergence"
	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRun_ShapeAndOrder(t *testing.T) {
	r, err := convergence.Run(context.Background(),
		convergence.WithSizes(16, 32), convergence.WithRuns(20), convergence.WithConcurrency(3))
	require.NoError(t, err)
	require.Equal(t, "tridiagonal", r.Problem)
	require.Equal(t, []int{16, 32}, r.Sizes())
	require.Len(t, r.Series, 2*len(lns.Methods()))

	for i, s := range r.Series {
		require.Equal(t, lns.Methods()[i%4].String(), s.Method)
		require.Len(t, s.Samples, 20)
		for k, smp := range s.Samples {
			require.Equal(t, k+1, smp.Budget)
			require.LessOrEqual(t, smp.Used, smp.Budget)
			require.GreaterOrEqual(t, smp.Error, 0.0)
		}
	}
}

func TestRun_ErrorsShrink(t *testing.T) {
	r, err := convergence.Run(context.Background(),
		convergence.WithSizes(32), convergence.WithRuns(40))
	require.NoError(t, err)

	for _, s := range r.Series {
		first, last := s.Samples[0].Error, s.Final().Error
		require.Less(t, last, first, s.Method)
	}
	// CG on a 32-unknown SPD system is exact (to rounding) within 32 steps
	for _, s := range r.Series {
		if s.Method == lns.MethodConjugateGradient.String() {
			require.Less(t, s.Final().Error, 1e-6)
			require.Less(t, s.Final().Used, 40)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	run := func() *convergence.Report {
		r, err := convergence.Run(context.Background(),
			convergence.WithSizes(8), convergence.WithRuns(5),
			convergence.WithProblem(convergence.ProblemPoisson),
			convergence.WithMethods(lns.MethodJacobi, lns.MethodGaussSeidel))
		require.NoError(t, err)

		return r
	}
	a, b := run(), run()
	require.Equal(t, 64, a.Series[0].Unknown)
	for i := range a.Series {
		for k := range a.Series[i].Samples {
			require.Equal(t, a.Series[i].Samples[k].Error, b.Series[i].Samples[k].Error)
		}
	}
}

func TestRun_CustomSystem(t *testing.T) {
	a, err := matrix.Tridiagonal(12, 0.5, matrix.WithDense())
	require.NoError(t, err)
	r, err := convergence.Run(context.Background(),
		convergence.WithSystem(a), convergence.WithRuns(3),
		convergence.WithPreconditioner(lns.PreconditionerIncompleteCholesky))
	require.NoError(t, err)
	require.Equal(t, "custom", r.Problem)
	require.Equal(t, "ic", r.Preconditioner)
	require.Equal(t, []int{12}, r.Sizes())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := convergence.Run(ctx, convergence.WithSizes(16), convergence.WithRuns(5))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Errors(t *testing.T) {
	_, err := convergence.Run(context.Background(), convergence.WithSizes())
	require.ErrorIs(t, err, convergence.ErrNoSizes)
	_, err = convergence.Run(context.Background(), convergence.WithProblem(convergence.Problem(5)), convergence.WithSizes(4))
	require.ErrorIs(t, err, convergence.ErrUnknownProblem)
	_, err = convergence.ParseProblem("laplace")
	require.ErrorIs(t, err, convergence.ErrUnknownProblem)

	require.Panics(t, func() { convergence.WithRuns(0) })
	require.Panics(t, func() { convergence.WithSizes(1) })
	require.Panics(t, func() { convergence.WithConcurrency(0) })
	require.Panics(t, func() { convergence.WithThreshold(math.Inf(1)) })
	require.Panics(t, func() { convergence.WithThreshold(math.NaN()) })
}

func TestReport_YAMLAndChart(t *testing.T) {
	r, err := convergence.Run(context.Background(), convergence.WithSizes(16), convergence.WithRuns(4))
	require.NoError(t, err)

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(out), "method: conjugate-gradient")
	require.Contains(t, string(out), "budget: 4")

	var buf bytes.Buffer
	require.NoError(t, convergence.WriteChart(&buf, r, 16, "svg"))
	require.True(t, strings.Contains(buf.String(), "<svg"))

	require.ErrorIs(t, convergence.WriteChart(&buf, r, 99, "svg"), convergence.ErrNoSeries)
}

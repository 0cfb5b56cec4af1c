// SPDX-License-Identifier: MIT

package convergence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
	"golang.org/x/sync/errgroup"
)

// Sample is one budgeted solve.
type Sample struct {
	Budget  int           `yaml:"budget"`
	Used    int           `yaml:"used"`
	Error   float64       `yaml:"error"`
	Elapsed time.Duration `yaml:"elapsed"`
}

// Series is every sample of one solver at one size.
type Series struct {
	Method  string   `yaml:"method"`
	Size    int      `yaml:"size"`
	Unknown int      `yaml:"unknowns"`
	Samples []Sample `yaml:"samples"`
}

// Final returns the sample with the largest budget.
func (s Series) Final() Sample {
	if len(s.Samples) == 0 {
		return Sample{}
	}

	return s.Samples[len(s.Samples)-1]
}

// Report is the outcome of Run, ordered by size then method.
type Report struct {
	RunID          uuid.UUID `yaml:"run_id"`
	Problem        string    `yaml:"problem"`
	Layout         string    `yaml:"layout"`
	Preconditioner string    `yaml:"preconditioner"`
	Threshold      float64   `yaml:"threshold"`
	Series         []Series  `yaml:"series"`
}

// Sizes lists the distinct sizes in report order.
func (r *Report) Sizes() []int {
	var out []int
	for _, s := range r.Series {
		if len(out) == 0 || out[len(out)-1] != s.Size {
			out = append(out, s.Size)
		}
	}

	return out
}

// system is one generated problem shared read-only by its tasks.
type system struct {
	size int
	a    matrix.Matrix[float64]
	want matrix.Vector[float64]
	b    matrix.Vector[float64]
}

// Run executes the study. It stops at the first solver failure other than
// lns.ErrNotConverged (an exhausted budget is a data point, not a failure)
// or when ctx is cancelled.
func Run(ctx context.Context, opts ...Option) (*Report, error) {
	o := gatherOptions(opts...)
	systems, err := buildSystems(o)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:          uuid.New(),
		Problem:        o.problem.String(),
		Layout:         o.layout.String(),
		Preconditioner: o.preconditioner.String(),
		Threshold:      o.threshold,
		Series:         make([]Series, len(systems)*len(o.methods)),
	}
	if o.system != nil {
		report.Problem = "custom"
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for si, sys := range systems {
		o.logger.Info("running convergence study", "size", sys.size, "unknowns", sys.a.Rows(), "methods", len(o.methods))
		for mi, m := range o.methods {
			slot := &report.Series[si*len(o.methods)+mi]
			g.Go(func() error {
				series, err := runSeries(ctx, o, sys, m)
				if err != nil {
					return err
				}
				*slot = series

				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

func buildSystems(o Options) ([]system, error) {
	if o.system != nil {
		return []system{newSystem(o, o.system.Rows(), o.system)}, nil
	}
	if len(o.sizes) == 0 {
		return nil, fmt.Errorf("Run: %w", ErrNoSizes)
	}
	out := make([]system, 0, len(o.sizes))
	for _, size := range o.sizes {
		var (
			a   matrix.Matrix[float64]
			err error
		)
		switch o.problem {
		case ProblemTridiagonal:
			a, err = matrix.Tridiagonal(size, o.coupling, matrix.WithLayout(o.layout))
		case ProblemPoisson:
			a, err = matrix.Poisson2D[float64](size, matrix.WithLayout(o.layout))
		default:
			err = ErrUnknownProblem
		}
		if err != nil {
			return nil, fmt.Errorf("Run: size %d: %w", size, err)
		}
		out = append(out, newSystem(o, size, a))
	}

	return out, nil
}

func newSystem(o Options, size int, a matrix.Matrix[float64]) system {
	want := matrix.RandomVector[float64](a.Rows(), -10, 10, o.seed)
	b := make(matrix.Vector[float64], a.Rows())
	// a is square and want has a.Cols() entries by construction
	_ = a.MulVecTo(b, want)

	return system{size: size, a: a, want: want, b: b}
}

// runSeries solves one system with one method for budgets 1..o.runs on
// private copies of A and b.
func runSeries(ctx context.Context, o Options, sys system, m lns.Method) (Series, error) {
	a := sys.a.Clone()
	b := sys.b.Clone()
	x := make(matrix.Vector[float64], a.Rows())
	diff := make(matrix.Vector[float64], a.Rows())
	lopts := []lns.Option{lns.WithPreconditioner(o.preconditioner)}

	s := Series{Method: m.String(), Size: sys.size, Unknown: a.Rows(), Samples: make([]Sample, o.runs)}
	for k := 0; k < o.runs; k++ {
		if err := ctx.Err(); err != nil {
			return Series{}, err
		}
		budget := k + 1
		stop := lns.Iterations(budget)
		if m == lns.MethodGradientDescent || m == lns.MethodConjugateGradient {
			stop = lns.Threshold(o.threshold).WithMaxIterations(budget)
		}

		x.Clear()
		start := time.Now()
		used, err := lns.Run(m, a, x, b, stop, lopts...)
		elapsed := time.Since(start)
		if err != nil && !errors.Is(err, lns.ErrNotConverged) {
			return Series{}, fmt.Errorf("%s size %d budget %d: %w", m, sys.size, budget, err)
		}

		_ = diff.CopyFrom(sys.want)
		_ = diff.Sub(x)
		s.Samples[k] = Sample{Budget: budget, Used: used, Error: float64(diff.Length()), Elapsed: elapsed}
	}
	o.logger.V(1).Info("series done", "method", s.Method, "size", s.Size, "error", s.Final().Error)

	return s, nil
}

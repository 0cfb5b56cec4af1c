// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	d := DefaultConfig().Solve
	cmd := &cobra.Command{
		Use:   "solve [matrix.mtx]",
		Short: "Solve A·x = b for a matrix file with a manufactured solution",
		Long: "Loads A from a coordinate matrix file (rows cols nnz, then 1-indexed row col value),\n" +
			"draws x* uniform in [-10, 10) from --seed, sets b = A·x* and solves from x = 0.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Solve
			if len(args) == 1 {
				cfg.Matrix = args[0]
			}
			f := cmd.Flags()
			if f.Changed("method") {
				cfg.Method, _ = f.GetString("method")
			}
			if f.Changed("preconditioner") {
				cfg.Preconditioner, _ = f.GetString("preconditioner")
			}
			if f.Changed("threshold") {
				cfg.Threshold, _ = f.GetFloat64("threshold")
			}
			if f.Changed("max-iterations") {
				cfg.MaxIterations, _ = f.GetInt("max-iterations")
			}
			if f.Changed("symmetric") {
				cfg.Symmetric, _ = f.GetBool("symmetric")
			}
			if f.Changed("dense") {
				cfg.Dense, _ = f.GetBool("dense")
			}
			if f.Changed("seed") {
				cfg.Seed, _ = f.GetUint64("seed")
			}

			return a.solve(cmd.OutOrStdout(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringP("method", "m", d.Method, "jacobi | gauss-seidel | gradient-descent | conjugate-gradient")
	f.StringP("preconditioner", "p", d.Preconditioner, "none | ic | inverse-ic (conjugate gradient only)")
	f.Float64P("threshold", "t", d.Threshold, "residual threshold")
	f.Int("max-iterations", d.MaxIterations, "iteration cap (0 uses the solver default)")
	f.Bool("symmetric", d.Symmetric, "mirror entries: the file stores one triangle")
	f.Bool("dense", d.Dense, "use dense storage")
	f.Uint64("seed", d.Seed, "seed of the manufactured solution")

	return cmd
}

func (a *app) solve(out io.Writer, cfg SolveConfig) error {
	if cfg.Matrix == "" {
		return errors.New("solve: no matrix file given")
	}
	if !finite(cfg.Threshold) || cfg.Threshold < 0 || cfg.MaxIterations < 0 {
		return fmt.Errorf("solve: threshold %g and max iterations %d must be >= 0", cfg.Threshold, cfg.MaxIterations)
	}
	method, err := lns.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	pc, err := lns.ParsePreconditioner(cfg.Preconditioner)
	if err != nil {
		return err
	}

	var mopts []matrix.Option
	if cfg.Symmetric {
		mopts = append(mopts, matrix.WithSymmetric())
	}
	if cfg.Dense {
		mopts = append(mopts, matrix.WithDense())
	}
	A, err := matrix.Load[float64](cfg.Matrix, mopts...)
	if err != nil {
		return err
	}

	want := matrix.RandomVector[float64](A.Cols(), -10, 10, cfg.Seed)
	b, err := matrix.MulVec(A, want)
	if err != nil {
		return err
	}
	x := make(matrix.Vector[float64], A.Cols())

	stop := lns.Threshold(cfg.Threshold)
	if cfg.MaxIterations > 0 {
		stop = stop.WithMaxIterations(cfg.MaxIterations)
	}
	a.log.V(1).Info("solving", "matrix", cfg.Matrix, "rows", A.Rows(), "layout", A.Layout(), "method", method, "stop", stop)

	start := time.Now()
	used, err := lns.Run(method, A, x, b, stop,
		lns.WithPreconditioner(pc), lns.WithLogger(a.log.WithName("lns")))
	elapsed := time.Since(start)
	status := "done"
	switch {
	case errors.Is(err, lns.ErrNotConverged):
		status = "not converged"
	case err != nil:
		return err
	}

	r, rerr := matrix.MulVec(A, x)
	if rerr != nil {
		return rerr
	}
	_ = r.Sub(b)
	_ = x.Sub(want)
	fmt.Fprintf(out, "%s: %s, %d iterations in %s, residual %.3e, error %.3e\n",
		method, status, used, elapsed, r.Length(), x.Length())

	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvsim/convergence"
	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConvergeCmd(a *app) *cobra.Command {
	d := DefaultConfig().Converge
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Measure solver error against iteration budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Converge
			f := cmd.Flags()
			if f.Changed("problem") {
				cfg.Problem, _ = f.GetString("problem")
			}
			if f.Changed("sizes") {
				cfg.Sizes, _ = f.GetIntSlice("sizes")
			}
			if f.Changed("runs") {
				cfg.Runs, _ = f.GetInt("runs")
			}
			if f.Changed("methods") {
				cfg.Methods, _ = f.GetStringSlice("methods")
			}
			if f.Changed("preconditioner") {
				cfg.Preconditioner, _ = f.GetString("preconditioner")
			}
			if f.Changed("threshold") {
				cfg.Threshold, _ = f.GetFloat64("threshold")
			}
			if f.Changed("dense") {
				cfg.Dense, _ = f.GetBool("dense")
			}
			if f.Changed("output") {
				cfg.Output, _ = f.GetString("output")
			}
			if f.Changed("chart-dir") {
				cfg.ChartDir, _ = f.GetString("chart-dir")
			}

			return a.converge(cmd, cfg)
		},
	}
	f := cmd.Flags()
	f.String("problem", d.Problem, "tridiagonal | poisson (sizes are grid sides)")
	f.IntSlice("sizes", convergence.DefaultSizes(), "problem sizes")
	f.Int("runs", d.Runs, "iteration budgets per solver (1..runs)")
	f.StringSlice("methods", nil, "solvers to study (default all)")
	f.String("preconditioner", d.Preconditioner, "conjugate gradient preconditioner")
	f.Float64("threshold", d.Threshold, "relative residual for gradient descent and conjugate gradient")
	f.Bool("dense", d.Dense, "use dense storage")
	f.StringP("output", "o", d.Output, "write the YAML report here ('-' for stdout)")
	f.String("chart-dir", d.ChartDir, "write one PNG chart per size into this directory")

	return cmd
}

func (a *app) converge(cmd *cobra.Command, cfg ConvergeConfig) error {
	problem, err := convergence.ParseProblem(cfg.Problem)
	if err != nil {
		return err
	}
	pc, err := lns.ParsePreconditioner(cfg.Preconditioner)
	if err != nil {
		return err
	}
	if cfg.Runs <= 0 || !finite(cfg.Threshold) || cfg.Threshold <= 0 {
		return errors.New("converge: runs and threshold must be finite and > 0")
	}
	opts := []convergence.Option{
		convergence.WithProblem(problem),
		convergence.WithRuns(cfg.Runs),
		convergence.WithPreconditioner(pc),
		convergence.WithThreshold(cfg.Threshold),
		convergence.WithLogger(a.log.WithName("converge")),
	}
	if len(cfg.Sizes) > 0 {
		for _, s := range cfg.Sizes {
			if s < 2 {
				return fmt.Errorf("converge: size %d < 2", s)
			}
		}
		opts = append(opts, convergence.WithSizes(cfg.Sizes...))
	}
	if len(cfg.Methods) > 0 {
		ms := make([]lns.Method, len(cfg.Methods))
		for i, name := range cfg.Methods {
			if ms[i], err = lns.ParseMethod(name); err != nil {
				return err
			}
		}
		opts = append(opts, convergence.WithMethods(ms...))
	}
	if cfg.Dense {
		opts = append(opts, convergence.WithLayout(matrix.LayoutDense))
	}

	report, err := convergence.Run(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range report.Series {
		final := s.Final()
		fmt.Fprintf(out, "%-20s size %5d  budget %4d  used %4d  error %.3e\n",
			s.Method, s.Size, final.Budget, final.Used, final.Error)
	}
	if err := writeReport(out, cfg.Output, report); err != nil {
		return err
	}
	if cfg.ChartDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.ChartDir, 0o755); err != nil {
		return err
	}
	for _, size := range report.Sizes() {
		path := filepath.Join(cfg.ChartDir, fmt.Sprintf("convergence_%s_%d.png", report.Problem, size))
		if err := convergence.SaveChart(path, report, size); err != nil {
			return err
		}
		a.log.Info("chart written", "path", path)
	}

	return nil
}

func writeReport(stdout io.Writer, path string, r *convergence.Report) error {
	switch path {
	case "":
		return nil
	case "-":
		return encodeReport(stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	return errors.Join(encodeReport(f, r), f.Close())
}

func encodeReport(w io.Writer, r *convergence.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}

	return enc.Close()
}

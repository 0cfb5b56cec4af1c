// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
	"github.com/katalvlaran/lvsim/snapshot"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

// lower triangle of tridiag(-1, 2, -1), 4×4
const tridiag4 = `% tridiagonal
4 4 7
1 1 2
2 1 -1
2 2 2
3 2 -1
3 3 2
4 3 -1
4 4 2
`

func TestSolve_ConjugateGradientFromFile(t *testing.T) {
	path := writeFile(t, "a.mtx", tridiag4)
	for _, args := range [][]string{
		{"solve", path, "--symmetric"},
		{"solve", path, "--symmetric", "--dense", "-m", "cg", "-p", "ic"},
		{"solve", path, "--symmetric", "-m", "gs", "-t", "1e-12", "--max-iterations", "5000"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, args)
		require.Contains(t, out, "iterations")
		require.Contains(t, out, "residual")
	}
}

func TestSolve_Errors(t *testing.T) {
	_, err := execute(t, "solve")
	require.ErrorContains(t, err, "no matrix file")

	_, err = execute(t, "solve", filepath.Join(t.TempDir(), "missing.mtx"))
	require.ErrorIs(t, err, matrix.ErrMatrixFileNotFound)

	path := writeFile(t, "a.mtx", tridiag4)
	_, err = execute(t, "solve", path, "-m", "newton")
	require.ErrorIs(t, err, lns.ErrUnknownMethod)
	for _, th := range []string{"-1", "inf", "nan"} {
		_, err = execute(t, "solve", path, "--symmetric", "-t", th)
		require.ErrorContains(t, err, "threshold", th)
	}
}

func TestSolve_IterationCapIsReported(t *testing.T) {
	path := writeFile(t, "a.mtx", tridiag4)
	_, err := execute(t, "solve", path, "--symmetric", "-m", "jacobi", "--max-iterations", "2")
	require.NoError(t, err)
}

const simulateConfig = `simulate:
  solver: %s
  layout: interleaved
  capacity: 50
  frames: 30
  substeps: 2
  workers: 2
  radius: 0.2
  emitter:
    origin: [0, 5]
    direction: [1, 0]
    rate: 120
    speed: 2
    spread_deg: 20
    seed: 7
  snapshot_every: 10
`

func TestSimulate_SnapshotsAndOutput(t *testing.T) {
	for _, kind := range []string{"basic", "verlet", "multithreaded"} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			cfg := writeFile(t, "lvsim.yaml", fmt.Sprintf(simulateConfig, kind))
			outPath := filepath.Join(dir, "final.yaml")
			snapDir := filepath.Join(dir, "snaps")

			out, err := execute(t, "simulate", "-c", cfg, "--snapshot-dir", snapDir, "-o", outPath)
			require.NoError(t, err)
			require.Contains(t, out, "50 particles, 30 frames")

			f, err := os.Open(outPath)
			require.NoError(t, err)
			defer f.Close()
			final, err := snapshot.Decode(f)
			require.NoError(t, err)
			require.Equal(t, uint64(30), final.Frame)
			require.Len(t, final.Particles, 50)
			require.NotNil(t, final.Bounds)

			st, err := snapshot.OpenDir(snapDir, logr.Discard())
			require.NoError(t, err)
			defer st.Close()
			frames, err := st.Frames(final.RunID)
			require.NoError(t, err)
			require.Equal(t, []uint64{10, 20, 30}, frames)
		})
	}
}

func TestSimulate_FlagsOverrideConfig(t *testing.T) {
	cfg := writeFile(t, "lvsim.yaml", fmt.Sprintf(simulateConfig, "verlet"))
	out, err := execute(t, "simulate", "-c", cfg, "--frames", "5", "--capacity", "4", "--layout", "columnar", "-o", "-")
	require.NoError(t, err)
	require.Contains(t, out, "4 particles, 5 frames")
	require.Contains(t, out, "layout: columnar")

	_, err = execute(t, "simulate", "-c", cfg, "--solver", "rk4")
	require.Error(t, err)
	_, err = execute(t, "simulate", "-c", cfg, "--substeps", "0")
	require.Error(t, err)
}

func TestSimulate_NonFiniteConfigIsAnError(t *testing.T) {
	base := fmt.Sprintf(simulateConfig, "verlet")
	for name, patch := range map[string][2]string{
		"rate":    {"rate: 120", "rate: .inf"},
		"speed":   {"speed: 2", "speed: .inf"},
		"spread":  {"spread_deg: 20", "spread_deg: .nan"},
		"radius":  {"radius: 0.2", "radius: .inf"},
		"gravity": {"capacity: 50", "capacity: 50\n  gravity: [0, -.inf]"},
	} {
		t.Run(name, func(t *testing.T) {
			body := strings.Replace(base, patch[0], patch[1], 1)
			require.NotEqual(t, base, body)
			cfg := writeFile(t, "lvsim.yaml", body)
			_, err := execute(t, "simulate", "-c", cfg, "--frames", "1")
			require.Error(t, err)
		})
	}
}

func TestConverge_ReportAndCharts(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.yaml")
	charts := filepath.Join(dir, "charts")

	out, err := execute(t, "converge", "--sizes", "4,8", "--runs", "5", "-o", report, "--chart-dir", charts)
	require.NoError(t, err)
	require.Contains(t, out, "conjugate-gradient")

	raw, err := os.ReadFile(report)
	require.NoError(t, err)
	var got struct {
		Problem string `yaml:"problem"`
		Series  []struct {
			Method  string `yaml:"method"`
			Size    int    `yaml:"size"`
			Samples []struct {
				Budget int `yaml:"budget"`
			} `yaml:"samples"`
		} `yaml:"series"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &got))
	require.Equal(t, "tridiagonal", got.Problem)
	require.Len(t, got.Series, 8)
	for _, s := range got.Series {
		require.Len(t, s.Samples, 5)
	}

	for _, size := range []int{4, 8} {
		_, err := os.Stat(filepath.Join(charts, fmt.Sprintf("convergence_tridiagonal_%d.png", size)))
		require.NoError(t, err)
	}
}

func TestConverge_MethodSubsetAndErrors(t *testing.T) {
	out, err := execute(t, "converge", "--sizes", "4", "--runs", "3", "--methods", "cg,gs", "--problem", "poisson", "-o", "-")
	require.NoError(t, err)
	require.Contains(t, out, "gauss-seidel")
	require.NotContains(t, out, "jacobi")

	_, err = execute(t, "converge", "--sizes", "1")
	require.Error(t, err)
	_, err = execute(t, "converge", "--problem", "laplace")
	require.Error(t, err)
	_, err = execute(t, "converge", "--sizes", "4", "--threshold", "inf")
	require.ErrorContains(t, err, "threshold")
	_, err = execute(t, "converge", "--methods", "newton")
	require.ErrorIs(t, err, lns.ErrUnknownMethod)
}

func TestLoadConfig(t *testing.T) {
	c, err := LoadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), c)

	c, err = LoadConfig(writeFile(t, "part.yaml", "solve:\n  method: gs\nconverge:\n  sizes: [16, 32]\n"))
	require.NoError(t, err)
	require.Equal(t, "gs", c.Solve.Method)
	require.Equal(t, []int{16, 32}, c.Converge.Sizes)
	require.Equal(t, DefaultConfig().Simulate, c.Simulate)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "simulate:\n  particles: 3\n"))
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

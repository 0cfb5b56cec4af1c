// SPDX-License-Identifier: MIT

package convergence

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/katalvlaran/lvsim/lns"
	"github.com/katalvlaran/lvsim/matrix"
)

// Study defaults.
const (
	// DefaultRuns is the number of budgets per solver: 1..DefaultRuns.
	DefaultRuns = 100
	// DefaultBaseSize and DefaultSizeCount give sizes 32<<i for i < 6.
	DefaultBaseSize  = 32
	DefaultSizeCount = 6
	// DefaultSeed seeds the exact solution.
	DefaultSeed uint64 = 1 << 20
	// DefaultThreshold is the relative residual for GD and CG.
	DefaultThreshold = 1e-10
	// DefaultCoupling is c of the tridiagonal generator.
	DefaultCoupling = 1.0
)

var (
	// ErrUnknownProblem indicates a Problem outside the defined set.
	ErrUnknownProblem = errors.New("convergence: unknown problem")
	// ErrNoSizes indicates an empty size list.
	ErrNoSizes = errors.New("convergence: no problem sizes")
)

// Problem selects the generated system.
type Problem int

const (
	// ProblemTridiagonal is matrix.Tridiagonal(size, c).
	ProblemTridiagonal Problem = iota
	// ProblemPoisson is matrix.Poisson2D(size): size is the grid side and
	// the system has size² unknowns.
	ProblemPoisson
)

// String implements fmt.Stringer.
func (p Problem) String() string {
	switch p {
	case ProblemTridiagonal:
		return "tridiagonal"
	case ProblemPoisson:
		return "poisson"
	default:
		return fmt.Sprintf("Problem(%d)", int(p))
	}
}

// ParseProblem maps "tridiagonal" or "poisson" to a Problem.
func ParseProblem(s string) (Problem, error) {
	switch s {
	case "tridiagonal":
		return ProblemTridiagonal, nil
	case "poisson":
		return ProblemPoisson, nil
	default:
		return 0, fmt.Errorf("ParseProblem: %q: %w", s, ErrUnknownProblem)
	}
}

// Options configures a study.
type Options struct {
	sizes          []int
	runs           int
	methods        []lns.Method
	problem        Problem
	coupling       float64
	seed           uint64
	threshold      float64
	layout         matrix.Layout
	preconditioner lns.PreconditionerKind
	concurrency    int
	system         matrix.Matrix[float64]
	logger         logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultSizes returns 32, 64, …, 1024.
func DefaultSizes() []int {
	sizes := make([]int, DefaultSizeCount)
	for i := range sizes {
		sizes[i] = DefaultBaseSize << i
	}

	return sizes
}

// WithSizes replaces the problem sizes. Panics on a size < 2.
func WithSizes(sizes ...int) Option {
	for _, s := range sizes {
		if s < 2 {
			panic("convergence: WithSizes requires sizes >= 2")
		}
	}

	return func(o *Options) { o.sizes = append([]int(nil), sizes...) }
}

// WithRuns sets the number of budgets per solver. Panics if n <= 0.
func WithRuns(n int) Option {
	if n <= 0 {
		panic("convergence: WithRuns requires n > 0")
	}

	return func(o *Options) { o.runs = n }
}

// WithMethods restricts the solvers; the default is lns.Methods().
func WithMethods(ms ...lns.Method) Option {
	return func(o *Options) { o.methods = append([]lns.Method(nil), ms...) }
}

// WithProblem selects the generator.
func WithProblem(p Problem) Option {
	return func(o *Options) { o.problem = p }
}

// WithCoupling sets c of the tridiagonal generator. Panics if c <= 0.
func WithCoupling(c float64) Option {
	if !(c > 0) {
		panic("convergence: WithCoupling requires c > 0")
	}

	return func(o *Options) { o.coupling = c }
}

// WithSeed seeds the exact solution.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithThreshold sets the GD/CG relative residual. Panics unless t is finite and > 0.
func WithThreshold(t float64) Option {
	if !(t > 0) || math.IsInf(t, 1) {
		panic("convergence: WithThreshold requires a finite t > 0")
	}

	return func(o *Options) { o.threshold = t }
}

// WithLayout selects dense or sparse storage for the generated systems.
func WithLayout(l matrix.Layout) Option {
	return func(o *Options) { o.layout = l }
}

// WithPreconditioner sets the CG preconditioner.
func WithPreconditioner(kind lns.PreconditionerKind) Option {
	return func(o *Options) { o.preconditioner = kind }
}

// WithConcurrency bounds the number of tasks in flight. Panics if n <= 0.
func WithConcurrency(n int) Option {
	if n <= 0 {
		panic("convergence: WithConcurrency requires n > 0")
	}

	return func(o *Options) { o.concurrency = n }
}

// WithSystem studies a caller-supplied matrix (e.g. loaded with
// matrix.Load) instead of generated ones; sizes are ignored.
func WithSystem(a matrix.Matrix[float64]) Option {
	return func(o *Options) { o.system = a }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		sizes:          DefaultSizes(),
		runs:           DefaultRuns,
		methods:        lns.Methods(),
		problem:        ProblemTridiagonal,
		coupling:       DefaultCoupling,
		seed:           DefaultSeed,
		threshold:      DefaultThreshold,
		layout:         matrix.LayoutSparse,
		preconditioner: lns.PreconditionerNone,
		concurrency:    runtime.GOMAXPROCS(0),
		logger:         logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

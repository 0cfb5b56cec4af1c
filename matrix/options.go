// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for comparison, file ingestion and
// generators. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used by AllClose.
	DefaultEpsilon = 1e-9

	// DefaultLayout is the storage produced by Load/Read and the generators.
	DefaultLayout = LayoutSparse

	// DefaultSymmetric mirrors every off-diagonal entry read from a file when true
	// (Matrix Market "symmetric" storage keeps only the lower triangle).
	DefaultSymmetric = false

	// DefaultValidateNaNInf rejects NaN/±Inf values during file ingestion.
	DefaultValidateNaNInf = true
)

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicLayoutInvalid  = "matrix: WithLayout: unknown layout"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	epsilon        float64
	layout         Layout
	symmetric      bool
	validateNaNInf bool
}

func defaultOptions() Options {
	return Options{
		epsilon:        DefaultEpsilon,
		layout:         DefaultLayout,
		symmetric:      DefaultSymmetric,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// WithEpsilon sets the comparison tolerance. Panics on negative or non-finite eps.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithLayout selects the storage produced by Load/Read and generators.
func WithLayout(l Layout) Option {
	if l != LayoutDense && l != LayoutSparse {
		panic(panicLayoutInvalid)
	}

	return func(o *Options) { o.layout = l }
}

// WithDense is shorthand for WithLayout(LayoutDense).
func WithDense() Option { return WithLayout(LayoutDense) }

// WithSymmetric mirrors off-diagonal file entries into the upper triangle.
func WithSymmetric() Option {
	return func(o *Options) { o.symmetric = true }
}

// WithNoValidateNaNInf accepts non-finite values from files.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies opts over the defaults; nil options are ignored.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// newMatrix allocates an r×c matrix in the requested layout.
func newMatrix[T Float](l Layout, r, c int) (Matrix[T], error) {
	if l == LayoutDense {
		d, err := NewDense[T](r, c)
		if err != nil {
			return nil, err
		}

		return d, nil
	}
	s, err := NewSparse[T](r, c)
	if err != nil {
		return nil, err
	}

	return s, nil
}

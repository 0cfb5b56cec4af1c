// SPDX-License-Identifier: MIT

// Package lns: functional options shared by every solver.
package lns

import "github.com/go-logr/logr"

const (
	// DefaultResidualRefresh is the period (in iterations) at which gradient
	// descent and conjugate gradient recompute r = b − A·x exactly instead of
	// updating it incrementally, bounding accumulated rounding drift.
	DefaultResidualRefresh = 50

	// DefaultPreconditioner is used by ConjugateGradient when none is given.
	DefaultPreconditioner = PreconditionerNone
)

const panicRefreshNonPositive = "lns: WithResidualRefresh: period must be > 0"

// Option configures a solver call.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	logger         logr.Logger
	refresh        int
	preconditioner PreconditionerKind
}

func defaultOptions() Options {
	return Options{
		logger:         logr.Discard(),
		refresh:        DefaultResidualRefresh,
		preconditioner: DefaultPreconditioner,
	}
}

// WithLogger routes solver summaries to l (V(2): one line per solve).
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithResidualRefresh overrides DefaultResidualRefresh. Panics on period <= 0.
func WithResidualRefresh(period int) Option {
	if period <= 0 {
		panic(panicRefreshNonPositive)
	}

	return func(o *Options) { o.refresh = period }
}

// WithPreconditioner selects the preconditioner ConjugateGradient builds from A.
func WithPreconditioner(kind PreconditionerKind) Option {
	return func(o *Options) { o.preconditioner = kind }
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

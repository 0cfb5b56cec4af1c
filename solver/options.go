// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"github.com/go-logr/logr"
	"github.com/katalvlaran/lvsim/collision"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultSubsteps is the number of substeps per Solve.
	DefaultSubsteps = 1
	// DefaultWorkers is the MultiThreaded pool size.
	DefaultWorkers = 4
)

// DefaultGravity is the constant acceleration applied to every movable particle.
var DefaultGravity = r2.Vec{Y: -9.8}

// Options configures a solver.
type Options struct {
	substeps  int
	gravity   r2.Vec
	workers   int
	logger    logr.Logger
	collision []collision.Option
}

// Option mutates Options.
type Option func(*Options)

// WithSubsteps splits each Solve(dt) into n steps of dt/n. Panics if n <= 0.
func WithSubsteps(n int) Option {
	if n <= 0 {
		panic("solver: WithSubsteps requires n > 0")
	}

	return func(o *Options) { o.substeps = n }
}

// WithGravity overrides DefaultGravity. Panics on non-finite components.
func WithGravity(g r2.Vec) Option {
	if math.IsNaN(g.X) || math.IsNaN(g.Y) || math.IsInf(g.X, 0) || math.IsInf(g.Y, 0) {
		panic("solver: WithGravity requires finite components")
	}

	return func(o *Options) { o.gravity = g }
}

// WithWorkers sets the MultiThreaded pool size. Panics if n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic("solver: WithWorkers requires n > 0")
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger sets the logger used by the solver and its collision handler.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithCollisionOptions forwards options to the collision handler.
func WithCollisionOptions(opts ...collision.Option) Option {
	return func(o *Options) { o.collision = append(o.collision, opts...) }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		substeps: DefaultSubsteps,
		gravity:  DefaultGravity,
		workers:  DefaultWorkers,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

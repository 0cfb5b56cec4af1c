// SPDX-License-Identifier: MIT

package collision

import "github.com/go-logr/logr"

const (
	// DefaultPositional selects impulse response.
	DefaultPositional = false
	// DefaultBoundedGrid indexes the world box linearly instead of hashing.
	DefaultBoundedGrid = true
	// StatsWindow is the number of per-particle samples in the rolling average.
	StatsWindow = 100
)

// Options configures a Handler.
type Options struct {
	positional  bool
	boundedGrid bool
	spacing     float64 // 0 means 2·maxRadius
	logger      logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithPositional switches to position-only response scaled by restitution.
func WithPositional() Option {
	return func(o *Options) { o.positional = true }
}

// WithUnboundedGrid hashes cells over the whole plane instead of indexing
// the world box.
func WithUnboundedGrid() Option {
	return func(o *Options) { o.boundedGrid = false }
}

// WithGridSpacing overrides the cell size (default 2·maxRadius).
// Panics if spacing <= 0.
func WithGridSpacing(spacing float64) Option {
	if !(spacing > 0) {
		panic("collision: WithGridSpacing requires spacing > 0")
	}

	return func(o *Options) { o.spacing = spacing }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		positional:  DefaultPositional,
		boundedGrid: DefaultBoundedGrid,
		logger:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

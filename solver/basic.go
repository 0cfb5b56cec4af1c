// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// Basic integrates with explicit Euler and resolves collisions with impulses.
type Basic struct {
	base
}

// NewBasic builds an Euler solver over store.
func NewBasic(store particle.Store, bounds spatial.Bounds, maxRadius float64, opts ...Option) (*Basic, error) {
	b, err := newBase("NewBasic", store, bounds, maxRadius, false, opts...)
	if err != nil {
		return nil, err
	}

	return &Basic{base: b}, nil
}

// Solve implements Solver. Substep: p += v·dt, v += g·dt, then Resolve.
func (s *Basic) Solve(dt float64) error {
	return s.run("Basic.Solve", dt, func(dt float64) {
		g := r2.Scale(dt, s.opts.gravity)
		for i := 0; i < s.pos.Len(); i++ {
			if s.inv.At(i) == 0 {
				continue
			}
			v := s.vel.At(i)
			s.pos.Set(i, r2.Add(s.pos.At(i), r2.Scale(dt, v)))
			s.vel.Set(i, r2.Add(v, g))
		}
		s.handler.Resolve()
	})
}

// Stats implements Solver.
func (s *Basic) Stats() Stats { return s.stats() }

// Verlet integrates positions from a two-point history and resolves
// collisions with impulses. A substep rebuilds the grid and resolves
// contacts, rewrites the history from the resolved velocity
// (p_prev = p − v·dt) so impulses carry into the integration, then
// integrates and clamps to the bounds.
type Verlet struct {
	base
}

// NewVerlet builds a Verlet solver over store.
func NewVerlet(store particle.Store, bounds spatial.Bounds, maxRadius float64, opts ...Option) (*Verlet, error) {
	b, err := newBase("NewVerlet", store, bounds, maxRadius, false, opts...)
	if err != nil {
		return nil, err
	}

	return &Verlet{base: b}, nil
}

// Solve implements Solver.
func (s *Verlet) Solve(dt float64) error {
	return s.run("Verlet.Solve", dt, func(dt float64) {
		s.handler.Resolve()
		for i := 0; i < s.pos.Len(); i++ {
			s.prev.Set(i, r2.Sub(s.pos.At(i), r2.Scale(dt, s.vel.At(i))))
		}
		s.verlet(dt)
		s.handler.ClampAll()
	})
}

// Stats implements Solver.
func (s *Verlet) Stats() Stats { return s.stats() }

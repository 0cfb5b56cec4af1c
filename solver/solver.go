// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsim/collision"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solver advances a particle store by one frame per Solve call.
type Solver interface {
	// Solve advances the store by dt, split into substeps.
	Solve(dt float64) error
	// Bounds returns the world box.
	Bounds() spatial.Bounds
	// Stats returns a copy of the accumulated statistics.
	Stats() Stats
}

// Stats extends the collision statistics with solver counters.
type Stats struct {
	collision.Stats
	// Steps counts Solve calls, Substeps the substeps they ran.
	Steps, Substeps int
	// GhostPairs counts cross-strip neighbour visits (MultiThreaded only).
	GhostPairs int
	// Owned is the per-worker owned particle count of the last substep
	// (MultiThreaded only).
	Owned []int
}

// Kind names a solver implementation.
type Kind int

const (
	KindBasic         Kind = iota // explicit Euler
	KindVerlet                    // position Verlet
	KindMultiThreaded             // strip-parallel position Verlet
)

var kindNames = [...]string{"basic", "verlet", "multithreaded"}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind maps a name ("basic", "euler", "verlet", "multithreaded", "mt")
// to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "basic", "euler":
		return KindBasic, nil
	case "verlet":
		return KindVerlet, nil
	case "multithreaded", "mt":
		return KindMultiThreaded, nil
	default:
		return 0, solverErrorf("ParseKind", fmt.Errorf("%q: %w", s, ErrUnknownKind))
	}
}

// New builds a solver of the given kind.
func New(kind Kind, store particle.Store, bounds spatial.Bounds, maxRadius float64, opts ...Option) (Solver, error) {
	switch kind {
	case KindBasic:
		return NewBasic(store, bounds, maxRadius, opts...)
	case KindVerlet:
		return NewVerlet(store, bounds, maxRadius, opts...)
	case KindMultiThreaded:
		return NewMultiThreaded(store, bounds, maxRadius, opts...)
	default:
		return nil, solverErrorf("New", ErrUnknownKind)
	}
}

// base holds what every solver shares: the store, its field views, the
// collision handler and the step counters.
type base struct {
	store   particle.Store
	pos     particle.VecView
	prev    particle.VecView
	vel     particle.VecView
	inv     particle.ScalarView
	handler *collision.Handler
	opts    Options

	steps, substeps int
}

func newBase(tag string, store particle.Store, bounds spatial.Bounds, maxRadius float64, positional bool, opts ...Option) (base, error) {
	o := gatherOptions(opts...)
	copts := append([]collision.Option{collision.WithLogger(o.logger)}, o.collision...)
	if positional {
		copts = append(copts, collision.WithPositional())
	}
	h, err := collision.NewHandler(store, bounds, maxRadius, copts...)
	if err != nil {
		return base{}, solverErrorf(tag, err)
	}
	o.logger.V(1).Info("solver ready", "solver", tag, "substeps", o.substeps,
		"gravity", fmt.Sprintf("(%g, %g)", o.gravity.X, o.gravity.Y), "capacity", store.Cap())

	return base{
		store:   store,
		pos:     store.Position(),
		prev:    store.PreviousPosition(),
		vel:     store.Velocity(),
		inv:     store.InverseMass(),
		handler: h,
		opts:    o,
	}, nil
}

// run validates dt and calls substep opts.substeps times with dt/substeps.
func (b *base) run(tag string, dt float64, substep func(sdt float64)) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return solverErrorf(tag, ErrInvalidTimeStep)
	}
	sdt := dt / float64(b.opts.substeps)
	for s := 0; s < b.opts.substeps; s++ {
		substep(sdt)
		b.substeps++
	}
	b.steps++

	return nil
}

// Bounds implements Solver.
func (b *base) Bounds() spatial.Bounds { return b.handler.Bounds() }

// Handler exposes the collision handler.
func (b *base) Handler() *collision.Handler { return b.handler }

func (b *base) stats() Stats {
	return Stats{Stats: b.handler.Stats(), Steps: b.steps, Substeps: b.substeps}
}

// verlet advances every movable particle: p' = 2p − p_prev + g·dt²,
// p_prev = p, v = (p' − p)/dt. Static particles (inverse mass 0) stay put.
// Complexity: O(n).
func (b *base) verlet(dt float64) {
	g := r2.Scale(dt*dt, b.opts.gravity)
	for i := 0; i < b.pos.Len(); i++ {
		if b.inv.At(i) == 0 {
			continue
		}
		p0, p1 := b.prev.At(i), b.pos.At(i)
		p2 := r2.Add(r2.Sub(r2.Scale(2, p1), p0), g)
		b.pos.Set(i, p2)
		b.prev.Set(i, p1)
		b.vel.Set(i, r2.Scale(1/dt, r2.Sub(p2, p1)))
	}
}

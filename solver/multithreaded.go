// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/lvsim/collision"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// MultiThreaded resolves collisions on a fixed pool of workers. The world
// is cut into one vertical strip per worker; a particle is owned by the
// strip containing its position at the start of the substep.
//
// Substep:
//
//	Stage 1 (main):    rebuild the grid, snapshot positions and velocities,
//	                   bucket particles by owner.
//	Barrier #1.
//	Stage 2 (workers): each worker resolves its own particles. Pairs inside
//	                   the strip are resolved on both sides; a neighbour
//	                   owned by another strip (a ghost, at most one grid
//	                   spacing across the edge) is read from the snapshot
//	                   and only the owned side is corrected.
//	Barrier #2.
//	Stage 3 (main):    Verlet integration and bounds clamp.
//
// Workers write only to the particles they own, so particle data needs no
// locks. The one-sided ghost correction makes cross-strip pairs converge
// over substeps rather than in one pass.
type MultiThreaded struct {
	base
	pool *Pool

	lo         float64 // world min X
	stripWidth float64
	strips     []spatial.Bounds
	cursors    []*spatial.Cursor

	rad, rest particle.ScalarView

	snapPos []r2.Vec
	snapVel []r2.Vec
	owner   []int   // per particle
	owned   [][]int // per worker
	counts  []int   // per particle, collisions of the last pass
	ghosts  []int   // per worker, ghost visits of the last pass

	ghostTotal int
	closed     bool
}

// NewMultiThreaded builds the solver and starts its workers
// (WithWorkers, default DefaultWorkers). Collisions run in positional mode.
func NewMultiThreaded(store particle.Store, bounds spatial.Bounds, maxRadius float64, opts ...Option) (*MultiThreaded, error) {
	b, err := newBase("NewMultiThreaded", store, bounds, maxRadius, true, opts...)
	if err != nil {
		return nil, err
	}
	n := b.opts.workers
	capacity := store.Cap()
	m := &MultiThreaded{
		base:       b,
		lo:         bounds.Min.X,
		stripWidth: bounds.Width() / float64(n),
		strips:     make([]spatial.Bounds, n),
		cursors:    make([]*spatial.Cursor, n),
		rad:        store.Radius(),
		rest:       store.Restitution(),
		snapPos:    make([]r2.Vec, capacity),
		snapVel:    make([]r2.Vec, capacity),
		owner:      make([]int, capacity),
		owned:      make([][]int, n),
		counts:     make([]int, capacity),
		ghosts:     make([]int, n),
	}
	margin := b.handler.Grid().Spacing()
	for w := 0; w < n; w++ {
		s := bounds
		s.Min.X = bounds.Min.X + float64(w)*m.stripWidth
		s.Max.X = s.Min.X + m.stripWidth
		m.strips[w] = s
		m.cursors[w] = b.handler.Grid().Cursor()
		m.owned[w] = make([]int, 0, capacity/n+1)
		b.opts.logger.V(1).Info("worker strip", "worker", w,
			"minX", s.Min.X, "maxX", s.Max.X, "ghostMinX", s.Min.X-margin, "ghostMaxX", s.Max.X+margin)
	}
	m.pool = NewPool(n, m.work)

	return m, nil
}

// Strips returns the owned region of every worker.
func (m *MultiThreaded) Strips() []spatial.Bounds {
	return append([]spatial.Bounds(nil), m.strips...)
}

// ownerOf maps an x coordinate to its strip; outside points go to the edge strips.
func (m *MultiThreaded) ownerOf(x float64) int {
	w := int((x - m.lo) / m.stripWidth)

	return min(max(w, 0), len(m.strips)-1)
}

// Solve implements Solver.
func (m *MultiThreaded) Solve(dt float64) error {
	if m.closed {
		return solverErrorf("MultiThreaded.Solve", ErrClosed)
	}
	var runErr error
	err := m.run("MultiThreaded.Solve", dt, func(dt float64) {
		if runErr != nil {
			return
		}
		runErr = m.substep(dt)
	})
	if err != nil {
		return err
	}
	if runErr != nil {
		return solverErrorf("MultiThreaded.Solve", runErr)
	}

	return nil
}

func (m *MultiThreaded) substep(dt float64) error {
	n := m.store.Len()

	// Stage 1
	m.handler.Rebuild()
	for w := range m.owned {
		m.owned[w] = m.owned[w][:0]
	}
	for i := 0; i < n; i++ {
		p := m.pos.At(i)
		m.snapPos[i] = p
		m.snapVel[i] = m.vel.At(i)
		w := m.ownerOf(p.X)
		m.owner[i] = w
		m.owned[w] = append(m.owned[w], i)
	}

	// Stage 2
	if err := m.pool.Run(); err != nil {
		return err
	}

	rec := m.handler.Recorder()
	rec.BeginPass()
	for i := 0; i < n; i++ {
		rec.Observe(m.counts[i])
	}
	for _, g := range m.ghosts {
		m.ghostTotal += g
	}

	// Stage 3
	m.verlet(dt)
	m.handler.ClampAll()

	return nil
}

// work is the per-worker task of Stage 2.
func (m *MultiThreaded) work(id int) {
	h := m.handler
	cur := m.cursors[id]
	qr := h.QueryRadius()
	ghosts := 0
	for _, i := range m.owned[id] {
		c := 0
		for _, j := range cur.Query(m.pos.At(i), qr) {
			if j == i {
				continue
			}
			if m.owner[j] == id {
				if h.ResolvePair(i, j) {
					c++
				}

				continue
			}
			ghosts++
			nb := collision.Neighbour{
				Position:    m.snapPos[j],
				Velocity:    m.snapVel[j],
				InverseMass: m.inv.At(j),
				Radius:      m.rad.At(j),
				Restitution: m.rest.At(j),
			}
			if h.ResolveAgainst(i, nb) {
				c++
			}
		}
		m.counts[i] = c
	}
	m.ghosts[id] = ghosts
}

// Stats implements Solver.
func (m *MultiThreaded) Stats() Stats {
	s := m.stats()
	s.GhostPairs = m.ghostTotal
	s.Owned = make([]int, len(m.owned))
	for w, ids := range m.owned {
		s.Owned[w] = len(ids)
	}

	return s
}

// Workers returns the pool size.
func (m *MultiThreaded) Workers() int { return m.pool.Workers() }

// Close stops and joins the workers. Solve fails with ErrClosed afterwards.
func (m *MultiThreaded) Close() error {
	m.closed = true
	m.pool.Close()

	return nil
}

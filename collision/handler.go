// SPDX-License-Identifier: MIT

package collision

import (
	"math"

	"github.com/go-logr/logr"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"gonum.org/v1/gonum/spatial/r2"
)

// Handler resolves collisions for one particle store inside a world box.
// A Handler is not safe for concurrent use, except that ResolvePair,
// ResolveAgainst and BoundsCheck touch nothing but the particles they are
// given and may run concurrently on disjoint particles.
type Handler struct {
	store      particle.Store
	pos, prev  particle.VecView
	vel        particle.VecView
	inv, rest  particle.ScalarView
	rad        particle.ScalarView
	bounds     spatial.Bounds
	maxRadius  float64
	grid       *spatial.Grid
	positional bool
	contacts   []Contact
	rec        Recorder
	log        logr.Logger
}

// NewHandler builds a handler whose grid covers store.Cap() particles with
// cells of 2·maxRadius (unless WithGridSpacing).
func NewHandler(store particle.Store, bounds spatial.Bounds, maxRadius float64, opts ...Option) (*Handler, error) {
	if store == nil {
		return nil, collisionErrorf("NewHandler", ErrNilStore)
	}
	if !(maxRadius > 0) || math.IsInf(maxRadius, 0) {
		return nil, collisionErrorf("NewHandler", ErrInvalidRadius)
	}
	if err := bounds.Validate(); err != nil {
		return nil, collisionErrorf("NewHandler", err)
	}
	o := gatherOptions(opts...)
	spacing := o.spacing
	if spacing == 0 {
		spacing = 2 * maxRadius
	}

	var (
		grid *spatial.Grid
		err  error
	)
	if o.boundedGrid {
		grid, err = spatial.NewBounded(spacing, bounds, store.Cap())
	} else {
		grid, err = spatial.NewUnbounded(spacing, store.Cap())
	}
	if err != nil {
		return nil, collisionErrorf("NewHandler", err)
	}
	o.logger.V(1).Info("collision handler ready",
		"spacing", spacing, "buckets", grid.TableSize(), "bounded", grid.Bounded(), "positional", o.positional)

	return &Handler{
		store:      store,
		pos:        store.Position(),
		prev:       store.PreviousPosition(),
		vel:        store.Velocity(),
		inv:        store.InverseMass(),
		rest:       store.Restitution(),
		rad:        store.Radius(),
		bounds:     bounds,
		maxRadius:  maxRadius,
		grid:       grid,
		positional: o.positional,
		contacts:   make([]Contact, 0, store.Cap()),
		log:        o.logger,
	}, nil
}

// Bounds returns the world box.
func (h *Handler) Bounds() spatial.Bounds { return h.bounds }

// Grid returns the broad-phase grid, valid since the last Rebuild.
func (h *Handler) Grid() *spatial.Grid { return h.grid }

// QueryRadius is the half-extent of every neighbour query, 2·maxRadius.
func (h *Handler) QueryRadius() float64 { return 2 * h.maxRadius }

// Positional reports whether the handler runs in position-only mode.
func (h *Handler) Positional() bool { return h.positional }

// Recorder exposes the statistics accumulator.
func (h *Handler) Recorder() *Recorder { return &h.rec }

// Stats returns a copy of the accumulated statistics.
func (h *Handler) Stats() Stats { return h.rec.Stats() }

// Rebuild re-indexes the current particle positions.
func (h *Handler) Rebuild() { h.grid.Initialize(h.pos) }

// Resolve runs one fused detect-and-respond pass: rebuild the grid, resolve
// every particle against its neighbours, then clamp everything into the
// world box. It returns the number of resolved pair visits; each
// overlapping pair may be visited from both ends.
// Complexity: O(n·k) for k neighbours per query.
func (h *Handler) Resolve() int {
	h.Rebuild()
	h.rec.BeginPass()

	pos := h.pos
	qr := h.QueryRadius()
	total := 0
	for i := 0; i < pos.Len(); i++ {
		n := 0
		for _, j := range h.grid.Query(pos.At(i), qr) {
			if j == i {
				continue
			}
			if h.ResolvePair(i, j) {
				n++
			}
		}
		h.rec.Observe(n)
		total += n
	}
	h.ClampAll()

	return total
}

// ResolvePair separates particles i and j if they overlap and returns true
// when it did. Both particles are then clamped into the world box.
func (h *Handler) ResolvePair(i, j int) bool {
	pos := h.pos
	rad := h.rad
	n, d, ok := overlap(pos.At(i), pos.At(j), rad.At(i)+rad.At(j))
	if !ok {
		return false
	}
	if !h.apply(i, j, n, rad.At(i)+rad.At(j)-d) {
		return false
	}
	h.BoundsCheck(i)
	h.BoundsCheck(j)

	return true
}

// apply pushes i and j apart by depth along n and, in impulse mode,
// exchanges normal momentum. Two static bodies are left alone.
func (h *Handler) apply(i, j int, n r2.Vec, depth float64) bool {
	inv := h.inv
	wa, wb := inv.At(i), inv.At(j)
	if wa == 0 && wb == 0 {
		return false
	}
	rest := h.rest
	e := (rest.At(i) + rest.At(j)) * 0.5

	pos := h.pos
	sa, sb := shares(wa, wb)
	if h.positional {
		depth *= e
	}
	pa, pb := pos.Ptr(i), pos.Ptr(j)
	*pa = r2.Sub(*pa, r2.Scale(depth*sa, n))
	*pb = r2.Add(*pb, r2.Scale(depth*sb, n))
	if h.positional {
		return true
	}

	vel := h.vel
	va, vb := vel.Ptr(i), vel.Ptr(j)
	if jn := impulse(*va, *vb, n, wa, wb, e); jn != 0 {
		*va = r2.Sub(*va, r2.Scale(jn*wa, n))
		*vb = r2.Add(*vb, r2.Scale(jn*wb, n))
	}

	return true
}

// ResolveAgainst corrects particle i alone against a read-only neighbour:
// i takes its own share of the separation and, in impulse mode, its own
// share of the normal impulse. The neighbour is not written.
func (h *Handler) ResolveAgainst(i int, nb Neighbour) bool {
	pos := h.pos
	rad := h.rad
	rr := rad.At(i) + nb.Radius
	n, d, ok := overlap(pos.At(i), nb.Position, rr)
	if !ok {
		return false
	}
	wa := h.inv.At(i)
	if wa == 0 {
		return false
	}
	e := (h.rest.At(i) + nb.Restitution) * 0.5
	sa, _ := shares(wa, nb.InverseMass)
	depth := rr - d
	if h.positional {
		depth *= e
	}
	pa := pos.Ptr(i)
	*pa = r2.Sub(*pa, r2.Scale(depth*sa, n))
	if !h.positional {
		va := h.vel.Ptr(i)
		if jn := impulse(*va, nb.Velocity, n, wa, nb.InverseMass, e); jn != 0 {
			*va = r2.Sub(*va, r2.Scale(jn*wa, n))
		}
	}
	h.BoundsCheck(i)

	return true
}

// BoundsCheck clamps particle i into the world box shrunk by its radius and
// reports whether it touched a wall. Impulse mode reflects the velocity
// component; positional mode rewrites the previous position so the
// implicit velocity is reflected and scaled by restitution.
func (h *Handler) BoundsCheck(i int) bool {
	box := h.bounds.Inset(h.rad.At(i))
	p := h.pos.Ptr(i)
	if box.Contains(*p) {
		return false
	}
	c := box.Clamp(*p)

	if h.positional {
		prev := h.prev.Ptr(i)
		e := h.rest.At(i)
		if c.X != p.X {
			prev.X = c.X + (p.X-prev.X)*e
		}
		if c.Y != p.Y {
			prev.Y = c.Y + (p.Y-prev.Y)*e
		}
	} else {
		v := h.vel.Ptr(i)
		if c.X != p.X {
			v.X = -v.X
		}
		if c.Y != p.Y {
			v.Y = -v.Y
		}
	}
	*p = c

	return true
}

// ClampAll runs BoundsCheck over every particle and returns the hit count.
func (h *Handler) ClampAll() int {
	hits := 0
	for i := 0; i < h.store.Len(); i++ {
		if h.BoundsCheck(i) {
			hits++
		}
	}
	h.rec.Boundary(hits)

	return hits
}

// GenerateContacts rebuilds the grid and lists every overlapping pair once
// (A < B). The slice aliases the handler's buffer.
func (h *Handler) GenerateContacts() []Contact {
	h.Rebuild()
	h.contacts = h.contacts[:0]

	pos := h.pos
	rad := h.rad
	qr := h.QueryRadius()
	for i := 0; i < pos.Len(); i++ {
		pa := pos.At(i)
		for _, j := range h.grid.Query(pa, qr) {
			if j <= i {
				continue
			}
			rr := rad.At(i) + rad.At(j)
			if n, d, ok := overlap(pa, pos.At(j), rr); ok {
				h.contacts = append(h.contacts, Contact{A: i, B: j, Depth: rr - d, Normal: n})
			}
		}
	}

	return h.contacts
}

// ResolveContacts applies a contact batch in order, clamping both bodies
// after each contact like ResolvePair, then clamps every particle.
// Depths and normals are those captured at generation time.
func (h *Handler) ResolveContacts(contacts []Contact) int {
	h.rec.BeginPass()
	resolved := 0
	for _, c := range contacts {
		if h.apply(c.A, c.B, c.Normal, c.Depth) {
			h.BoundsCheck(c.A)
			h.BoundsCheck(c.B)
			resolved++
		}
	}
	h.rec.total += resolved
	h.ClampAll()

	return resolved
}

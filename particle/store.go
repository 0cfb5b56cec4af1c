// SPDX-License-Identifier: MIT

package particle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Layout selects the physical memory layout of a Store.
type Layout int

const (
	// LayoutInterleaved groups fields by particle.
	LayoutInterleaved Layout = iota
	// LayoutColumnar groups particles by field.
	LayoutColumnar
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case LayoutInterleaved:
		return "interleaved"
	case LayoutColumnar:
		return "columnar"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout maps "interleaved" or "columnar" to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "interleaved", "aos":
		return LayoutInterleaved, nil
	case "columnar", "soa":
		return LayoutColumnar, nil
	default:
		return 0, particleErrorf("ParseLayout", fmt.Errorf("%q: %w", s, ErrUnknownLayout))
	}
}

// Store is a fixed-capacity particle collection addressed by integer id.
// Ids are dense: the n-th successful Add returns n-1.
type Store interface {
	// Add appends a particle at rest history (previous position = pos) and
	// returns its id. ErrFull at capacity, ErrInvalidParticle on bad fields.
	Add(pos, vel r2.Vec, inverseMass, radius, restitution float64) (int, error)
	// Len returns the live particle count.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
	// Reset drops every particle, keeping the capacity.
	Reset()
	// Layout reports the physical layout.
	Layout() Layout

	Position() VecView
	PreviousPosition() VecView
	Velocity() VecView
	InverseMass() ScalarView
	Restitution() ScalarView
	Radius() ScalarView
}

// New builds an empty store with the given layout and capacity.
func New(layout Layout, capacity int) (Store, error) {
	switch layout {
	case LayoutInterleaved:
		return NewInterleaved(capacity)
	case LayoutColumnar:
		return NewColumnar(capacity)
	default:
		return nil, particleErrorf("New", ErrUnknownLayout)
	}
}

// validateParticle rejects attributes the collision code cannot handle.
// Inverse mass 0 is a static body.
func validateParticle(pos, vel r2.Vec, inverseMass, radius, restitution float64) error {
	for _, f := range [...]float64{pos.X, pos.Y, vel.X, vel.Y, inverseMass, radius, restitution} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrInvalidParticle
		}
	}
	if radius <= 0 || inverseMass < 0 || restitution < 0 {
		return ErrInvalidParticle
	}

	return nil
}

// MaxRadius returns the largest radius in s, or 0 for an empty store.
// Complexity: O(Len).
func MaxRadius(s Store) float64 {
	radius := s.Radius()
	var m float64
	for i := 0; i < radius.Len(); i++ {
		m = max(m, radius.At(i))
	}

	return m
}

var (
	_ Store = (*Interleaved)(nil)
	_ Store = (*Columnar)(nil)
)

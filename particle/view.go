// SPDX-License-Identifier: MIT

package particle

import "gonum.org/v1/gonum/spatial/r2"

// View is an index accessor over one particle field. It is a thin handle:
// copying it is cheap and every copy observes the same storage. The live
// length tracks the store, so a view taken before Add sees new particles.
//
// View[r2.Vec] satisfies spatial.Positions.
type View[V any] struct {
	size *int
	ptr  func(i int) *V
}

// VecView is a vector-valued field view (position, velocity).
type VecView = View[r2.Vec]

// ScalarView is a scalar field view (inverse mass, restitution, radius).
type ScalarView = View[float64]

// Len returns the store's live particle count.
func (v View[V]) Len() int { return *v.size }

// At returns the field value of particle i.
func (v View[V]) At(i int) V { return *v.ptr(i) }

// Set overwrites the field value of particle i.
func (v View[V]) Set(i int, val V) { *v.ptr(i) = val }

// Ptr returns a pointer into the backing storage for in-place updates.
// The pointer stays valid for the lifetime of the store.
func (v View[V]) Ptr(i int) *V { return v.ptr(i) }

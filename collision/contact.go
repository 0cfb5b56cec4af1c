// SPDX-License-Identifier: MIT

package collision

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Contact is one overlapping pair found by GenerateContacts. Normal points
// from A to B; Depth is the penetration (sum of radii minus distance).
// Contacts are transient and valid until the next GenerateContacts.
type Contact struct {
	A, B   int
	Depth  float64
	Normal r2.Vec
}

// Neighbour is a read-only copy of another particle, used when only one
// side of a pair may be written.
type Neighbour struct {
	Position    r2.Vec
	Velocity    r2.Vec
	InverseMass float64
	Radius      float64
	Restitution float64
}

// overlap returns the unit normal from pa to pb and the centre distance
// when the discs of combined radius rr intersect. Coincident centres have
// no normal and are rejected.
func overlap(pa, pb r2.Vec, rr float64) (n r2.Vec, d float64, ok bool) {
	dir := r2.Sub(pb, pa)
	dd := r2.Dot(dir, dir)
	if dd == 0 || dd > rr*rr {
		return r2.Vec{}, 0, false
	}
	d = math.Sqrt(dd)

	return r2.Scale(1/d, dir), d, true
}

// shares splits a positional correction by mobility: equal for two movable
// bodies, all of it to the movable one against a static body.
func shares(wa, wb float64) (sa, sb float64) {
	switch {
	case wa == 0:
		return 0, 1
	case wb == 0:
		return 1, 0
	default:
		return 0.5, 0.5
	}
}

// impulse returns the normal impulse magnitude that reflects the approach
// speed with restitution e, or 0 when the pair is separating.
// Complexity: O(1).
func impulse(va, vb, n r2.Vec, wa, wb, e float64) float64 {
	vs := r2.Dot(r2.Sub(vb, va), n)
	if vs >= 0 || wa+wb == 0 {
		return 0
	}

	return -(1 + e) * vs / (wa + wb)
}

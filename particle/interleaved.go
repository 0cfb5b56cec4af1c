// SPDX-License-Identifier: MIT

package particle

import "gonum.org/v1/gonum/spatial/r2"

// record is one particle of the interleaved layout.
type record struct {
	position    r2.Vec
	previous    r2.Vec
	velocity    r2.Vec
	inverseMass float64
	restitution float64
	radius      float64
}

// Interleaved stores particles as a slice of records.
type Interleaved struct {
	records []record
	n       int
}

// NewInterleaved allocates an interleaved store holding up to capacity particles.
func NewInterleaved(capacity int) (*Interleaved, error) {
	if capacity <= 0 {
		return nil, particleErrorf("NewInterleaved", ErrInvalidCapacity)
	}

	return &Interleaved{records: make([]record, capacity)}, nil
}

// Add implements Store.
func (s *Interleaved) Add(pos, vel r2.Vec, inverseMass, radius, restitution float64) (int, error) {
	if s.n == len(s.records) {
		return -1, particleErrorf("Interleaved.Add", ErrFull)
	}
	if err := validateParticle(pos, vel, inverseMass, radius, restitution); err != nil {
		return -1, particleErrorf("Interleaved.Add", err)
	}
	s.records[s.n] = record{
		position:    pos,
		previous:    pos,
		velocity:    vel,
		inverseMass: inverseMass,
		restitution: restitution,
		radius:      radius,
	}
	s.n++

	return s.n - 1, nil
}

// Len implements Store.
func (s *Interleaved) Len() int { return s.n }

// Cap implements Store.
func (s *Interleaved) Cap() int { return len(s.records) }

// Reset implements Store.
func (s *Interleaved) Reset() {
	clear(s.records[:s.n])
	s.n = 0
}

// Layout implements Store.
func (s *Interleaved) Layout() Layout { return LayoutInterleaved }

func (s *Interleaved) Position() VecView {
	return VecView{size: &s.n, ptr: func(i int) *r2.Vec { return &s.records[i].position }}
}

func (s *Interleaved) PreviousPosition() VecView {
	return VecView{size: &s.n, ptr: func(i int) *r2.Vec { return &s.records[i].previous }}
}

func (s *Interleaved) Velocity() VecView {
	return VecView{size: &s.n, ptr: func(i int) *r2.Vec { return &s.records[i].velocity }}
}

func (s *Interleaved) InverseMass() ScalarView {
	return ScalarView{size: &s.n, ptr: func(i int) *float64 { return &s.records[i].inverseMass }}
}

func (s *Interleaved) Restitution() ScalarView {
	return ScalarView{size: &s.n, ptr: func(i int) *float64 { return &s.records[i].restitution }}
}

func (s *Interleaved) Radius() ScalarView {
	return ScalarView{size: &s.n, ptr: func(i int) *float64 { return &s.records[i].radius }}
}

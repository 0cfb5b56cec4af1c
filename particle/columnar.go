// SPDX-License-Identifier: MIT

package particle

import "gonum.org/v1/gonum/spatial/r2"

// Columnar stores each field in its own slice.
type Columnar struct {
	position    []r2.Vec
	previous    []r2.Vec
	velocity    []r2.Vec
	inverseMass []float64
	restitution []float64
	radius      []float64
	n           int
}

// NewColumnar allocates a columnar store holding up to capacity particles.
func NewColumnar(capacity int) (*Columnar, error) {
	if capacity <= 0 {
		return nil, particleErrorf("NewColumnar", ErrInvalidCapacity)
	}

	return &Columnar{
		position:    make([]r2.Vec, capacity),
		previous:    make([]r2.Vec, capacity),
		velocity:    make([]r2.Vec, capacity),
		inverseMass: make([]float64, capacity),
		restitution: make([]float64, capacity),
		radius:      make([]float64, capacity),
	}, nil
}

// Add implements Store.
func (s *Columnar) Add(pos, vel r2.Vec, inverseMass, radius, restitution float64) (int, error) {
	if s.n == len(s.position) {
		return -1, particleErrorf("Columnar.Add", ErrFull)
	}
	if err := validateParticle(pos, vel, inverseMass, radius, restitution); err != nil {
		return -1, particleErrorf("Columnar.Add", err)
	}
	i := s.n
	s.position[i] = pos
	s.previous[i] = pos
	s.velocity[i] = vel
	s.inverseMass[i] = inverseMass
	s.restitution[i] = restitution
	s.radius[i] = radius
	s.n++

	return i, nil
}

// Len implements Store.
func (s *Columnar) Len() int { return s.n }

// Cap implements Store.
func (s *Columnar) Cap() int { return len(s.position) }

// Reset implements Store.
func (s *Columnar) Reset() {
	clear(s.position[:s.n])
	clear(s.previous[:s.n])
	clear(s.velocity[:s.n])
	clear(s.inverseMass[:s.n])
	clear(s.restitution[:s.n])
	clear(s.radius[:s.n])
	s.n = 0
}

// Layout implements Store.
func (s *Columnar) Layout() Layout { return LayoutColumnar }

func (s *Columnar) Position() VecView         { return vecView(&s.n, s.position) }
func (s *Columnar) PreviousPosition() VecView { return vecView(&s.n, s.previous) }
func (s *Columnar) Velocity() VecView         { return vecView(&s.n, s.velocity) }
func (s *Columnar) InverseMass() ScalarView   { return scalarView(&s.n, s.inverseMass) }
func (s *Columnar) Restitution() ScalarView   { return scalarView(&s.n, s.restitution) }
func (s *Columnar) Radius() ScalarView        { return scalarView(&s.n, s.radius) }

func vecView(n *int, data []r2.Vec) VecView {
	return VecView{size: n, ptr: func(i int) *r2.Vec { return &data[i] }}
}

func scalarView(n *int, data []float64) ScalarView {
	return ScalarView{size: n, ptr: func(i int) *float64 { return &data[i] }}
}

// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"io"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/solver"
	"github.com/katalvlaran/lvsim/spatial"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// Vec is a YAML-friendly 2D vector, rendered as a flow pair [x, y].
type Vec [2]float64

func vec(v r2.Vec) Vec { return Vec{v.X, v.Y} }

// R2 converts back to a gonum vector.
func (v Vec) R2() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

// Particle is one particle of a Snapshot.
type Particle struct {
	Position         Vec     `yaml:"position,flow"`
	PreviousPosition Vec     `yaml:"previous_position,flow"`
	Velocity         Vec     `yaml:"velocity,flow"`
	InverseMass      float64 `yaml:"inverse_mass"`
	Restitution      float64 `yaml:"restitution"`
	Radius           float64 `yaml:"radius"`
}

// Box is a YAML-friendly axis-aligned box.
type Box struct {
	Min Vec `yaml:"min,flow"`
	Max Vec `yaml:"max,flow"`
}

// Stats mirrors solver.Stats.
type Stats struct {
	Steps        int     `yaml:"steps"`
	Substeps     int     `yaml:"substeps"`
	Collisions   int     `yaml:"collisions"`
	BoundaryHits int     `yaml:"boundary_hits"`
	Min          int     `yaml:"min"`
	Max          int     `yaml:"max"`
	Average      float64 `yaml:"average"`
	GhostPairs   int     `yaml:"ghost_pairs,omitempty"`
	Owned        []int   `yaml:"owned,flow,omitempty"`
}

// Snapshot is the captured state of one frame.
type Snapshot struct {
	RunID     uuid.UUID  `yaml:"run_id"`
	Frame     uint64     `yaml:"frame"`
	Time      float64    `yaml:"time"`
	Layout    string     `yaml:"layout"`
	Capacity  int        `yaml:"capacity"`
	Bounds    *Box       `yaml:"bounds,omitempty"`
	Stats     *Stats     `yaml:"stats,omitempty"`
	Particles []Particle `yaml:"particles"`
}

// Option decorates a capture.
type Option func(*Snapshot)

// WithRunID tags the snapshot with a run; Capture draws a fresh id otherwise.
func WithRunID(id uuid.UUID) Option { return func(s *Snapshot) { s.RunID = id } }

// WithFrame sets the frame number and simulated time.
func WithFrame(frame uint64, t float64) Option {
	return func(s *Snapshot) {
		s.Frame = frame
		s.Time = t
	}
}

// WithBounds records the world box.
func WithBounds(b spatial.Bounds) Option {
	return func(s *Snapshot) { s.Bounds = &Box{Min: vec(b.Min), Max: vec(b.Max)} }
}

// WithStats records solver statistics.
func WithStats(st solver.Stats) Option {
	return func(s *Snapshot) {
		s.Stats = &Stats{
			Steps:        st.Steps,
			Substeps:     st.Substeps,
			Collisions:   st.Collisions,
			BoundaryHits: st.BoundaryHits,
			Min:          st.Min,
			Max:          st.Max,
			Average:      st.Average,
			GhostPairs:   st.GhostPairs,
			Owned:        append([]int(nil), st.Owned...),
		}
	}
}

// Capture copies every live particle of store.
// Complexity: O(Len).
func Capture(store particle.Store, opts ...Option) *Snapshot {
	s := &Snapshot{
		Layout:    store.Layout().String(),
		Capacity:  store.Cap(),
		Particles: make([]Particle, store.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.RunID == uuid.Nil {
		s.RunID = uuid.New()
	}

	pos, prev, vel := store.Position(), store.PreviousPosition(), store.Velocity()
	inv, rest, rad := store.InverseMass(), store.Restitution(), store.Radius()
	for i := range s.Particles {
		s.Particles[i] = Particle{
			Position:         vec(pos.At(i)),
			PreviousPosition: vec(prev.At(i)),
			Velocity:         vec(vel.At(i)),
			InverseMass:      inv.At(i),
			Restitution:      rest.At(i),
			Radius:           rad.At(i),
		}
	}

	return s
}

// Restore replaces the contents of dst with the snapshot's particles,
// including their previous positions.
func Restore(s *Snapshot, dst particle.Store) error {
	if s == nil {
		return snapshotErrorf("Restore", ErrNilSnapshot)
	}
	if len(s.Particles) > dst.Cap() {
		return snapshotErrorf("Restore", ErrCapacity)
	}
	dst.Reset()
	prev := dst.PreviousPosition()
	for _, p := range s.Particles {
		id, err := dst.Add(p.Position.R2(), p.Velocity.R2(), p.InverseMass, p.Radius, p.Restitution)
		if err != nil {
			return snapshotErrorf("Restore", err)
		}
		prev.Set(id, p.PreviousPosition.R2())
	}

	return nil
}

// Encode writes s as a YAML document.
func Encode(w io.Writer, s *Snapshot) error {
	if s == nil {
		return snapshotErrorf("Encode", ErrNilSnapshot)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return snapshotErrorf("Encode", err)
	}

	return enc.Close()
}

// Decode reads one YAML document.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, snapshotErrorf("Decode", err)
	}

	return &s, nil
}

// String renders s as YAML; encoding errors yield an empty string.
func (s *Snapshot) String() string {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return ""
	}

	return buf.String()
}

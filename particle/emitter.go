// SPDX-License-Identifier: MIT

package particle

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Emitter defaults.
const (
	// DefaultRate is the number of particles emitted per second.
	DefaultRate = 1.0
	// DefaultSpeed is the launch speed along the emission direction.
	DefaultSpeed = 1.0
	// DefaultSpread is the full cone angle, in radians, around the direction.
	DefaultSpread = 0.0
	// DefaultMaxEmitted bounds the lifetime total; 0 means unbounded.
	DefaultMaxEmitted = 0
	// DefaultSeed seeds the spread jitter.
	DefaultSeed uint64 = 0
)

// Prototype holds the per-particle attributes an emitter stamps on every
// particle it creates.
type Prototype struct {
	InverseMass float64
	Radius      float64
	Restitution float64
}

// DefaultPrototype is a unit-mass, unit-restitution particle of radius 0.1.
var DefaultPrototype = Prototype{InverseMass: 1, Radius: 0.1, Restitution: 1}

// EmitterOption configures a PointEmitter.
type EmitterOption func(*PointEmitter)

// WithRate sets particles per second. Panics on non-positive or non-finite rate.
func WithRate(rate float64) EmitterOption {
	if !(rate > 0) || math.IsInf(rate, 0) {
		panic("particle: WithRate requires a finite rate > 0")
	}

	return func(e *PointEmitter) { e.rate = rate }
}

// WithSpeed sets the launch speed. Panics on negative or non-finite speed.
func WithSpeed(speed float64) EmitterOption {
	if !(speed >= 0) || math.IsInf(speed, 0) {
		panic("particle: WithSpeed requires a finite speed >= 0")
	}

	return func(e *PointEmitter) { e.speed = speed }
}

// WithSpread sets the full cone angle in radians. Panics outside [0, 2π].
func WithSpread(radians float64) EmitterOption {
	if !(radians >= 0 && radians <= 2*math.Pi) {
		panic("particle: WithSpread requires an angle in [0, 2π]")
	}

	return func(e *PointEmitter) { e.spread = radians }
}

// WithMaxEmitted caps the lifetime total. 0 removes the cap.
func WithMaxEmitted(n int) EmitterOption {
	if n < 0 {
		panic("particle: WithMaxEmitted requires n >= 0")
	}

	return func(e *PointEmitter) { e.maxEmitted = n }
}

// WithSeed fixes the jitter sequence.
func WithSeed(seed uint64) EmitterOption {
	return func(e *PointEmitter) { e.seed = seed }
}

// WithPrototype sets the attributes of emitted particles.
func WithPrototype(p Prototype) EmitterOption {
	return func(e *PointEmitter) { e.proto = p }
}

// PointEmitter launches particles from a fixed origin at a steady rate.
// Each particle leaves along the direction rotated by a uniform angle in
// [−spread/2, spread/2]. Particles emitted in the same Update are staggered
// along their direction by one diameter so they never start coincident.
type PointEmitter struct {
	origin    r2.Vec
	direction r2.Vec

	rate       float64
	speed      float64
	spread     float64
	maxEmitted int
	seed       uint64
	proto      Prototype

	rng     *rand.Rand
	elapsed float64
	emitted int
	enabled bool
}

// NewPointEmitter builds an enabled emitter. A zero direction emits along +X.
func NewPointEmitter(origin, direction r2.Vec, opts ...EmitterOption) *PointEmitter {
	e := &PointEmitter{
		origin:     origin,
		direction:  r2.Unit(direction),
		rate:       DefaultRate,
		speed:      DefaultSpeed,
		spread:     DefaultSpread,
		maxEmitted: DefaultMaxEmitted,
		seed:       DefaultSeed,
		proto:      DefaultPrototype,
		enabled:    true,
	}
	if r2.Norm(direction) == 0 {
		e.direction = r2.Vec{X: 1}
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed))

	return e
}

// Enabled reports whether Update emits.
func (e *PointEmitter) Enabled() bool { return e.enabled }

// Enable resumes emission.
func (e *PointEmitter) Enable() { e.enabled = true }

// Disable pauses emission; elapsed time stops advancing.
func (e *PointEmitter) Disable() { e.enabled = false }

// Emitted returns the lifetime total.
func (e *PointEmitter) Emitted() int { return e.emitted }

// Reset rewinds the clock and counters, re-seeds the jitter and re-enables.
func (e *PointEmitter) Reset() {
	e.elapsed = 0
	e.emitted = 0
	e.enabled = true
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed))
}

// Update advances the emitter clock by dt and adds the particles due by the
// end of the step: ceil((elapsed+dt)·rate) minus those already emitted,
// capped by the lifetime maximum. When dst fills up the emitter disables
// itself and Update returns the particles added so far without error.
func (e *PointEmitter) Update(dt float64, dst Store) (int, error) {
	if !e.enabled {
		return 0, nil
	}
	due := int(math.Ceil((e.elapsed + dt) * e.rate))
	if e.maxEmitted > 0 {
		due = min(due, e.maxEmitted)
	}
	e.elapsed += dt

	added := 0
	for k := 0; k < due-e.emitted; k++ {
		dir := e.jitter()
		pos := r2.Add(e.origin, r2.Scale(float64(k)*2*e.proto.Radius, dir))
		if _, err := dst.Add(pos, r2.Scale(e.speed, dir), e.proto.InverseMass, e.proto.Radius, e.proto.Restitution); err != nil {
			e.emitted += added
			if errors.Is(err, ErrFull) {
				e.enabled = false

				return added, nil
			}

			return added, particleErrorf("PointEmitter.Update", err)
		}
		added++
	}
	e.emitted += added

	return added, nil
}

// jitter returns the direction rotated by a uniform angle within the spread.
func (e *PointEmitter) jitter() r2.Vec {
	if e.spread == 0 {
		return e.direction
	}
	angle := (e.rng.Float64() - 0.5) * e.spread

	return r2.Rotate(e.direction, angle, r2.Vec{})
}

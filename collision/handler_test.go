// SPDX-License-Identifier: MIT

package collision_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsim/collision"
	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var world = spatial.Bounds{Min: r2.Vec{X: -1, Y: -1}, Max: r2.Vec{X: 1, Y: 1}}

type body struct {
	pos, vel            r2.Vec
	inv, radius, restit float64
}

func newStore(t *testing.T, layout particle.Layout, bodies ...body) particle.Store {
	t.Helper()
	s, err := particle.New(layout, max(len(bodies), 1))
	require.NoError(t, err)
	for _, b := range bodies {
		_, err := s.Add(b.pos, b.vel, b.inv, b.radius, b.restit)
		require.NoError(t, err)
	}

	return s
}

func headOn() []body {
	return []body{
		{pos: r2.Vec{}, vel: r2.Vec{X: 0.2}, inv: 1, radius: 0.1, restit: 1},
		{pos: r2.Vec{X: 0.15}, vel: r2.Vec{X: -0.2}, inv: 1, radius: 0.1, restit: 1},
	}
}

func TestResolve_HeadOnElastic(t *testing.T) {
	for _, l := range []particle.Layout{particle.LayoutInterleaved, particle.LayoutColumnar} {
		t.Run(l.String(), func(t *testing.T) {
			s := newStore(t, l, headOn()...)
			h, err := collision.NewHandler(s, world, 0.1)
			require.NoError(t, err)

			require.GreaterOrEqual(t, h.Resolve(), 1)

			pa, pb := s.Position().At(0), s.Position().At(1)
			require.InDelta(t, -0.025, pa.X, 1e-9)
			require.InDelta(t, 0.175, pb.X, 1e-9)
			require.GreaterOrEqual(t, r2.Norm(r2.Sub(pb, pa)), 0.2-1e-9)

			va, vb := s.Velocity().At(0), s.Velocity().At(1)
			require.InDelta(t, -0.2, va.X, 1e-12)
			require.InDelta(t, 0.2, vb.X, 1e-12)
			require.Zero(t, va.Y)
			require.Zero(t, vb.Y)
		})
	}
}

func TestResolvePair_ConservesMomentum(t *testing.T) {
	tests := []struct {
		name   string
		wa, wb float64
		e      float64
		va, vb r2.Vec
		pb     r2.Vec
	}{
		{"unequal masses", 1, 0.5, 1, r2.Vec{X: 1}, r2.Vec{X: -0.5}, r2.Vec{X: 0.15}},
		{"inelastic", 2, 1, 0, r2.Vec{X: 0.3, Y: 0.1}, r2.Vec{X: -0.1}, r2.Vec{X: 0.1, Y: 0.1}},
		{"half restitution", 0.25, 4, 0.5, r2.Vec{Y: 0.4}, r2.Vec{X: 0.2, Y: -0.3}, r2.Vec{X: 0.05, Y: 0.12}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, particle.LayoutColumnar,
				body{pos: r2.Vec{}, vel: tc.va, inv: tc.wa, radius: 0.1, restit: tc.e},
				body{pos: tc.pb, vel: tc.vb, inv: tc.wb, radius: 0.1, restit: tc.e},
			)
			h, err := collision.NewHandler(s, world, 0.1)
			require.NoError(t, err)

			momentum := func() r2.Vec {
				return r2.Add(r2.Scale(1/tc.wa, s.Velocity().At(0)), r2.Scale(1/tc.wb, s.Velocity().At(1)))
			}
			before := momentum()
			require.True(t, h.ResolvePair(0, 1))
			after := momentum()
			require.InDelta(t, before.X, after.X, 1e-12)
			require.InDelta(t, before.Y, after.Y, 1e-12)

			// separating after an approaching impact
			n := r2.Unit(r2.Sub(s.Position().At(1), s.Position().At(0)))
			require.GreaterOrEqual(t, r2.Dot(r2.Sub(s.Velocity().At(1), s.Velocity().At(0)), n), -1e-12)
		})
	}
}

func TestResolvePair_Skips(t *testing.T) {
	tests := []struct {
		name string
		b    []body
	}{
		{"coincident", []body{
			{pos: r2.Vec{X: 0.3}, inv: 1, radius: 0.1, restit: 1},
			{pos: r2.Vec{X: 0.3}, inv: 1, radius: 0.1, restit: 1},
		}},
		{"apart", []body{
			{pos: r2.Vec{}, inv: 1, radius: 0.1, restit: 1},
			{pos: r2.Vec{X: 0.21}, inv: 1, radius: 0.1, restit: 1},
		}},
		{"both static", []body{
			{pos: r2.Vec{}, inv: 0, radius: 0.1, restit: 1},
			{pos: r2.Vec{X: 0.1}, inv: 0, radius: 0.1, restit: 1},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, particle.LayoutInterleaved, tc.b...)
			h, err := collision.NewHandler(s, world, 0.1)
			require.NoError(t, err)
			require.False(t, h.ResolvePair(0, 1))
			require.Equal(t, tc.b[0].pos, s.Position().At(0))
			require.Equal(t, tc.b[1].pos, s.Position().At(1))
		})
	}
}

func TestResolvePair_StaticBody(t *testing.T) {
	s := newStore(t, particle.LayoutColumnar,
		body{pos: r2.Vec{}, vel: r2.Vec{}, inv: 0, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.15}, vel: r2.Vec{X: -1}, inv: 1, radius: 0.1, restit: 1},
	)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)
	require.True(t, h.ResolvePair(0, 1))

	require.Equal(t, r2.Vec{}, s.Position().At(0), "static body never moves")
	require.Equal(t, r2.Vec{}, s.Velocity().At(0))
	require.InDelta(t, 0.2, s.Position().At(1).X, 1e-12)
	require.InDelta(t, 1, s.Velocity().At(1).X, 1e-12)
}

func TestResolvePair_Positional(t *testing.T) {
	s := newStore(t, particle.LayoutInterleaved,
		body{pos: r2.Vec{}, vel: r2.Vec{X: 0.2}, inv: 1, radius: 0.1, restit: 0.5},
		body{pos: r2.Vec{X: 0.15}, vel: r2.Vec{X: -0.2}, inv: 1, radius: 0.1, restit: 0.5},
	)
	h, err := collision.NewHandler(s, world, 0.1, collision.WithPositional())
	require.NoError(t, err)
	require.True(t, h.Positional())
	require.True(t, h.ResolvePair(0, 1))

	// depth 0.05 scaled by restitution 0.5, split equally
	require.InDelta(t, -0.0125, s.Position().At(0).X, 1e-12)
	require.InDelta(t, 0.1625, s.Position().At(1).X, 1e-12)
	require.Equal(t, r2.Vec{X: 0.2}, s.Velocity().At(0))
	require.Equal(t, r2.Vec{X: -0.2}, s.Velocity().At(1))
}

func TestResolveAgainst_WritesOneSide(t *testing.T) {
	s := newStore(t, particle.LayoutColumnar,
		body{pos: r2.Vec{}, vel: r2.Vec{X: 0.2}, inv: 1, radius: 0.1, restit: 1},
	)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)

	nb := collision.Neighbour{Position: r2.Vec{X: 0.15}, Velocity: r2.Vec{X: -0.2}, InverseMass: 1, Radius: 0.1, Restitution: 1}
	require.True(t, h.ResolveAgainst(0, nb))
	require.InDelta(t, -0.025, s.Position().At(0).X, 1e-12)
	require.InDelta(t, -0.2, s.Velocity().At(0).X, 1e-12)

	nb.Position = r2.Vec{X: 0.5}
	require.False(t, h.ResolveAgainst(0, nb))
}

func TestBoundsCheck(t *testing.T) {
	s := newStore(t, particle.LayoutInterleaved,
		body{pos: r2.Vec{X: 1.2, Y: -0.95}, vel: r2.Vec{X: 1, Y: -2}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.2, Y: 0.2}, vel: r2.Vec{X: 1, Y: 1}, inv: 1, radius: 0.1, restit: 1},
	)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)

	require.True(t, h.BoundsCheck(0))
	require.InDelta(t, 0.9, s.Position().At(0).X, 1e-12)
	require.InDelta(t, -0.9, s.Position().At(0).Y, 1e-12)
	require.Equal(t, r2.Vec{X: -1, Y: 2}, s.Velocity().At(0))

	require.False(t, h.BoundsCheck(1))
	require.Equal(t, r2.Vec{X: 1, Y: 1}, s.Velocity().At(1))
}

func TestBoundsCheck_PositionalReflectsHistory(t *testing.T) {
	s := newStore(t, particle.LayoutColumnar,
		body{pos: r2.Vec{X: 0.8}, inv: 1, radius: 0.1, restit: 0.5},
	)
	h, err := collision.NewHandler(s, world, 0.1, collision.WithPositional())
	require.NoError(t, err)

	// implicit velocity +0.2 per step carries the particle through the wall
	s.Position().Set(0, r2.Vec{X: 1.0})
	require.True(t, h.BoundsCheck(0))
	p, prev := s.Position().At(0), s.PreviousPosition().At(0)
	require.InDelta(t, 0.9, p.X, 1e-12)
	require.InDelta(t, -0.1, p.X-prev.X, 1e-12, "velocity reflected and halved")
}

func TestContacts_GenerateAndResolve(t *testing.T) {
	s := newStore(t, particle.LayoutColumnar,
		body{pos: r2.Vec{}, vel: r2.Vec{X: 0.2}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.15}, vel: r2.Vec{X: -0.2}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.15, Y: 0.15}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: -0.7, Y: 0.7}, inv: 1, radius: 0.1, restit: 1},
	)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)

	cs := h.GenerateContacts()
	require.Len(t, cs, 2)
	pairs := make([][2]int, 0, len(cs))
	for _, c := range cs {
		require.Less(t, c.A, c.B)
		require.InDelta(t, 1, r2.Norm(c.Normal), 1e-12)
		require.Greater(t, c.Depth, 0.0)
		pairs = append(pairs, [2]int{c.A, c.B})
	}
	require.ElementsMatch(t, [][2]int{{0, 1}, {1, 2}}, pairs)
	require.InDelta(t, 0.05, cs[0].Depth, 1e-12)

	require.Equal(t, 2, h.ResolveContacts(cs))
	require.Equal(t, 2, h.Stats().Collisions)
}

func TestResolveContacts_ClampsAfterEachContact(t *testing.T) {
	s := newStore(t, particle.LayoutInterleaved,
		body{pos: r2.Vec{X: 0.85}, vel: r2.Vec{X: 1}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.8}, vel: r2.Vec{X: 1}, inv: 1, radius: 0.1, restit: 1},
		body{pos: r2.Vec{X: 0.5}, inv: 1, radius: 0.1, restit: 1},
	)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)

	// the first contact pushes 0 into the wall, which reverses it; the
	// second contact then sees 0 approaching 2
	cs := []collision.Contact{
		{A: 1, B: 0, Depth: 0.2, Normal: r2.Vec{X: 1}},
		{A: 0, B: 2, Depth: 0.01, Normal: r2.Vec{X: -1}},
	}
	require.Equal(t, 2, h.ResolveContacts(cs))

	require.InDelta(t, 0.9, s.Position().At(0).X, 1e-12)
	require.InDelta(t, 0.7, s.Position().At(1).X, 1e-12)
	require.InDelta(t, 0.495, s.Position().At(2).X, 1e-12)
	require.InDelta(t, 0, s.Velocity().At(0).X, 1e-12)
	require.InDelta(t, 1, s.Velocity().At(1).X, 1e-12)
	require.InDelta(t, -1, s.Velocity().At(2).X, 1e-12)
}

func TestResolve_Stats(t *testing.T) {
	s := newStore(t, particle.LayoutInterleaved, append(headOn(),
		body{pos: r2.Vec{X: 2}, inv: 1, radius: 0.1, restit: 1})...)
	h, err := collision.NewHandler(s, world, 0.1)
	require.NoError(t, err)

	h.Resolve()
	st := h.Stats()
	require.Equal(t, 1, st.BoundaryHits, "the third particle starts outside the box")
	require.GreaterOrEqual(t, st.Collisions, 1)
	require.Equal(t, 0, st.Min)
	require.Equal(t, 1, st.Max)
}

func TestRecorder_RollingWindow(t *testing.T) {
	var r collision.Recorder
	for i := 0; i < 150; i++ {
		r.Observe(i)
	}
	require.InDelta(t, 99.5, r.Stats().Average, 1e-12)
	require.Equal(t, 149*150/2, r.Stats().Collisions)

	r.BeginPass()
	for _, v := range []int{3, 1, 7} {
		r.Observe(v)
	}
	require.Equal(t, 1, r.Stats().Min)
	require.Equal(t, 7, r.Stats().Max)

	r.Reset()
	require.Equal(t, collision.Stats{}, r.Stats())
}

func TestNewHandler_Errors(t *testing.T) {
	s := newStore(t, particle.LayoutInterleaved)
	_, err := collision.NewHandler(nil, world, 0.1)
	require.ErrorIs(t, err, collision.ErrNilStore)
	_, err = collision.NewHandler(s, world, 0)
	require.ErrorIs(t, err, collision.ErrInvalidRadius)
	_, err = collision.NewHandler(s, world, math.Inf(1))
	require.ErrorIs(t, err, collision.ErrInvalidRadius)
	_, err = collision.NewHandler(s, spatial.Bounds{}, 0.1)
	require.ErrorIs(t, err, spatial.ErrInvalidBounds)
	require.Panics(t, func() { collision.WithGridSpacing(0) })

	h, err := collision.NewHandler(s, world, 0.1, collision.WithUnboundedGrid(), collision.WithGridSpacing(0.5))
	require.NoError(t, err)
	require.False(t, h.Grid().Bounded())
	require.Equal(t, 0.5, h.Grid().Spacing())
	require.Equal(t, 0.2, h.QueryRadius())
}

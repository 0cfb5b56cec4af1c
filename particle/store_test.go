// SPDX-License-Identifier: MIT

package particle_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsim/particle"
	"github.com/katalvlaran/lvsim/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ spatial.Positions = particle.VecView{}

// layouts runs fn once per store layout.
func layouts(t *testing.T, capacity int, fn func(t *testing.T, s particle.Store)) {
	t.Helper()
	for _, l := range []particle.Layout{particle.LayoutInterleaved, particle.LayoutColumnar} {
		t.Run(l.String(), func(t *testing.T) {
			s, err := particle.New(l, capacity)
			require.NoError(t, err)
			require.Equal(t, l, s.Layout())
			fn(t, s)
		})
	}
}

func TestStore_AddAndViews(t *testing.T) {
	layouts(t, 4, func(t *testing.T, s particle.Store) {
		pos := s.Position()
		require.Equal(t, 0, pos.Len())

		id, err := s.Add(r2.Vec{X: 1, Y: 2}, r2.Vec{X: 3, Y: 4}, 0.5, 0.1, 0.8)
		require.NoError(t, err)
		require.Equal(t, 0, id)
		id, err = s.Add(r2.Vec{X: -1, Y: -2}, r2.Vec{}, 0, 0.3, 1)
		require.NoError(t, err)
		require.Equal(t, 1, id)

		require.Equal(t, 2, s.Len())
		require.Equal(t, 4, s.Cap())
		require.Equal(t, 2, pos.Len(), "views track the live count")

		require.Equal(t, r2.Vec{X: 1, Y: 2}, pos.At(0))
		require.Equal(t, r2.Vec{X: 1, Y: 2}, s.PreviousPosition().At(0))
		require.Equal(t, r2.Vec{X: 3, Y: 4}, s.Velocity().At(0))
		require.Equal(t, 0.5, s.InverseMass().At(0))
		require.Equal(t, 0.1, s.Radius().At(0))
		require.Equal(t, 0.8, s.Restitution().At(0))
		require.Equal(t, 0.0, s.InverseMass().At(1))
		require.Equal(t, 0.3, particle.MaxRadius(s))
	})
}

func TestStore_ViewsShareStorage(t *testing.T) {
	layouts(t, 2, func(t *testing.T, s particle.Store) {
		_, err := s.Add(r2.Vec{}, r2.Vec{}, 1, 0.1, 1)
		require.NoError(t, err)

		s.Position().Set(0, r2.Vec{X: 5, Y: 6})
		require.Equal(t, r2.Vec{X: 5, Y: 6}, s.Position().At(0))

		p := s.Velocity().Ptr(0)
		p.X = 7
		require.Equal(t, 7.0, s.Velocity().At(0).X)

		// field views never alias each other
		require.Equal(t, r2.Vec{}, s.PreviousPosition().At(0))
	})
}

func TestStore_FullAndInvalid(t *testing.T) {
	layouts(t, 1, func(t *testing.T, s particle.Store) {
		_, err := s.Add(r2.Vec{}, r2.Vec{}, 1, 0, 1)
		require.ErrorIs(t, err, particle.ErrInvalidParticle)
		_, err = s.Add(r2.Vec{X: math.NaN()}, r2.Vec{}, 1, 0.1, 1)
		require.ErrorIs(t, err, particle.ErrInvalidParticle)
		_, err = s.Add(r2.Vec{}, r2.Vec{}, -1, 0.1, 1)
		require.ErrorIs(t, err, particle.ErrInvalidParticle)
		require.Equal(t, 0, s.Len())

		_, err = s.Add(r2.Vec{}, r2.Vec{}, 1, 0.1, 1)
		require.NoError(t, err)
		id, err := s.Add(r2.Vec{}, r2.Vec{}, 1, 0.1, 1)
		require.ErrorIs(t, err, particle.ErrFull)
		require.Equal(t, -1, id)
		require.Equal(t, 1, s.Len())

		s.Reset()
		require.Equal(t, 0, s.Len())
		require.Equal(t, 1, s.Cap())
		_, err = s.Add(r2.Vec{X: 1}, r2.Vec{}, 1, 0.1, 1)
		require.NoError(t, err)
	})
}

func TestNew_Errors(t *testing.T) {
	_, err := particle.NewInterleaved(0)
	require.ErrorIs(t, err, particle.ErrInvalidCapacity)
	_, err = particle.NewColumnar(-1)
	require.ErrorIs(t, err, particle.ErrInvalidCapacity)
	_, err = particle.New(particle.Layout(9), 4)
	require.ErrorIs(t, err, particle.ErrUnknownLayout)
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want particle.Layout
	}{
		{"interleaved", particle.LayoutInterleaved},
		{"aos", particle.LayoutInterleaved},
		{"columnar", particle.LayoutColumnar},
		{"soa", particle.LayoutColumnar},
	}
	for _, tc := range tests {
		got, err := particle.ParseLayout(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}
	_, err := particle.ParseLayout("tiled")
	require.ErrorIs(t, err, particle.ErrUnknownLayout)
}

func TestLayouts_Identical(t *testing.T) {
	a, err := particle.NewInterleaved(64)
	require.NoError(t, err)
	b, err := particle.NewColumnar(64)
	require.NoError(t, err)

	for i := 0; i < 64; i++ {
		f := float64(i)
		for _, s := range []particle.Store{a, b} {
			_, err := s.Add(r2.Vec{X: f, Y: -f}, r2.Vec{X: f / 2}, 1/(f+1), 0.1+f/100, f/64)
			require.NoError(t, err)
		}
	}
	for i := 0; i < 64; i++ {
		require.Equal(t, a.Position().At(i), b.Position().At(i))
		require.Equal(t, a.PreviousPosition().At(i), b.PreviousPosition().At(i))
		require.Equal(t, a.Velocity().At(i), b.Velocity().At(i))
		require.Equal(t, a.InverseMass().At(i), b.InverseMass().At(i))
		require.Equal(t, a.Radius().At(i), b.Radius().At(i))
		require.Equal(t, a.Restitution().At(i), b.Restitution().At(i))
	}
}

func TestPositionView_IndexesIntoGrid(t *testing.T) {
	s, err := particle.NewColumnar(3)
	require.NoError(t, err)
	for _, p := range []r2.Vec{{X: 0.5, Y: 0.5}, {X: 0.6, Y: 0.4}, {X: 9, Y: 9}} {
		_, err := s.Add(p, r2.Vec{}, 1, 0.1, 1)
		require.NoError(t, err)
	}
	g, err := spatial.NewUnbounded(1, s.Cap())
	require.NoError(t, err)
	g.Initialize(s.Position())
	require.ElementsMatch(t, []int{0, 1}, g.Query(r2.Vec{X: 0.5, Y: 0.5}, 0.2))
}

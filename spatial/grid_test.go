// SPDX-License-Identifier: MIT

package spatial_test

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	"github.com/katalvlaran/lvsim/spatial"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewUnbounded_Sizes(t *testing.T) {
	g, err := spatial.NewUnbounded(1, 20)
	require.NoError(t, err)
	require.Equal(t, 40, g.TableSize())
	require.Len(t, g.Counts(), 41)
	require.Len(t, g.Entries(), 20)
	require.Equal(t, 20, g.Capacity())
	require.False(t, g.Bounded())
}

func TestNew_InvalidParameters(t *testing.T) {
	_, err := spatial.NewUnbounded(0, 10)
	require.ErrorIs(t, err, spatial.ErrInvalidSpacing)
	_, err = spatial.NewUnbounded(math.NaN(), 10)
	require.ErrorIs(t, err, spatial.ErrInvalidSpacing)
	_, err = spatial.NewUnbounded(1, 0)
	require.ErrorIs(t, err, spatial.ErrInvalidCapacity)

	_, err = spatial.NewBounded(1, spatial.Bounds{Min: r2.Vec{X: 1, Y: 0}, Max: r2.Vec{X: 0, Y: 1}}, 10)
	require.ErrorIs(t, err, spatial.ErrInvalidBounds)
	_, err = spatial.NewBounds(r2.Vec{}, r2.Vec{X: math.Inf(1), Y: 1})
	require.ErrorIs(t, err, spatial.ErrInvalidBounds)
}

func TestQuery_ClustersBothSigns(t *testing.T) {
	for _, sign := range []float64{1, -1} {
		pts := spatial.Points{
			{X: sign * 2.1, Y: sign * 2.2},
			{X: sign * 2.3, Y: sign * 2.4},
			{X: sign * 2.4, Y: sign * 2.8},
			{X: sign * 8, Y: sign * 8},
			{X: sign * -5, Y: sign * 7},
		}
		g, err := spatial.NewUnbounded(1, 20)
		require.NoError(t, err)
		g.Initialize(pts)
		require.Equal(t, 5, g.Len())

		// cells [1,3]² (or [-3,-1]²) hold exactly the first three points
		got := g.Query(r2.Vec{X: sign * 2, Y: sign * 2}, 1)
		require.ElementsMatch(t, []int{0, 1, 2}, got)
	}
}

func TestQuery_CellGranularity(t *testing.T) {
	pts := spatial.Points{{X: 1.5, Y: 2.5}, {X: 2.5, Y: 0}, {X: 3.5, Y: 2.5}, {X: 2.3, Y: 0.5}, {X: 1.8, Y: 2.3}, {X: 2.5, Y: 2.5}}
	g, err := spatial.NewUnbounded(1, 20)
	require.NoError(t, err)
	g.Initialize(pts)

	require.ElementsMatch(t, []int{0, 2, 4, 5}, g.Query(r2.Vec{X: 2, Y: 2}, 1))
}

func TestQuery_DuplicatesAndSelf(t *testing.T) {
	pts := spatial.Points{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}}
	g, err := spatial.NewUnbounded(1, 4)
	require.NoError(t, err)
	g.Initialize(pts)
	require.ElementsMatch(t, []int{0, 1}, g.Query(r2.Vec{X: 0.5, Y: 0.5}, 0.1))
}

func TestInitialize_TruncatesToCapacity(t *testing.T) {
	pts := make(spatial.Points, 10)
	g, err := spatial.NewUnbounded(1, 4)
	require.NoError(t, err)
	g.Initialize(pts)
	require.Equal(t, 4, g.Len())
	require.Len(t, g.Query(r2.Vec{}, 0.5), 4)
}

func TestCountingSort_Layout(t *testing.T) {
	pts := randomPoints(200, 25, 1)
	g, err := spatial.NewUnbounded(2, 256)
	require.NoError(t, err)
	g.Initialize(pts)

	counts := g.Counts()
	require.Equal(t, int32(200), counts[g.TableSize()])
	for h := 0; h < g.TableSize(); h++ {
		require.LessOrEqual(t, counts[h], counts[h+1])
	}
	ids := append([]int32(nil), g.Entries()[:200]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		require.Equal(t, int32(i), id, "every id indexed exactly once")
	}
}

// bruteForce returns ids whose cell lies in the query's cell range.
func bruteForce(g *spatial.Grid, pts spatial.Points, pos r2.Vec, radius float64) []int {
	lo := g.CellOf(r2.Vec{X: pos.X - radius, Y: pos.Y - radius})
	hi := g.CellOf(r2.Vec{X: pos.X + radius, Y: pos.Y + radius})
	var out []int
	for i, p := range pts {
		c := g.CellOf(p)
		if c.X >= lo.X && c.X <= hi.X && c.Y >= lo.Y && c.Y <= hi.Y {
			out = append(out, i)
		}
	}

	return out
}

func randomPoints(n int, extent float64, seed uint64) spatial.Points {
	rng := rand.New(rand.NewPCG(seed, seed))
	pts := make(spatial.Points, n)
	for i := range pts {
		pts[i] = r2.Vec{X: (rng.Float64()*2 - 1) * extent, Y: (rng.Float64()*2 - 1) * extent}
	}

	return pts
}

func TestQuery_MatchesBruteForce(t *testing.T) {
	pts := randomPoints(500, 40, 7)
	b := spatial.Bounds{Min: r2.Vec{X: -40, Y: -40}, Max: r2.Vec{X: 40, Y: 40}}

	unbounded, err := spatial.NewUnbounded(1.5, 500)
	require.NoError(t, err)
	bounded, err := spatial.NewBounded(1.5, b, 500)
	require.NoError(t, err)
	require.True(t, bounded.Bounded())

	for _, g := range []*spatial.Grid{unbounded, bounded} {
		g.Initialize(pts)
		rng := rand.New(rand.NewPCG(3, 3))
		for q := 0; q < 200; q++ {
			pos := r2.Vec{X: (rng.Float64()*2 - 1) * 40, Y: (rng.Float64()*2 - 1) * 40}
			radius := rng.Float64() * 4
			got := append([]int(nil), g.Query(pos, radius)...)
			require.ElementsMatch(t, bruteForce(g, pts, pos, radius), got)

			// no false negatives against the exact square
			for i, p := range pts {
				if math.Abs(p.X-pos.X) <= radius && math.Abs(p.Y-pos.Y) <= radius {
					require.Contains(t, got, i)
				}
			}
		}
	}
}

func TestBounded_OutsidePointsClampToEdges(t *testing.T) {
	b := spatial.Bounds{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 4, Y: 4}}
	g, err := spatial.NewBounded(1, b, 8)
	require.NoError(t, err)
	g.Initialize(spatial.Points{{X: -3, Y: 2.5}, {X: 0.5, Y: 2.5}, {X: 9, Y: 9}})

	require.ElementsMatch(t, []int{0, 1}, g.Query(r2.Vec{X: 0.5, Y: 2.5}, 0.1))
	require.ElementsMatch(t, []int{2}, g.Query(r2.Vec{X: 4, Y: 4}, 0.1))
}

func TestCursor_ConcurrentQueries(t *testing.T) {
	pts := randomPoints(1000, 30, 11)
	g, err := spatial.NewUnbounded(1, 1000)
	require.NoError(t, err)
	g.Initialize(pts)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			cur := g.Cursor()
			for i := w; i < len(pts); i += workers {
				got := cur.Query(pts[i], 1)
				want := bruteForce(g, pts, pts[i], 1)
				if len(got) != len(want) {
					errs <- "length mismatch"

					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestBounds_Helpers(t *testing.T) {
	b, err := spatial.NewBounds(r2.Vec{X: -1, Y: -2}, r2.Vec{X: 3, Y: 2})
	require.NoError(t, err)
	require.Equal(t, 4.0, b.Width())
	require.Equal(t, 4.0, b.Height())
	require.True(t, b.Contains(r2.Vec{X: 3, Y: -2}))
	require.False(t, b.Contains(r2.Vec{X: 3.1, Y: 0}))
	require.Equal(t, r2.Vec{X: 3, Y: -2}, b.Clamp(r2.Vec{X: 7, Y: -9}))

	in := b.Inset(0.5)
	require.Equal(t, r2.Vec{X: -0.5, Y: -1.5}, in.Min)
	require.Equal(t, r2.Vec{X: 2.5, Y: 1.5}, in.Max)
}

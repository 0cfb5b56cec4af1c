// SPDX-License-Identifier: MIT

package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Hash multipliers of the unbounded cell hash.
const (
	hashPrimeX int32 = 92837111
	hashPrimeY int32 = 689287499
)

// Grid is a fixed-capacity uniform hash grid rebuilt from scratch by
// Initialize. Cells map to 2·maxObjects buckets laid out by counting sort:
// bucket h holds entries[counts[h]:counts[h+1]].
//
// A Grid is valid until the next Initialize. Query reuses one internal
// buffer; concurrent readers each take their own Cursor.
type Grid struct {
	spacing float64
	table   int

	counts  []int32 // len table+1, bucket starts after Initialize
	entries []int32 // len maxObjects, ids grouped by bucket
	cells   []Cell  // cell of entries[k], cached at Initialize
	n       int     // ids indexed by the last Initialize

	bounded bool
	lo, hi  Cell // inclusive cell box (bounded only)
	rows    int  // hi.Y − lo.Y + 1

	cursor Cursor
}

// NewUnbounded creates a grid over the whole plane. Cell coordinates are
// hashed: |cx·92837111 XOR cy·689287499| mod 2·maxObjects (int32 wraparound).
func NewUnbounded(spacing float64, maxObjects int) (*Grid, error) {
	if err := validate(spacing, maxObjects); err != nil {
		return nil, fmt.Errorf("NewUnbounded: %w", err)
	}

	return newGrid(spacing, maxObjects), nil
}

// NewBounded creates a grid over b. Cells are indexed linearly,
// (cx−cx0)·rows + (cy−cy0), with coordinates clamped into the box, so
// positions outside b fall into edge cells.
func NewBounded(spacing float64, b Bounds, maxObjects int) (*Grid, error) {
	if err := validate(spacing, maxObjects); err != nil {
		return nil, fmt.Errorf("NewBounded: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("NewBounded: %w", err)
	}
	g := newGrid(spacing, maxObjects)
	g.bounded = true
	g.lo = g.rawCell(b.Min)
	g.hi = g.rawCell(b.Max)
	g.rows = g.hi.Y - g.lo.Y + 1

	return g, nil
}

func validate(spacing float64, maxObjects int) error {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return ErrInvalidSpacing
	}
	if maxObjects <= 0 {
		return ErrInvalidCapacity
	}

	return nil
}

func newGrid(spacing float64, maxObjects int) *Grid {
	g := &Grid{
		spacing: spacing,
		table:   2 * maxObjects,
		counts:  make([]int32, 2*maxObjects+1),
		entries: make([]int32, maxObjects),
		cells:   make([]Cell, maxObjects),
	}
	g.cursor = Cursor{g: g, buf: make([]int, 0, maxObjects)}

	return g
}

// Spacing returns the cell edge length.
func (g *Grid) Spacing() float64 { return g.spacing }

// TableSize returns the bucket count, 2·maxObjects.
func (g *Grid) TableSize() int { return g.table }

// Capacity returns maxObjects.
func (g *Grid) Capacity() int { return len(g.entries) }

// Len returns the number of ids indexed by the last Initialize.
func (g *Grid) Len() int { return g.n }

// Bounded reports whether the grid was built with NewBounded.
func (g *Grid) Bounded() bool { return g.bounded }

// Counts returns a copy of the bucket offset table (len TableSize()+1).
func (g *Grid) Counts() []int32 { return append([]int32(nil), g.counts...) }

// Entries returns a copy of the bucketed id array (len Capacity()).
func (g *Grid) Entries() []int32 { return append([]int32(nil), g.entries...) }

// rawCell floors pos/spacing.
func (g *Grid) rawCell(pos r2.Vec) Cell {
	return Cell{X: int(math.Floor(pos.X / g.spacing)), Y: int(math.Floor(pos.Y / g.spacing))}
}

// clampCell moves c into the bounded cell box; identity when unbounded.
func (g *Grid) clampCell(c Cell) Cell {
	if !g.bounded {
		return c
	}

	return Cell{X: min(max(c.X, g.lo.X), g.hi.X), Y: min(max(c.Y, g.lo.Y), g.hi.Y)}
}

// CellOf returns the (clamped, for bounded grids) cell of pos.
func (g *Grid) CellOf(pos r2.Vec) Cell {
	return g.clampCell(g.rawCell(pos))
}

// Bucket returns the table slot of a cell. Bounded grids expect a clamped cell.
func (g *Grid) Bucket(c Cell) int {
	if g.bounded {
		return ((c.X-g.lo.X)*g.rows + (c.Y - g.lo.Y)) % g.table
	}
	h := int64(int32(c.X)*hashPrimeX ^ int32(c.Y)*hashPrimeY)
	if h < 0 {
		h = -h
	}

	return int(h % int64(g.table))
}

// Initialize indexes the first min(p.Len(), Capacity()) points.
// Stage 1: count per bucket. Stage 2: inclusive prefix sum, sentinel slot.
// Stage 3: scatter ids with decrement, leaving counts[h] at the bucket start.
// Complexity: O(n + TableSize()).
func (g *Grid) Initialize(p Positions) {
	n := min(p.Len(), len(g.entries))
	g.n = n
	clear(g.counts)

	for i := 0; i < n; i++ {
		g.counts[g.Bucket(g.CellOf(p.At(i)))]++
	}
	for h := 1; h < g.table; h++ {
		g.counts[h] += g.counts[h-1]
	}
	g.counts[g.table] = g.counts[g.table-1]

	for i := 0; i < n; i++ {
		c := g.CellOf(p.At(i))
		h := g.Bucket(c)
		g.counts[h]--
		k := g.counts[h]
		g.entries[k] = int32(i)
		g.cells[k] = c
	}
}

// Query returns the ids whose cell intersects the square
// [pos−radius, pos+radius]. The slice aliases the grid's buffer and is
// overwritten by the next Query on this grid.
func (g *Grid) Query(pos r2.Vec, radius float64) []int {
	return g.cursor.Query(pos, radius)
}

// QueryRect is Query over an arbitrary box.
func (g *Grid) QueryRect(b Bounds) []int {
	return g.cursor.QueryRect(b)
}

// Cursor returns an independent query buffer over g. Cursors may query
// concurrently as long as nobody calls Initialize meanwhile.
func (g *Grid) Cursor() *Cursor {
	return &Cursor{g: g, buf: make([]int, 0, len(g.entries))}
}

// Cursor is a per-caller query buffer.
type Cursor struct {
	g   *Grid
	buf []int
}

// Query is Grid.Query on this cursor's buffer.
func (c *Cursor) Query(pos r2.Vec, radius float64) []int {
	d := r2.Vec{X: radius, Y: radius}

	return c.QueryRect(Bounds{Min: r2.Sub(pos, d), Max: r2.Add(pos, d)})
}

// QueryRect collects the ids of every cell in the box's cell range. Each
// cell is visited once and only entries cached with exactly that cell are
// taken, so hash collisions never yield foreign or duplicate ids.
func (c *Cursor) QueryRect(b Bounds) []int {
	g := c.g
	c.buf = c.buf[:0]
	c0 := g.CellOf(b.Min)
	c1 := g.CellOf(b.Max)

	for x := c0.X; x <= c1.X; x++ {
		for y := c0.Y; y <= c1.Y; y++ {
			cell := Cell{X: x, Y: y}
			h := g.Bucket(cell)
			for k := g.counts[h]; k < g.counts[h+1]; k++ {
				if g.cells[k] == cell {
					c.buf = append(c.buf, int(g.entries[k]))
				}
			}
		}
	}

	return c.buf
}

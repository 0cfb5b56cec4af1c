// SPDX-License-Identifier: MIT

// Package spatial defines a uniform 2D hash grid for broad-phase neighbour
// queries over point sets, plus the axis-aligned Bounds shared with the
// collision and solver packages.
package spatial

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Sentinel errors for grid construction.
var (
	// ErrInvalidSpacing indicates a non-positive or non-finite cell spacing.
	ErrInvalidSpacing = errors.New("spatial: spacing must be finite and > 0")
	// ErrInvalidCapacity indicates a non-positive maximum object count.
	ErrInvalidCapacity = errors.New("spatial: max objects must be > 0")
	// ErrInvalidBounds indicates an empty, inverted or non-finite box.
	ErrInvalidBounds = errors.New("spatial: bounds must be finite with Min < Max")
)

// Positions is the read-only point set a Grid indexes. Particle position
// views satisfy it directly.
type Positions interface {
	Len() int
	At(i int) r2.Vec
}

// Points adapts a slice to Positions.
type Points []r2.Vec

// Len returns the number of points.
func (p Points) Len() int { return len(p) }

// At returns point i.
func (p Points) At(i int) r2.Vec { return p[i] }

// Cell is an integer cell coordinate: floor(position / spacing).
type Cell struct {
	X, Y int
}

// Bounds is an axis-aligned box [Min, Max].
type Bounds struct {
	Min, Max r2.Vec
}

// NewBounds builds a validated box.
func NewBounds(lo, hi r2.Vec) (Bounds, error) {
	b := Bounds{Min: lo, Max: hi}

	return b, b.Validate()
}

// Validate reports ErrInvalidBounds for non-finite or degenerate boxes.
func (b Bounds) Validate() error {
	for _, v := range [...]float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidBounds
		}
	}
	if !(b.Min.X < b.Max.X) || !(b.Min.Y < b.Max.Y) {
		return ErrInvalidBounds
	}

	return nil
}

// Width returns Max.X − Min.X.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns Max.Y − Min.Y.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies in the closed box.
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Inset shrinks the box by d on every side. The result may be degenerate.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{
		Min: r2.Vec{X: b.Min.X + d, Y: b.Min.Y + d},
		Max: r2.Vec{X: b.Max.X - d, Y: b.Max.Y - d},
	}
}

// Clamp returns p moved into the closed box.
func (b Bounds) Clamp(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: math.Min(math.Max(p.X, b.Min.X), b.Max.X),
		Y: math.Min(math.Max(p.Y, b.Min.Y), b.Max.Y),
	}
}

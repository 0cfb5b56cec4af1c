// SPDX-License-Identifier: MIT

package matrix

import "math"

// Vector is a fixed-length dense vector. The zero-length vector is valid.
// Arithmetic methods mutate the receiver in place and return
// ErrDimensionMismatch when operand lengths differ.
type Vector[T Float] []T

// NewVector allocates a zero vector of length n (n >= 0).
func NewVector[T Float](n int) (Vector[T], error) {
	if n < 0 {
		return nil, matrixErrorf(opVector, ErrInvalidDimensions)
	}

	return make(Vector[T], n), nil
}

// Len returns the number of components.
func (v Vector[T]) Len() int { return len(v) }

// Clone returns an independent copy. Complexity: O(n).
func (v Vector[T]) Clone() Vector[T] {
	out := make(Vector[T], len(v))
	copy(out, v)

	return out
}

// Clear sets every component to zero.
func (v Vector[T]) Clear() {
	for i := range v {
		v[i] = 0
	}
}

// Fill sets every component to x.
func (v Vector[T]) Fill(x T) {
	for i := range v {
		v[i] = x
	}
}

// CopyFrom overwrites v with w.
func (v Vector[T]) CopyFrom(w Vector[T]) error {
	if len(v) != len(w) {
		return matrixErrorf(opVector, ErrDimensionMismatch)
	}
	copy(v, w)

	return nil
}

// Add performs v += w.
func (v Vector[T]) Add(w Vector[T]) error {
	if len(v) != len(w) {
		return matrixErrorf(opAdd, ErrDimensionMismatch)
	}
	for i := range v {
		v[i] += w[i]
	}

	return nil
}

// Sub performs v -= w.
func (v Vector[T]) Sub(w Vector[T]) error {
	if len(v) != len(w) {
		return matrixErrorf(opSub, ErrDimensionMismatch)
	}
	for i := range v {
		v[i] -= w[i]
	}

	return nil
}

// Mul performs the elementwise (Hadamard) product v *= w.
func (v Vector[T]) Mul(w Vector[T]) error {
	if len(v) != len(w) {
		return matrixErrorf(opMul, ErrDimensionMismatch)
	}
	for i := range v {
		v[i] *= w[i]
	}

	return nil
}

// AddScaled performs v += alpha·w (axpy).
func (v Vector[T]) AddScaled(alpha T, w Vector[T]) error {
	if len(v) != len(w) {
		return matrixErrorf(opAdd, ErrDimensionMismatch)
	}
	for i := range v {
		v[i] += alpha * w[i]
	}

	return nil
}

// Scale multiplies every component by alpha.
func (v Vector[T]) Scale(alpha T) {
	for i := range v {
		v[i] *= alpha
	}
}

// Dot returns Σ v[i]·w[i], accumulated left to right.
func (v Vector[T]) Dot(w Vector[T]) (T, error) {
	if len(v) != len(w) {
		return 0, matrixErrorf(opVector, ErrDimensionMismatch)
	}
	var s T
	for i := range v {
		s += v[i] * w[i]
	}

	return s, nil
}

// SquaredLength returns v·v.
func (v Vector[T]) SquaredLength() T {
	var s T
	for _, x := range v {
		s += x * x
	}

	return s
}

// Length returns the Euclidean norm ‖v‖₂.
func (v Vector[T]) Length() T {
	return T(math.Sqrt(float64(v.SquaredLength())))
}

// MaxAbs returns max |v[i]| (0 for the empty vector).
func (v Vector[T]) MaxAbs() T {
	var m T
	for _, x := range v {
		if x < 0 {
			x = -x
		}
		if x > m {
			m = x
		}
	}

	return m
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vector[T]) IsFinite() bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}

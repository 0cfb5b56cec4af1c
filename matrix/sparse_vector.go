// SPDX-License-Identifier: MIT

package matrix

import (
	"iter"
	"math"
	"slices"
)

// SparseVector maps index → value; absent indices read as zero.
//
// Entries are kept sorted by index so that iteration, dot products and the
// row kernels of Sparse accumulate in the same order a dense loop would.
// The zero value is an empty vector ready to use.
type SparseVector[T Float] struct {
	idx []int
	val []T
}

// NewSparseVector returns an empty sparse vector with room for capacity entries.
func NewSparseVector[T Float](capacity int) *SparseVector[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &SparseVector[T]{idx: make([]int, 0, capacity), val: make([]T, 0, capacity)}
}

// SparseFromDense keeps the nonzero components of v.
// Complexity: O(n).
func SparseFromDense[T Float](v Vector[T]) *SparseVector[T] {
	s := NewSparseVector[T](0)
	for i, x := range v {
		if x != 0 {
			s.idx = append(s.idx, i)
			s.val = append(s.val, x)
		}
	}

	return s
}

// search returns the slot of index i and whether it is stored.
func (s *SparseVector[T]) search(i int) (int, bool) {
	return slices.BinarySearch(s.idx, i)
}

// Len returns the number of stored entries (nnz).
func (s *SparseVector[T]) Len() int { return len(s.idx) }

// Contains reports whether index i has a stored entry.
func (s *SparseVector[T]) Contains(i int) bool {
	_, ok := s.search(i)

	return ok
}

// At returns the value at index i, zero when absent.
// Complexity: O(log nnz).
func (s *SparseVector[T]) At(i int) T {
	if k, ok := s.search(i); ok {
		return s.val[k]
	}

	return 0
}

// Set stores v at index i.
// Setting zero on an absent index creates no entry; an existing entry keeps
// its slot and simply stores zero.
func (s *SparseVector[T]) Set(i int, v T) error {
	if i < 0 {
		return matrixErrorf(opSparseVec, ErrOutOfRange)
	}
	k, ok := s.search(i)
	if ok {
		s.val[k] = v

		return nil
	}
	if v == 0 {
		return nil
	}
	s.idx = slices.Insert(s.idx, k, i)
	s.val = slices.Insert(s.val, k, v)

	return nil
}

// Accumulate performs s[i] += v, creating the entry when v != 0.
func (s *SparseVector[T]) Accumulate(i int, v T) error {
	if i < 0 {
		return matrixErrorf(opSparseVec, ErrOutOfRange)
	}
	k, ok := s.search(i)
	if ok {
		s.val[k] += v

		return nil
	}
	if v == 0 {
		return nil
	}
	s.idx = slices.Insert(s.idx, k, i)
	s.val = slices.Insert(s.val, k, v)

	return nil
}

// All iterates stored (index, value) pairs in ascending index order.
func (s *SparseVector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for k, i := range s.idx {
			if !yield(i, s.val[k]) {
				return
			}
		}
	}
}

// MaxIndex returns the largest stored index, or -1 when empty.
func (s *SparseVector[T]) MaxIndex() int {
	if len(s.idx) == 0 {
		return -1
	}

	return s.idx[len(s.idx)-1]
}

// Clone returns an independent copy.
func (s *SparseVector[T]) Clone() *SparseVector[T] {
	return &SparseVector[T]{idx: slices.Clone(s.idx), val: slices.Clone(s.val)}
}

// Clear drops every entry, keeping capacity.
func (s *SparseVector[T]) Clear() {
	s.idx = s.idx[:0]
	s.val = s.val[:0]
}

// Scale multiplies every stored value by alpha.
func (s *SparseVector[T]) Scale(alpha T) {
	for k := range s.val {
		s.val[k] *= alpha
	}
}

// Dot returns Σ s[i]·w[i] over stored entries.
// Every stored index must be < len(w).
func (s *SparseVector[T]) Dot(w Vector[T]) (T, error) {
	if s.MaxIndex() >= len(w) {
		return 0, matrixErrorf(opSparseVec, ErrDimensionMismatch)
	}
	var sum T
	for k, i := range s.idx {
		sum += s.val[k] * w[i]
	}

	return sum, nil
}

// ToDense expands s into a dense vector of length n.
func (s *SparseVector[T]) ToDense(n int) (Vector[T], error) {
	if n < 0 || s.MaxIndex() >= n {
		return nil, matrixErrorf(opSparseVec, ErrDimensionMismatch)
	}
	out := make(Vector[T], n)
	for k, i := range s.idx {
		out[i] = s.val[k]
	}

	return out, nil
}

// AddDense returns the dense vector s + w (length len(w)).
func (s *SparseVector[T]) AddDense(w Vector[T]) (Vector[T], error) {
	out, err := s.ToDense(len(w))
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] += w[i]
	}

	return out, nil
}

// SubDense returns the dense vector s − w (length len(w)).
func (s *SparseVector[T]) SubDense(w Vector[T]) (Vector[T], error) {
	out, err := s.ToDense(len(w))
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] -= w[i]
	}

	return out, nil
}

// MulDense returns the elementwise product s ∘ w; the pattern of s is kept.
func (s *SparseVector[T]) MulDense(w Vector[T]) (*SparseVector[T], error) {
	if s.MaxIndex() >= len(w) {
		return nil, matrixErrorf(opSparseVec, ErrDimensionMismatch)
	}
	out := s.Clone()
	for k, i := range out.idx {
		out.val[k] *= w[i]
	}

	return out, nil
}

// Add returns the sparse sum s + o (merge of the two patterns).
func (s *SparseVector[T]) Add(o *SparseVector[T]) *SparseVector[T] {
	return s.merge(o, 1)
}

// Sub returns the sparse difference s − o.
func (s *SparseVector[T]) Sub(o *SparseVector[T]) *SparseVector[T] {
	return s.merge(o, -1)
}

// merge walks both sorted patterns once. Complexity: O(nnz(s)+nnz(o)).
func (s *SparseVector[T]) merge(o *SparseVector[T], sign T) *SparseVector[T] {
	out := NewSparseVector[T](len(s.idx) + len(o.idx))
	a, b := 0, 0
	for a < len(s.idx) || b < len(o.idx) {
		switch {
		case b >= len(o.idx) || (a < len(s.idx) && s.idx[a] < o.idx[b]):
			out.idx = append(out.idx, s.idx[a])
			out.val = append(out.val, s.val[a])
			a++
		case a >= len(s.idx) || o.idx[b] < s.idx[a]:
			out.idx = append(out.idx, o.idx[b])
			out.val = append(out.val, sign*o.val[b])
			b++
		default:
			out.idx = append(out.idx, s.idx[a])
			out.val = append(out.val, s.val[a]+sign*o.val[b])
			a++
			b++
		}
	}

	return out
}

// SquaredLength returns Σ value² over stored entries.
func (s *SparseVector[T]) SquaredLength() T {
	var sum T
	for _, x := range s.val {
		sum += x * x
	}

	return sum
}

// Length returns the Euclidean norm.
func (s *SparseVector[T]) Length() T {
	return T(math.Sqrt(float64(s.SquaredLength())))
}

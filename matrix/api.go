// SPDX-License-Identifier: MIT

// Package matrix: method facades.
//
// Thin wrappers so call sites can write a.Mul(b) instead of matrix.Mul(a, b).
// All logic lives in the package-level kernels (ops.go).
package matrix

// Add returns m + b.
func (m *Dense[T]) Add(b Matrix[T]) (Matrix[T], error) { return Add[T](m, b) }

// Sub returns m − b.
func (m *Dense[T]) Sub(b Matrix[T]) (Matrix[T], error) { return Sub[T](m, b) }

// Mul returns m·b.
func (m *Dense[T]) Mul(b Matrix[T]) (Matrix[T], error) { return Mul[T](m, b) }

// MulVec returns m·x.
func (m *Dense[T]) MulVec(x Vector[T]) (Vector[T], error) { return MulVec[T](m, x) }

// Transpose returns mᵀ.
func (m *Dense[T]) Transpose() (Matrix[T], error) { return Transpose[T](m) }

// Scale returns alpha·m.
func (m *Dense[T]) Scale(alpha T) (Matrix[T], error) { return Scale[T](m, alpha) }

// Pow returns m^k.
func (m *Dense[T]) Pow(k int) (Matrix[T], error) { return Pow[T](m, k) }

// Add returns s + b.
func (s *Sparse[T]) Add(b Matrix[T]) (Matrix[T], error) { return Add[T](s, b) }

// Sub returns s − b.
func (s *Sparse[T]) Sub(b Matrix[T]) (Matrix[T], error) { return Sub[T](s, b) }

// Mul returns s·b.
func (s *Sparse[T]) Mul(b Matrix[T]) (Matrix[T], error) { return Mul[T](s, b) }

// MulVec returns s·x.
func (s *Sparse[T]) MulVec(x Vector[T]) (Vector[T], error) { return MulVec[T](s, x) }

// Transpose returns sᵀ.
func (s *Sparse[T]) Transpose() (Matrix[T], error) { return Transpose[T](s) }

// Scale returns alpha·s.
func (s *Sparse[T]) Scale(alpha T) (Matrix[T], error) { return Scale[T](s, alpha) }

// Pow returns s^k.
func (s *Sparse[T]) Pow(k int) (Matrix[T], error) { return Pow[T](s, k) }

// SetIdentity overwrites a square sparse matrix with I.
func (s *Sparse[T]) SetIdentity() error {
	if len(s.rows) != s.cols {
		return matrixErrorf(opIdentity, ErrNonSquare)
	}
	for i, row := range s.rows {
		row.Clear()
		row.idx = append(row.idx, i)
		row.val = append(row.val, 1)
	}

	return nil
}

// SPDX-License-Identifier: MIT

// Package matrix: storage-agnostic kernels.
//
// Every kernel is written once against Matrix.Row, so Sparse operands are
// swept over their stored entries only. Result layout rule: Sparse op Sparse
// yields *Sparse; any other combination yields *Dense.
package matrix

import "math"

// resultLayout picks the output storage for a binary kernel.
func resultLayout[T Float](a, b Matrix[T]) Layout {
	if a.Layout() == LayoutSparse && b.Layout() == LayoutSparse {
		return LayoutSparse
	}

	return LayoutDense
}

// storeRow overwrites row i of out with acc. Sparse outputs keep nonzeros only.
func storeRow[T Float](out Matrix[T], i int, acc []T) {
	switch m := out.(type) {
	case *Dense[T]:
		copy(m.data[i*m.c:(i+1)*m.c], acc)
	case *Sparse[T]:
		row := m.rows[i]
		row.Clear()
		for j, v := range acc {
			if v != 0 {
				row.idx = append(row.idx, j)
				row.val = append(row.val, v)
			}
		}
	}
}

// Add returns a + b.
// Stage 1 (Validate): non-nil, same shape.
// Stage 2 (Execute): Sparse+Sparse merges row patterns; otherwise dense accumulate.
// Complexity: O(nnz(a)+nnz(b)) sparse, O(r*c) dense.
func Add[T Float](a, b Matrix[T]) (Matrix[T], error) {
	return addSub(opAdd, a, b, 1)
}

// Sub returns a − b.
func Sub[T Float](a, b Matrix[T]) (Matrix[T], error) {
	return addSub(opSub, a, b, -1)
}

func addSub[T Float](tag string, a, b Matrix[T], sign T) (Matrix[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(tag, err)
	}

	sa, okA := a.(*Sparse[T])
	sb, okB := b.(*Sparse[T])
	if okA && okB {
		out := &Sparse[T]{cols: sa.cols, rows: make([]*SparseVector[T], len(sa.rows))}
		for i := range sa.rows {
			out.rows[i] = sa.rows[i].merge(sb.rows[i], sign)
		}

		return out, nil
	}

	r, c := a.Rows(), a.Cols()
	out := &Dense[T]{r: r, c: c, data: make([]T, r*c)}
	for i := 0; i < r; i++ {
		base := i * c
		for j, v := range a.Row(i) {
			out.data[base+j] = v
		}
		for j, v := range b.Row(i) {
			out.data[base+j] += sign * v
		}
	}

	return out, nil
}

// Mul returns the matrix product a·b.
// Stage 1 (Validate): non-nil, a.Cols == b.Rows.
// Stage 2 (Execute): row-by-row i-k-j sweep into a dense accumulator; each
// output element sums its k-terms in ascending k, independent of layout.
// Complexity: O(Σ_i Σ_{k∈row i} nnz(b_k)).
func Mul[T Float](a, b Matrix[T]) (Matrix[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	out, err := newMatrix[T](resultLayout(a, b), a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	acc := make([]T, b.Cols())
	for i := 0; i < a.Rows(); i++ {
		clear(acc)
		for k, av := range a.Row(i) {
			if av == 0 {
				continue
			}
			for j, bv := range b.Row(k) {
				acc[j] += av * bv
			}
		}
		storeRow(out, i, acc)
	}

	return out, nil
}

// MulVec returns the freshly allocated product m·x.
func MulVec[T Float](m Matrix[T], x Vector[T]) (Vector[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}
	dst := make(Vector[T], m.Rows())
	if err := m.MulVecTo(dst, x); err != nil {
		return nil, err
	}

	return dst, nil
}

// Transpose returns mᵀ in the same layout.
// Complexity: O(nnz) sparse, O(r*c) dense.
func Transpose[T Float](m Matrix[T]) (Matrix[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()

	if s, ok := m.(*Sparse[T]); ok {
		out, err := NewSparse[T](c, r)
		if err != nil {
			return nil, matrixErrorf(opTranspose, err)
		}
		// rows visited in ascending i keep every output row sorted.
		for i, row := range s.rows {
			for k, j := range row.idx {
				dst := out.rows[j]
				dst.idx = append(dst.idx, i)
				dst.val = append(dst.val, row.val[k])
			}
		}

		return out, nil
	}

	out := &Dense[T]{r: c, c: r, data: make([]T, r*c)}
	for i := 0; i < r; i++ {
		for j, v := range m.Row(i) {
			out.data[j*r+i] = v
		}
	}

	return out, nil
}

// Scale returns alpha·m in the same layout.
func Scale[T Float](m Matrix[T], alpha T) (Matrix[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	switch src := m.(type) {
	case *Dense[T]:
		out := src.CloneDense()
		Vector[T](out.data).Scale(alpha)

		return out, nil
	case *Sparse[T]:
		out := src.CloneSparse()
		for _, row := range out.rows {
			row.Scale(alpha)
		}

		return out, nil
	}

	out := m.Clone()
	for i := 0; i < m.Rows(); i++ {
		for j, v := range m.Row(i) {
			if err := out.Set(i, j, alpha*v); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
		}
	}

	return out, nil
}

// Identity returns the n×n identity in the requested layout.
func Identity[T Float](n int, layout Layout) (Matrix[T], error) {
	out, err := newMatrix[T](layout, n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		if err = out.Set(i, i, 1); err != nil {
			return nil, matrixErrorf(opIdentity, err)
		}
	}

	return out, nil
}

// Pow returns m^k by k repeated multiplications starting from the identity.
// m^0 = I. Errors: ErrNonSquare, ErrNegativeExponent.
// Complexity: O(k · cost(Mul)).
func Pow[T Float](m Matrix[T], k int) (Matrix[T], error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	if k < 0 {
		return nil, matrixErrorf(opPow, ErrNegativeExponent)
	}
	res, err := Identity[T](m.Rows(), m.Layout())
	if err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	for ; k > 0; k-- {
		if res, err = Mul(res, m); err != nil {
			return nil, matrixErrorf(opPow, err)
		}
	}

	return res, nil
}

// Equal reports exact element-wise equality, independent of layout.
func Equal[T Float](a, b Matrix[T]) bool {
	return compare(a, b, 0)
}

// AllClose reports |a_ij − b_ij| <= eps for every element (WithEpsilon, default DefaultEpsilon).
func AllClose[T Float](a, b Matrix[T], opts ...Option) bool {
	return compare(a, b, gatherOptions(opts...).epsilon)
}

func compare[T Float](a, b Matrix[T], eps float64) bool {
	if a == nil || b == nil || a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	row := make([]T, a.Cols())
	for i := 0; i < a.Rows(); i++ {
		clear(row)
		for j, v := range a.Row(i) {
			row[j] = v
		}
		for j, v := range b.Row(i) {
			row[j] -= v
		}
		for _, d := range row {
			if math.Abs(float64(d)) > eps {
				return false
			}
		}
	}

	return true
}

// SPDX-License-Identifier: MIT

package matrix

import "gonum.org/v1/gonum/mat"

// ToGonum copies m into a float64 *mat.Dense.
func ToGonum[T Float](m Matrix[T]) *mat.Dense {
	out := mat.NewDense(m.Rows(), m.Cols(), nil)
	for i := 0; i < m.Rows(); i++ {
		for j, v := range m.Row(i) {
			out.Set(i, j, float64(v))
		}
	}

	return out
}

// FromGonum copies any gonum matrix into the requested layout, narrowing to T.
// Zero elements are not stored in Sparse output.
func FromGonum[T Float](src mat.Matrix, layout Layout) (Matrix[T], error) {
	if src == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := src.Dims()
	out, err := newMatrix[T](layout, r, c)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := src.At(i, j); v != 0 {
				_ = out.Set(i, j, T(v))
			}
		}
	}

	return out, nil
}

// VecToGonum copies v into a float64 *mat.VecDense.
func VecToGonum[T Float](v Vector[T]) *mat.VecDense {
	data := make([]float64, len(v))
	for i, x := range v {
		data[i] = float64(x)
	}

	return mat.NewVecDense(len(v), data)
}

// VecFromGonum copies a gonum vector, narrowing to T.
func VecFromGonum[T Float](src mat.Vector) Vector[T] {
	out := make(Vector[T], src.Len())
	for i := range out {
		out[i] = T(src.AtVec(i))
	}

	return out
}

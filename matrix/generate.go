// SPDX-License-Identifier: MIT

package matrix

import "math/rand/v2"

// Tridiagonal returns the n×n matrix of the implicit 1D diffusion step:
// 2c+1 on the diagonal and −c on both off-diagonals. It is symmetric,
// strictly diagonally dominant for c > 0, and positive definite.
// Default layout is Sparse (WithDense for Dense).
func Tridiagonal[T Float](n int, c T, opts ...Option) (Matrix[T], error) {
	if n < 2 {
		return nil, matrixErrorf(opGenerate, ErrInvalidDimensions)
	}
	m, err := newMatrix[T](gatherOptions(opts...).layout, n, n)
	if err != nil {
		return nil, matrixErrorf(opGenerate, err)
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			_ = m.Set(i, i-1, -c)
		}
		_ = m.Set(i, i, 2*c+1)
		if i < n-1 {
			_ = m.Set(i, i+1, -c)
		}
	}

	return m, nil
}

// Poisson2D returns the k²×k² five-point Laplacian of a k×k grid with
// Dirichlet boundaries: 4 on the diagonal, −1 for each grid neighbour.
func Poisson2D[T Float](k int, opts ...Option) (Matrix[T], error) {
	if k < 2 {
		return nil, matrixErrorf(opGenerate, ErrInvalidDimensions)
	}
	n := k * k
	m, err := newMatrix[T](gatherOptions(opts...).layout, n, n)
	if err != nil {
		return nil, matrixErrorf(opGenerate, err)
	}
	for gy := 0; gy < k; gy++ {
		for gx := 0; gx < k; gx++ {
			i := gy*k + gx
			// ascending column order: up, left, self, right, down
			if gy > 0 {
				_ = m.Set(i, i-k, -1)
			}
			if gx > 0 {
				_ = m.Set(i, i-1, -1)
			}
			_ = m.Set(i, i, 4)
			if gx < k-1 {
				_ = m.Set(i, i+1, -1)
			}
			if gy < k-1 {
				_ = m.Set(i, i+k, -1)
			}
		}
	}

	return m, nil
}

// RandomVector returns n samples uniform in [lo, hi) from a seeded PCG source.
// Equal seeds give equal vectors.
func RandomVector[T Float](n int, lo, hi T, seed uint64) Vector[T] {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	v := make(Vector[T], n)
	for i := range v {
		v[i] = lo + T(rng.Float64())*(hi-lo)
	}

	return v
}

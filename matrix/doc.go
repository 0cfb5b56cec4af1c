// Package matrix provides the numeric substrate for lvsim: dense and sparse
// vectors, dense and row-sparse matrices, and the factorizations used to
// precondition iterative solvers.
//
// The package provides:
//
//   - Vector and SparseVector: fixed-length dense vectors and index→value sparse
//     vectors with elementwise arithmetic, dot products and Euclidean length.
//   - Dense: row-major matrix with O(1) element access.
//   - Sparse: one SparseVector per row, entries kept in ascending column order.
//   - Matrix: the row-accessor interface both storages satisfy. Row(i) yields
//     every column for Dense and only stored entries for Sparse, so kernels
//     written once against Matrix take the nonzero-only inner loop for free.
//   - IncompleteCholesky and LowerTriangularInvert for preconditioning.
//   - Load / Read for the "rows cols nnz" + "row col value" matrix file format.
//
// Scalars are generic over Float (float32 or float64). float32 is the
// reference precision of the solvers; float64 is convenient in tests.
//
// All public entry points validate shapes and return sentinel errors
// (ErrDimensionMismatch, ErrSingular, ...) wrapped with an operation tag;
// match them with errors.Is.
package matrix

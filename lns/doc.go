// Package lns solves square linear systems A·x = b iteratively.
//
// Four methods are provided, all written once against matrix.Matrix so that
// sparse storage automatically restricts every inner loop to stored entries:
//
//   - Jacobi: synchronous sweep, x_i = (b_i − Σ_{j≠i} a_ij x_j^old) / a_ii.
//   - GaussSeidel: in-place sweep using the freshest components.
//   - GradientDescent: steepest descent with exact line search.
//   - ConjugateGradient / PreconditionedCG: preconditioned conjugate gradient.
//
// Every solver has the shape
//
//	Solve(A, x, b, stop, opts...) (iterations int, err error)
//
// where x carries the initial guess in and the solution out. A StopCondition
// selects a fixed iteration count, a residual threshold, or both.
//
// For the same logical matrix, dense and sparse storage produce bit-identical
// iterates: rows are always visited in ascending column order.
//
// Solvers are single-threaded and allocate their scratch vectors per call;
// separate calls on separate x may run concurrently over a shared A.
package lns

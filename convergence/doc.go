// SPDX-License-Identifier: MIT

// Package convergence measures how fast each iterative solver of package
// lns approaches a known solution.
//
// For every problem size a symmetric positive-definite system A·x* = b is
// generated with x* uniform in [−10, 10) from a fixed seed. Each solver then
// runs Runs times from a zero guess with an iteration budget of 1, 2, …,
// Runs, recording ‖x* − x‖, the iterations actually used and the wall time.
// Jacobi and Gauss-Seidel run exactly the budget; Gradient Descent and
// Conjugate Gradient stop early once the relative residual falls below the
// threshold.
//
// Every (size, method) pair is an independent task with private copies of
// A, b and x, fanned out on an errgroup. Reports render as YAML or as
// error-vs-budget charts through gonum/plot.
package convergence

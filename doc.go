// Package lvsim is a small laboratory for two kinds of numeric work that
// share one toolbox: 2-D particle collision simulation and iterative
// solvers for sparse linear systems.
//
// What is inside?
//
//   - Particles: interleaved or columnar storage behind one Store interface,
//     plus a rate-limited point emitter
//   - Broad phase: a dense hash grid (counting sort, bounded or hashed cells)
//   - Narrow phase: overlap tests, impulse or positional resolution, box bounds
//   - Solvers: explicit Euler, Verlet, and a strip-partitioned parallel Verlet
//     running on a barrier-synchronised worker pool
//   - Linear algebra: dense and sparse matrices over float32/float64, a
//     coordinate file loader, Jacobi, Gauss–Seidel, gradient descent and
//     (preconditioned) conjugate gradient
//   - Tooling: YAML snapshots persisted in badger, a convergence study with
//     gonum/plot charts, and the lvsim command
//
// Packages:
//
//	matrix/      — Matrix, Dense, Sparse, Vector, generators, file I/O
//	lns/         — iterative solvers, stop conditions, preconditioners
//	spatial/     — Bounds and the hash grid
//	particle/    — Store layouts, views and the point emitter
//	collision/   — contact detection and resolution, collision statistics
//	solver/      — Basic, Verlet and MultiThreaded steppers, Pool, Barrier
//	snapshot/    — frame capture, YAML codec, badger-backed history
//	convergence/ — error-versus-budget study and charts
//	cmd/lvsim/   — simulate, solve and converge subcommands
//
// Quick start:
//
//	store, _ := particle.New(particle.LayoutColumnar, 1000)
//	s, _ := solver.New(solver.KindVerlet, store, bounds, 0.1, solver.WithSubsteps(8))
//	for range frames {
//		_, _ = emitter.Update(dt, store)
//		_ = s.Solve(dt)
//	}
//
//	go install github.com/katalvlaran/lvsim/cmd/lvsim@latest
package lvsim

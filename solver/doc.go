// SPDX-License-Identifier: MIT

// Package solver advances a particle.Store through time.
//
// Every solver splits a frame into substeps. A substep integrates motion
// under gravity, resolves collisions through a collision.Handler (which
// rebuilds the spatial grid first) and clamps particles into the world box.
//
//   - Basic:         explicit Euler, impulse collisions.
//   - Verlet:        position Verlet from a two-point history, impulse
//     collisions, history re-derived from the resolved velocity.
//   - MultiThreaded: position-only collisions resolved by a fixed pool of
//     workers, one vertical strip each, then Verlet on the main goroutine.
//
// MultiThreaded owns goroutines and must be closed. Stats are per solver;
// nothing in this package keeps process-wide state.
package solver

// SPDX-License-Identifier: MIT

// Package particle stores 2D particles as parallel fields (position,
// previous position, velocity, inverse mass, restitution, radius) behind a
// single Store interface with two physical layouts:
//
//   - Interleaved: one record per particle (array of structs).
//   - Columnar:    one slice per field (struct of arrays).
//
// Both layouts expose identical per-field View accessors, so index i names
// the same particle in every view and solver code never branches on layout.
// Capacity is fixed at construction; Len() <= Cap() always holds.
//
// PointEmitter is a producer that feeds a Store through Add.
package particle

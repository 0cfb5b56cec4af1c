// SPDX-License-Identifier: MIT

// Package collision detects and resolves overlaps between particles of a
// particle.Store using a spatial.Grid as broad phase.
//
// Two response modes share one narrow phase:
//
//   - Impulse (default): penetration is split equally between the pair and
//     the relative normal velocity is reflected with the averaged
//     restitution, weighted by inverse mass. Static bodies (inverse mass 0)
//     do not move.
//   - Positional (WithPositional): only positions move; the correction is
//     scaled by restitution and velocity is left to a position-based
//     integrator.
//
// Detection and response are fused in Resolve. GenerateContacts and
// ResolveContacts split them for callers that need the batch.
//
// Inner loops never return errors: coincident particles (no defined
// normal) and non-overlapping pairs are skipped.
package collision

// SPDX-License-Identifier: MIT

package collision

// Stats summarises collision activity.
type Stats struct {
	// Collisions is the cumulative number of resolved pair visits.
	Collisions int
	// BoundaryHits is the cumulative number of bounds clamps.
	BoundaryHits int
	// Min and Max are the per-particle collision extremes of the last pass.
	Min, Max int
	// Average is the mean per-particle count over the last StatsWindow particles.
	Average float64
}

// Recorder accumulates Stats. Per-particle samples go into a fixed ring.
// A Recorder is not safe for concurrent use.
type Recorder struct {
	ring     [StatsWindow]int
	next     int
	filled   int
	sum      int
	total    int
	boundary int
	min, max int
	fresh    bool
}

// BeginPass resets the per-pass extremes.
func (r *Recorder) BeginPass() {
	r.min, r.max = 0, 0
	r.fresh = true
}

// Observe records the collision count of one particle.
func (r *Recorder) Observe(collisions int) {
	if r.fresh {
		r.min, r.max = collisions, collisions
		r.fresh = false
	}
	r.min = min(r.min, collisions)
	r.max = max(r.max, collisions)
	r.total += collisions

	r.sum += collisions - r.ring[r.next]
	r.ring[r.next] = collisions
	r.next = (r.next + 1) % StatsWindow
	r.filled = min(r.filled+1, StatsWindow)
}

// Boundary records n bounds clamps.
func (r *Recorder) Boundary(n int) { r.boundary += n }

// Stats returns the current summary.
func (r *Recorder) Stats() Stats {
	s := Stats{Collisions: r.total, BoundaryHits: r.boundary, Min: r.min, Max: r.max}
	if r.filled > 0 {
		s.Average = float64(r.sum) / float64(r.filled)
	}

	return s
}

// Reset clears everything.
func (r *Recorder) Reset() { *r = Recorder{} }

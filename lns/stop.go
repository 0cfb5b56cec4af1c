// SPDX-License-Identifier: MIT

package lns

import (
	"fmt"
	"math"
)

// DefaultMaxIterations caps a threshold-only StopCondition for Jacobi,
// Gauss-Seidel and gradient descent. Conjugate gradient caps at the system
// dimension N instead (exact arithmetic terminates in N steps).
const DefaultMaxIterations = 10_000

const (
	panicIterationsNegative = "lns: Iterations: n must be >= 0"
	panicThresholdInvalid   = "lns: Threshold: t must be finite, non-negative"
	panicMaxNonPositive     = "lns: WithMaxIterations: n must be > 0"
)

// StopCondition decides when a solver stops.
//
//	Iterations(n)                      exactly n iterations (early exit only on breakdown)
//	Threshold(t)                       until the residual measure <= t; ErrNotConverged at the cap
//	Threshold(t).WithMaxIterations(n)  whichever comes first; reaching n is not an error
//
// The zero value is Iterations(0).
type StopCondition struct {
	iterations   int
	threshold    float64
	hasThreshold bool
	hasMax       bool
}

// Iterations runs exactly n iterations. Panics on n < 0.
func Iterations(n int) StopCondition {
	if n < 0 {
		panic(panicIterationsNegative)
	}

	return StopCondition{iterations: n}
}

// Threshold iterates until the method's residual measure drops to t.
// Panics on negative or non-finite t.
func Threshold(t float64) StopCondition {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		panic(panicThresholdInvalid)
	}

	return StopCondition{threshold: t, hasThreshold: true}
}

// WithMaxIterations bounds a threshold condition by n iterations.
func (s StopCondition) WithMaxIterations(n int) StopCondition {
	if n <= 0 {
		panic(panicMaxNonPositive)
	}
	s.iterations = n
	s.hasMax = true

	return s
}

// HasThreshold reports whether a residual threshold is active.
func (s StopCondition) HasThreshold() bool { return s.hasThreshold }

// ThresholdValue returns the residual threshold (0 when none).
func (s StopCondition) ThresholdValue() float64 { return s.threshold }

// limit resolves the iteration cap and whether reaching it is an error.
// fallback is used for a threshold condition without an explicit max.
func (s StopCondition) limit(fallback int, capIsError bool) (int, bool) {
	switch {
	case !s.hasThreshold:
		return s.iterations, false
	case s.hasMax:
		return s.iterations, false
	default:
		return fallback, capIsError
	}
}

// converged applies the threshold test; always false for Iterations.
func (s StopCondition) converged(measure float64) bool {
	return s.hasThreshold && measure <= s.threshold
}

// convergedRelative tests a squared residual against t² · ref, where ref is
// the squared initial residual.
func (s StopCondition) convergedRelative(sq, ref float64) bool {
	return s.hasThreshold && sq <= s.threshold*s.threshold*ref
}

// String implements fmt.Stringer.
func (s StopCondition) String() string {
	switch {
	case !s.hasThreshold:
		return fmt.Sprintf("iterations(%d)", s.iterations)
	case s.hasMax:
		return fmt.Sprintf("threshold(%g, max=%d)", s.threshold, s.iterations)
	default:
		return fmt.Sprintf("threshold(%g)", s.threshold)
	}
}

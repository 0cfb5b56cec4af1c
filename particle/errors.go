// SPDX-License-Identifier: MIT

package particle

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is returned by Add when Len() == Cap().
	ErrFull = errors.New("particle: store is full")
	// ErrInvalidCapacity indicates a non-positive store capacity.
	ErrInvalidCapacity = errors.New("particle: capacity must be > 0")
	// ErrInvalidParticle indicates a non-finite field, a non-positive radius
	// or a negative inverse mass.
	ErrInvalidParticle = errors.New("particle: invalid particle attributes")
	// ErrUnknownLayout indicates a Layout value outside the defined set.
	ErrUnknownLayout = errors.New("particle: unknown layout")
)

// particleErrorf prefixes err with the operation tag.
func particleErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

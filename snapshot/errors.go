// SPDX-License-Identifier: MIT

package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no snapshot exists for a run/frame.
	ErrNotFound = errors.New("snapshot: not found")
	// ErrNilSnapshot indicates a nil *Snapshot argument.
	ErrNilSnapshot = errors.New("snapshot: nil snapshot")
	// ErrCapacity is returned by Restore when the target store is too small.
	ErrCapacity = errors.New("snapshot: target store too small")
)

func snapshotErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

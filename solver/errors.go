// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeStep indicates a non-positive or non-finite dt.
	ErrInvalidTimeStep = errors.New("solver: time step must be finite and > 0")
	// ErrClosed is returned by Solve after Close.
	ErrClosed = errors.New("solver: closed")
	// ErrUnknownKind is returned by ParseKind and New.
	ErrUnknownKind = errors.New("solver: unknown kind")
)

func solverErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

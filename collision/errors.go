// SPDX-License-Identifier: MIT

package collision

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStore indicates a Handler built without a particle store.
	ErrNilStore = errors.New("collision: nil particle store")
	// ErrInvalidRadius indicates a non-positive or non-finite max radius.
	ErrInvalidRadius = errors.New("collision: max radius must be finite and > 0")
)

func collisionErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

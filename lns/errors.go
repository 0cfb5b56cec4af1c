// SPDX-License-Identifier: MIT

package lns

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is returned when a threshold-only StopCondition exhausts
	// DefaultMaxIterations. The iteration count is still returned and x holds
	// the last iterate.
	ErrNotConverged = errors.New("lns: did not converge")

	// ErrDiverged is returned when an iterate becomes NaN or ±Inf.
	ErrDiverged = errors.New("lns: iterate is not finite")

	// ErrUnknownMethod is returned by ParseMethod for an unrecognized name.
	ErrUnknownMethod = errors.New("lns: unknown method")

	// ErrUnknownPreconditioner is returned by ParsePreconditioner for an unrecognized name.
	ErrUnknownPreconditioner = errors.New("lns: unknown preconditioner")
)

const (
	opJacobi   = "Jacobi"
	opGS       = "GaussSeidel"
	opGD       = "GradientDescent"
	opCG       = "ConjugateGradient"
	opPrecond  = "Preconditioner"
	opParse    = "ParseMethod"
	opParsePC  = "ParsePreconditioner"
	opValidate = "validate"
)

// lnsErrorf tags err with the solver name; err must be non-nil.
func lnsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// SPDX-License-Identifier: MIT

package lns

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvsim/matrix"
)

// Method selects a solver by value, for callers configured by name.
type Method int

const (
	MethodJacobi Method = iota
	MethodGaussSeidel
	MethodGradientDescent
	MethodConjugateGradient
)

var methodNames = [...]string{"jacobi", "gauss-seidel", "gradient-descent", "conjugate-gradient"}

// Methods lists every Method in declaration order.
func Methods() []Method {
	return []Method{MethodJacobi, MethodGaussSeidel, MethodGradientDescent, MethodConjugateGradient}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

// ParseMethod accepts the canonical names plus the short aliases
// "gs", "gd" and "cg" (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "gs":
		return MethodGaussSeidel, nil
	case "gd":
		return MethodGradientDescent, nil
	case "cg", "pcg":
		return MethodConjugateGradient, nil
	}
	for i, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}

	return 0, lnsErrorf(opParse, fmt.Errorf("%w: %q", ErrUnknownMethod, s))
}

// Run dispatches to the solver named by m for any Float.
func Run[T matrix.Float](m Method, a matrix.Matrix[T], x, b matrix.Vector[T], stop StopCondition, opts ...Option) (int, error) {
	switch m {
	case MethodJacobi:
		return Jacobi(a, x, b, stop, opts...)
	case MethodGaussSeidel:
		return GaussSeidel(a, x, b, stop, opts...)
	case MethodGradientDescent:
		return GradientDescent(a, x, b, stop, opts...)
	case MethodConjugateGradient:
		return ConjugateGradient(a, x, b, stop, opts...)
	default:
		return 0, lnsErrorf(opValidate, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m)))
	}
}

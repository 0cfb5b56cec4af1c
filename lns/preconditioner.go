// SPDX-License-Identifier: MIT

package lns

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvsim/matrix"
)

// Preconditioner applies z = M⁻¹·r for some M ≈ A.
// Implementations may keep scratch buffers: one value serves one solve at a time.
type Preconditioner[T matrix.Float] interface {
	Apply(z, r matrix.Vector[T]) error
}

// PreconditionerKind names a preconditioner ConjugateGradient can build from A.
type PreconditionerKind int

const (
	// PreconditionerNone is the identity; plain conjugate gradient.
	PreconditionerNone PreconditionerKind = iota
	// PreconditionerIncompleteCholesky solves L·Lᵀ·z = r by two triangular sweeps.
	PreconditionerIncompleteCholesky
	// PreconditionerInverseCholesky applies z = L⁻ᵀ·(L⁻¹·r) with an explicit L⁻¹.
	PreconditionerInverseCholesky
)

var preconditionerNames = [...]string{"none", "ic", "inverse-ic"}

// String implements fmt.Stringer.
func (k PreconditionerKind) String() string {
	if k < 0 || int(k) >= len(preconditionerNames) {
		return fmt.Sprintf("PreconditionerKind(%d)", int(k))
	}

	return preconditionerNames[k]
}

// ParsePreconditioner maps "none", "ic" or "inverse-ic" (case-insensitive) to a kind.
func ParsePreconditioner(s string) (PreconditionerKind, error) {
	for i, name := range preconditionerNames {
		if strings.EqualFold(s, name) {
			return PreconditionerKind(i), nil
		}
	}

	return 0, lnsErrorf(opParsePC, fmt.Errorf("%w: %q", ErrUnknownPreconditioner, s))
}

// NewPreconditioner builds the preconditioner of the given kind for A.
func NewPreconditioner[T matrix.Float](kind PreconditionerKind, a matrix.Matrix[T]) (Preconditioner[T], error) {
	switch kind {
	case PreconditionerNone:
		return Identity[T]{}, nil
	case PreconditionerIncompleteCholesky:
		p, err := NewIncompleteCholesky(a)
		if err != nil {
			return nil, err
		}

		return p, nil
	case PreconditionerInverseCholesky:
		p, err := NewInverseCholesky(a)
		if err != nil {
			return nil, err
		}

		return p, nil
	default:
		return nil, lnsErrorf(opPrecond, fmt.Errorf("%w: %d", ErrUnknownPreconditioner, int(kind)))
	}
}

// Identity is the trivial preconditioner z = r.
type Identity[T matrix.Float] struct{}

// Apply copies r into z.
func (Identity[T]) Apply(z, r matrix.Vector[T]) error {
	return z.CopyFrom(r)
}

// IncompleteCholesky preconditions with the zero-fill factor L of A,
// solving L·y = r then Lᵀ·z = y.
type IncompleteCholesky[T matrix.Float] struct {
	l matrix.Matrix[T]
	y matrix.Vector[T]
}

// NewIncompleteCholesky factors a (see matrix.IncompleteCholesky).
func NewIncompleteCholesky[T matrix.Float](a matrix.Matrix[T]) (*IncompleteCholesky[T], error) {
	l, err := matrix.IncompleteCholesky(a)
	if err != nil {
		return nil, lnsErrorf(opPrecond, err)
	}

	return &IncompleteCholesky[T]{l: l, y: make(matrix.Vector[T], a.Rows())}, nil
}

// Factor returns L.
func (p *IncompleteCholesky[T]) Factor() matrix.Matrix[T] { return p.l }

// Apply computes z = (L·Lᵀ)⁻¹·r.
func (p *IncompleteCholesky[T]) Apply(z, r matrix.Vector[T]) error {
	if err := matrix.SolveLower(p.l, p.y, r); err != nil {
		return err
	}

	return matrix.SolveLowerTransposed(p.l, z, p.y)
}

// InverseCholesky preconditions with explicit inverse factors: z = L⁻ᵀ·(L⁻¹·r).
// Setup is expensive (matrix.LowerTriangularInvert); each Apply is two MulVecs.
type InverseCholesky[T matrix.Float] struct {
	linv  matrix.Matrix[T]
	linvT matrix.Matrix[T]
	y     matrix.Vector[T]
}

// NewInverseCholesky factors a and inverts the factor.
func NewInverseCholesky[T matrix.Float](a matrix.Matrix[T]) (*InverseCholesky[T], error) {
	l, err := matrix.IncompleteCholesky(a)
	if err != nil {
		return nil, lnsErrorf(opPrecond, err)
	}
	linv, err := matrix.LowerTriangularInvert(l)
	if err != nil {
		return nil, lnsErrorf(opPrecond, err)
	}
	linvT, err := matrix.Transpose(linv)
	if err != nil {
		return nil, lnsErrorf(opPrecond, err)
	}

	return &InverseCholesky[T]{linv: linv, linvT: linvT, y: make(matrix.Vector[T], a.Rows())}, nil
}

// Apply computes z = L⁻ᵀ·(L⁻¹·r).
func (p *InverseCholesky[T]) Apply(z, r matrix.Vector[T]) error {
	if err := p.linv.MulVecTo(p.y, r); err != nil {
		return err
	}

	return p.linvT.MulVecTo(z, p.y)
}

package domain

import (
	"errors"
	"sync"

	"github.com/nulltea/evaldomain/core"
	"github.com/zeebo/errs"
)

// Error is the error class of the domain package.
var Error = errs.Class("domain")

// ErrPolynomialDegreeTooLarge is returned when the field has no root of unity of
// the order a domain of the requested size needs.
var ErrPolynomialDegreeTooLarge = errors.New("polynomial degree too large")

type omegaKey struct {
	modulus uint64
	root    uint64
	exp     int
}

// omegas caches the primitive 2^exp-th roots of unity per field.
var omegas sync.Map

// ComputeOmega returns the smallest m = 2^exp >= d together with a primitive
// m-th root of unity omega = w^(2^(S-exp)), w being the field's root of unity of
// order 2^S. It fails when exp would exceed S.
func ComputeOmega(field *core.PrimeField, d int) (m int, exp int, omega core.Element, err error) {
	s := field.TwoAdicity()

	m = 1
	for m < d {
		m <<= 1
		exp++

		// The field may not be able to support large enough radix-2 domains.
		if exp > s {
			return 0, 0, core.Element{}, Error.Wrap(ErrPolynomialDegreeTooLarge)
		}
	}

	root := field.RootOfUnity()
	key := omegaKey{modulus: field.Modulus(), root: root.Uint64(), exp: exp}
	if cached, ok := omegas.Load(key); ok {
		return m, exp, cached.(core.Element), nil
	}

	omega = field.Exp(root, uint64(1)<<(s-exp))
	omegas.Store(key, omega)

	return m, exp, omega, nil
}

// Package domain implements radix-2 evaluation domains: a power-of-two buffer of
// field elements together with the roots of unity needed to move it between
// coefficient form and evaluation form.
//
// An EvaluationDomain carries no form tag. Whether its buffer holds
// coefficients, values on the roots of unity or values on the coset
// g·{roots of unity} is tracked by the caller through the order of the calls:
// FFT, then pointwise arithmetic, then IFFT (or the coset equivalents).
// Calling an operation on the wrong form yields meaningless values. Tagged
// wraps a domain and checks the form on every call.
//
// A domain is not safe for concurrent use. Its methods fan out on the lanes of
// the engine's pool and return once all the work is done.
package domain

import (
	"fmt"

	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/fft"
)

type EvaluationDomain struct {
	engine *fft.Engine

	coeffs   []core.Element
	d        int
	exp      int
	omega    core.Element
	omegainv core.Element
	geninv   core.Element
	minv     core.Element
}

// FromCoeffs builds the smallest domain holding coeffs, zero-padded up to the
// next power of two. The input slice is copied.
func FromCoeffs(engine *fft.Engine, coeffs []core.Element) (*EvaluationDomain, error) {
	m, exp, omega, err := ComputeOmega(engine.Field(), len(coeffs))
	if err != nil {
		return nil, err
	}

	buf := make([]core.Element, m)
	copy(buf, coeffs)

	core.Logger().V(2).Info("evaluation domain", "len", len(coeffs), "size", m, "exp", exp)

	return New(engine, buf, m, exp, omega), nil
}

// New builds a domain from known metadata. The inverses of omega, the field
// generator and d are recomputed rather than taken from the caller.
// It panics if len(coeffs) != d or d != 2^exp.
func New(engine *fft.Engine, coeffs []core.Element, d, exp int, omega core.Element) *EvaluationDomain {
	if d != 1<<exp || len(coeffs) != d {
		panic(fmt.Sprintf("invalid domain shape: len %d, d %d, exp %d", len(coeffs), d, exp))
	}

	field := engine.Field()

	return &EvaluationDomain{
		engine:   engine,
		coeffs:   coeffs,
		d:        d,
		exp:      exp,
		omega:    omega,
		omegainv: mustInverse(field, omega),
		geninv:   mustInverse(field, field.Generator()),
		minv:     mustInverse(field, field.NewElement(uint64(d))),
	}
}

// mustInverse inverts metadata the construction guarantees to be non-zero.
func mustInverse(field *core.PrimeField, x core.Element) core.Element {
	inv, err := field.Inverse(x)
	if err != nil {
		panic(fmt.Sprintf("domain metadata is not invertible: %v", err))
	}
	return inv
}

// CloneWithDifferentCoeffs returns a domain sharing d's metadata with coeffs as
// its buffer.
func (d *EvaluationDomain) CloneWithDifferentCoeffs(coeffs []core.Element) *EvaluationDomain {
	clone := *d
	clone.coeffs = coeffs
	return &clone
}

// IntoCoeffs hands the buffer over to the caller. Afterwards only the metadata
// accessors and Z may be used on d.
func (d *EvaluationDomain) IntoCoeffs() []core.Element {
	coeffs := d.coeffs
	d.coeffs = nil
	return coeffs
}

// Coeffs returns the buffer, modifications are visible to d.
func (d *EvaluationDomain) Coeffs() []core.Element {
	return d.coeffs
}

func (d *EvaluationDomain) Len() int {
	return len(d.coeffs)
}

// Size returns the domain size m.
func (d *EvaluationDomain) Size() int {
	return d.d
}

// Exp returns log2 of the domain size.
func (d *EvaluationDomain) Exp() int {
	return d.exp
}

// Omega returns the primitive m-th root of unity of the domain.
func (d *EvaluationDomain) Omega() core.Element {
	return d.omega
}

// FFT maps coefficients to values on the roots of unity.
func (d *EvaluationDomain) FFT() {
	d.engine.FFT(d.coeffs, d.omega, d.exp)
}

// IFFT maps values on the roots of unity back to coefficients.
func (d *EvaluationDomain) IFFT() {
	d.engine.FFT(d.coeffs, d.omegainv, d.exp)
	d.engine.Scale(d.coeffs, d.minv)
}

// DistributePowers multiplies the i-th element by g^i.
func (d *EvaluationDomain) DistributePowers(g core.Element) {
	d.engine.DistributePowers(d.coeffs, g)
}

// CosetFFT maps coefficients to values on the coset generator·{roots of unity}.
func (d *EvaluationDomain) CosetFFT() {
	d.DistributePowers(d.engine.Field().Generator())
	d.FFT()
}

// ICosetFFT is the inverse of CosetFFT.
func (d *EvaluationDomain) ICosetFFT() {
	d.IFFT()
	d.DistributePowers(d.geninv)
}

// Z evaluates the vanishing polynomial of the domain, tau^m - 1.
func (d *EvaluationDomain) Z(tau core.Element) core.Element {
	field := d.engine.Field()
	return field.Sub(field.Exp(tau, uint64(d.d)), core.One())
}

// DivideByZOnCoset multiplies every value by Z(generator)^-1.
//
// The buffer must hold the values, on the coset, of a numerator that vanishes
// on every root of unity of the domain. x^m on the coset generator·{ω^i} is the
// constant generator^m, so the vanishing polynomial is the constant
// Z(generator) there and ICosetFFT then returns the coefficients of the exact
// quotient. None of this is checked: on any other input the result is not a
// quotient. This is not a general polynomial division.
func (d *EvaluationDomain) DivideByZOnCoset() {
	i := mustInverse(d.engine.Field(), d.Z(d.engine.Field().Generator()))
	d.engine.Scale(d.coeffs, i)
}

// MulAssign multiplies the values of d by the values of other, both in the
// same evaluation form. It panics if the lengths differ.
func (d *EvaluationDomain) MulAssign(other *EvaluationDomain) {
	d.engine.MulAssign(d.coeffs, other.coeffs)
}

// SubAssign subtracts other from d. It panics if the lengths differ.
func (d *EvaluationDomain) SubAssign(other *EvaluationDomain) {
	d.engine.SubAssign(d.coeffs, other.coeffs)
}

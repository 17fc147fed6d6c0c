package core

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/zeebo/errs"
)

// Error is the error class of the core package.
var Error = errs.Class("core")

// ErrNotInvertible is returned when inverting the additive identity.
var ErrNotInvertible = errors.New("element is not invertible")

// Field moduli used across the repository.
const (
	// Modulus57 = 2^57 - 2^18 + 1, two-adicity 18.
	Modulus57 = 144115188075593729
	// Modulus26 = 0x3ee0001, two-adicity 17.
	Modulus26 = 0x3ee0001
)

// minRingDegree is the smallest degree accepted by ring.NewSubRing, the ring
// itself is only used for its modulus and reduction constants.
const minRingDegree = 16

// FieldLiteral is the parameter set describing a PrimeField.
//
// Mandatory:
//   - Modulus: a prime q < 2^61
//
// Optional:
//   - Generator: a primitive root mod q. Default: the smallest primitive root.
//   - Factors: the unique prime factors of q-1, skips the factorization of q-1.
type FieldLiteral struct {
	Modulus   uint64
	Generator uint64
	Factors   []uint64
}

// PrimeField implements the arithmetic of Z/qZ on canonical Elements.
type PrimeField struct {
	r *ring.SubRing

	generator   Element
	twoAdicity  int
	rootOfUnity Element
	factors     []uint64
}

// NewPrimeField returns the field of the given prime modulus with the
// smallest primitive root as its multiplicative generator.
func NewPrimeField(modulus uint64) (*PrimeField, error) {
	return NewPrimeFieldFromLiteral(FieldLiteral{Modulus: modulus})
}

func NewPrimeFieldFromLiteral(lit FieldLiteral) (*PrimeField, error) {
	if lit.Modulus < 3 || !ring.IsPrime(lit.Modulus) {
		return nil, Error.New("invalid modulus: %d is not an odd prime", lit.Modulus)
	}

	if bits.Len64(lit.Modulus) > 61 {
		return nil, Error.New("invalid modulus: %d exceeds 61 bits", lit.Modulus)
	}

	r, err := ring.NewSubRing(minRingDegree, lit.Modulus)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	f := &PrimeField{r: r}
	if err := f.generateConstants(lit); err != nil {
		return nil, Error.Wrap(err)
	}

	return f, nil
}

func (f *PrimeField) generateConstants(lit FieldLiteral) (err error) {
	q := f.r.Modulus

	var g uint64
	if g, f.factors, err = ring.PrimitiveRoot(q, lit.Factors); err != nil {
		return
	}

	// A caller supplied generator must still be a primitive root.
	if lit.Generator != 0 {
		if err = ring.CheckPrimitiveRoot(lit.Generator, q, f.factors); err != nil {
			return fmt.Errorf("invalid generator %d: %w", lit.Generator, err)
		}
		g = lit.Generator
	}

	f.generator = NewElement(g)
	f.twoAdicity = bits.TrailingZeros64(q - 1)
	f.rootOfUnity = NewElement(ring.ModExp(g, (q-1)>>f.twoAdicity, q))

	return nil
}

// Modulus returns q.
func (f *PrimeField) Modulus() uint64 {
	return f.r.Modulus
}

// TwoAdicity returns S, the largest integer such that 2^S divides q-1.
func (f *PrimeField) TwoAdicity() int {
	return f.twoAdicity
}

// Generator returns the multiplicative generator of the field.
func (f *PrimeField) Generator() Element {
	return f.generator
}

// RootOfUnity returns a primitive root of unity of order exactly 2^S.
func (f *PrimeField) RootOfUnity() Element {
	return f.rootOfUnity
}

// Factors returns the unique prime factors of q-1.
func (f *PrimeField) Factors() []uint64 {
	return append([]uint64(nil), f.factors...)
}

// Literal returns the FieldLiteral reconstructing f without factoring q-1.
func (f *PrimeField) Literal() FieldLiteral {
	return FieldLiteral{
		Modulus:   f.r.Modulus,
		Generator: f.generator[0],
		Factors:   f.Factors(),
	}
}

// NewElement returns v mod q.
func (f *PrimeField) NewElement(v uint64) Element {
	return Element{v % f.r.Modulus}
}

// IsCanonical reports whether x is in [0, q).
func (f *PrimeField) IsCanonical(x *Element) bool {
	return x[0] < f.r.Modulus
}

// Mul z = x * y (mod q)
func (f *PrimeField) Mul(x, y Element) Element {
	var z Element
	f.MulAssign(&x, &y, &z)
	return z
}

func (f *PrimeField) MulAssign(x, y, z *Element) {
	z[0] = ring.BRed(x[0], y[0], f.r.Modulus, f.r.BRedConstant)
}

// Add z = x + y (mod q)
func (f *PrimeField) Add(x, y Element) Element {
	var z Element
	f.AddAssign(&x, &y, &z)
	return z
}

func (f *PrimeField) AddAssign(x, y, z *Element) {
	z[0] = ring.CRed(x[0]+y[0], f.r.Modulus)
}

// Sub z = x - y (mod q)
func (f *PrimeField) Sub(x, y Element) Element {
	var z Element
	f.SubAssign(&x, &y, &z)
	return z
}

func (f *PrimeField) SubAssign(x, y, z *Element) {
	z[0] = ring.CRed(x[0]+f.r.Modulus-y[0], f.r.Modulus)
}

// Neg z = q - x
func (f *PrimeField) Neg(x Element) Element {
	var z Element
	f.NegAssign(&x, &z)
	return z
}

func (f *PrimeField) NegAssign(x, z *Element) {
	if x.IsZero() {
		z.SetZero()
		return
	}
	z[0] = f.r.Modulus - x[0]
}

// Exp z = x^e (mod q)
func (f *PrimeField) Exp(x Element, e uint64) Element {
	return Element{ring.ModExp(x[0], e, f.r.Modulus)}
}

// Inverse z = x^(q-2) (mod q), fails on zero.
func (f *PrimeField) Inverse(x Element) (Element, error) {
	if x.IsZero() {
		return Element{}, Error.Wrap(ErrNotInvertible)
	}
	return f.Exp(x, f.r.Modulus-2), nil
}

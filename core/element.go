package core

import (
	"encoding/binary"
	"fmt"
)

// Element represents a field element stored on 1 words (uint64)
//
// Element values are always kept in canonical form, that is in [0, q) for the
// modulus q of the PrimeField they were produced by. Arithmetic lives on the
// PrimeField since the modulus is a runtime parameter.
//
// # Warning
//
// This code has not been audited and is provided as-is. In particular, there is no security guarantees such as constant time implementation or side-channel attack resistance.
type Element [1]uint64

// ElementBytes is the number of bytes needed to represent an Element.
const ElementBytes = 8

// NewElement returns a new Element from a uint64 value.
// The value is not reduced; use PrimeField.NewElement for arbitrary inputs.
func NewElement(v uint64) Element {
	return Element{v}
}

func Zero() Element {
	return Element{0}
}

// One returns 1
func One() Element {
	return Element{1}
}

// SetZero z = 0
func (z *Element) SetZero() *Element {
	z[0] = 0
	return z
}

// Equal returns z == x; constant-time
func (z *Element) Equal(x *Element) bool {
	return z.NotEqual(x) == 0
}

// NotEqual returns 0 if and only if z == x; constant-time
func (z *Element) NotEqual(x *Element) uint64 {
	return (z[0] ^ x[0])
}

// IsZero returns z == 0
func (z *Element) IsZero() bool {
	return (z[0]) == 0
}

// Uint64 returns the uint64 representation of z.
func (z *Element) Uint64() uint64 {
	return z[0]
}

// ToBytes returns the little-endian encoding of z on ElementBytes bytes.
func (z *Element) ToBytes() []byte {
	res := make([]byte, ElementBytes)
	binary.LittleEndian.PutUint64(res, z[0])
	return res
}

// SetBytes sets z from its little-endian encoding. It does not check that the
// value is reduced.
func (z *Element) SetBytes(b []byte) *Element {
	if len(b) != ElementBytes {
		panic(fmt.Sprintf("invalid element encoding: %d bytes, expected %d", len(b), ElementBytes))
	}
	z[0] = binary.LittleEndian.Uint64(b)
	return z
}

// String returns the decimal representation of z as a string.
func (z Element) String() string {
	return fmt.Sprintf("%d", z[0])
}

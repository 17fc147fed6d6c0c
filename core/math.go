package core

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns floor(log2(n)) and 0 for n <= 1.
func Log2[T constraints.Integer](n T) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(uint64(n)) - 1
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo[T constraints.Integer](n T) T {
	p := T(1)
	for p < n {
		p <<= 1
	}
	return p
}

// InnerProduct returns <v, r>.
func InnerProduct(v, r []Element, field *PrimeField) Element {
	if len(v) != len(r) {
		panic("vector lengths do not match")
	}

	sum := Zero()

	for i := 0; i < len(v); i++ {
		var product Element
		field.MulAssign(&v[i], &r[i], &product)
		field.AddAssign(&sum, &product, &sum)
	}

	return sum
}

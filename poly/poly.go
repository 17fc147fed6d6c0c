// Package poly holds the coefficient representation of polynomials and the
// operations that go through an evaluation domain.
package poly

import (
	"github.com/nulltea/evaldomain/core"
)

// DensePoly is a polynomial given by its coefficients, lowest degree first.
type DensePoly struct {
	Coefficients []core.Element
}

func NewDensePoly(coefficients []core.Element) *DensePoly {
	return &DensePoly{
		Coefficients: coefficients,
	}
}

// Degree returns the index of the highest non-zero coefficient, and 0 for the
// zero polynomial.
func (p *DensePoly) Degree() int {
	for i := len(p.Coefficients) - 1; i > 0; i-- {
		if !p.Coefficients[i].IsZero() {
			return i
		}
	}
	return 0
}

// IsZero reports whether every coefficient is zero.
func (p *DensePoly) IsZero() bool {
	for i := range p.Coefficients {
		if !p.Coefficients[i].IsZero() {
			return false
		}
	}
	return true
}

// Trim drops the zero coefficients above the degree.
func (p *DensePoly) Trim() *DensePoly {
	if p.IsZero() {
		p.Coefficients = p.Coefficients[:0]
		return p
	}
	p.Coefficients = p.Coefficients[:p.Degree()+1]
	return p
}

// Equal compares p and q as polynomials, ignoring zero coefficients above the degree.
func (p *DensePoly) Equal(q *DensePoly) bool {
	a, b := p.Coefficients, q.Coefficients
	if len(a) < len(b) {
		a, b = b, a
	}
	for i := range a {
		var y core.Element
		if i < len(b) {
			y = b[i]
		}
		if !a[i].Equal(&y) {
			return false
		}
	}
	return true
}

// Evaluate computes the value of the polynomial at the given point using Horner's method
func (p *DensePoly) Evaluate(field *core.PrimeField, point core.Element) core.Element {
	result := core.Zero()

	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		field.MulAssign(&result, &point, &result)
		field.AddAssign(&result, &p.Coefficients[i], &result)
	}

	return result
}

// Add returns p + q.
func (p *DensePoly) Add(field *core.PrimeField, q *DensePoly) *DensePoly {
	return p.combine(q, field.AddAssign)
}

// Sub returns p - q.
func (p *DensePoly) Sub(field *core.PrimeField, q *DensePoly) *DensePoly {
	return p.combine(q, field.SubAssign)
}

func (p *DensePoly) combine(q *DensePoly, op func(x, y, z *core.Element)) *DensePoly {
	n := max(len(p.Coefficients), len(q.Coefficients))
	res := make([]core.Element, n)
	for i := range res {
		var x, y core.Element
		if i < len(p.Coefficients) {
			x = p.Coefficients[i]
		}
		if i < len(q.Coefficients) {
			y = q.Coefficients[i]
		}
		op(&x, &y, &res[i])
	}
	return NewDensePoly(res)
}

// Mul returns p * q by schoolbook multiplication.
func (p *DensePoly) Mul(field *core.PrimeField, q *DensePoly) *DensePoly {
	if len(p.Coefficients) == 0 || len(q.Coefficients) == 0 {
		return NewDensePoly(nil)
	}

	res := make([]core.Element, len(p.Coefficients)+len(q.Coefficients)-1)
	var t core.Element
	for i := range p.Coefficients {
		for j := range q.Coefficients {
			field.MulAssign(&p.Coefficients[i], &q.Coefficients[j], &t)
			field.AddAssign(&res[i+j], &t, &res[i+j])
		}
	}

	return NewDensePoly(res)
}

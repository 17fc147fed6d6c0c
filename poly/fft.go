package poly

import (
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
)

// ToDomain builds an evaluation domain in coefficient form holding p.
func (p *DensePoly) ToDomain(engine *fft.Engine) (*domain.EvaluationDomain, error) {
	return domain.FromCoeffs(engine, p.Coefficients)
}

// FromDomain consumes a domain in coefficient form.
func FromDomain(d *domain.EvaluationDomain) *DensePoly {
	return NewDensePoly(d.IntoCoeffs())
}

// FFTMul returns p * q computed with two forward transforms, a pointwise
// product and one inverse transform over a domain of size >= deg(p)+deg(q)+1.
func (p *DensePoly) FFTMul(engine *fft.Engine, q *DensePoly) (*DensePoly, error) {
	if len(p.Coefficients) == 0 || len(q.Coefficients) == 0 {
		return NewDensePoly(nil), nil
	}

	n := len(p.Coefficients) + len(q.Coefficients) - 1

	a, err := domain.FromCoeffs(engine, padded(p.Coefficients, n))
	if err != nil {
		return nil, err
	}
	b := a.CloneWithDifferentCoeffs(padded(q.Coefficients, a.Len()))

	a.FFT()
	b.FFT()
	a.MulAssign(b)
	a.IFFT()

	return NewDensePoly(a.IntoCoeffs()[:n]), nil
}

func padded(coeffs []core.Element, n int) []core.Element {
	buf := make([]core.Element, n)
	copy(buf, coeffs)
	return buf
}

package poly

import (
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
	"go.opentelemetry.io/otel/attribute"
)

// DivideByVanishing returns numerator / (x^m - 1) for a numerator of degree
// less than 2m that is divisible by x^m - 1, i.e. that vanishes on the m-th
// roots of unity. m must be a power of two.
//
// On the coset g·{ω^i} of size m, x^m is the constant g^m, so the numerator is
// folded to N_lo + g^m·N_hi before the coset transform and the division is a
// single scaling. The result is meaningless when the numerator is not
// divisible, see CheckQuotient.
func DivideByVanishing(engine *fft.Engine, numerator *DensePoly, m int) (*DensePoly, error) {
	if !core.IsPowerOfTwo(m) {
		return nil, domain.Error.New("vanishing polynomial degree %d is not a power of two", m)
	}
	if len(numerator.Coefficients) > 2*m {
		return nil, domain.Error.New("numerator has %d coefficients, at most %d supported for x^%d - 1", len(numerator.Coefficients), 2*m, m)
	}

	size, exp, omega, err := domain.ComputeOmega(engine.Field(), m)
	if err != nil {
		return nil, err
	}

	span := core.StartSpan("divide by vanishing", nil)
	defer span.End()
	span.SetAttributes(attribute.Int("m", m), attribute.Int("numerator.len", len(numerator.Coefficients)))

	field := engine.Field()
	gm := field.Exp(field.Generator(), uint64(m))

	folded := make([]core.Element, m)
	copy(folded, numerator.Coefficients)
	var t core.Element
	for j := m; j < len(numerator.Coefficients); j++ {
		field.MulAssign(&numerator.Coefficients[j], &gm, &t)
		field.AddAssign(&folded[j-m], &t, &folded[j-m])
	}

	d := domain.New(engine, folded, size, exp, omega)
	d.CosetFFT()
	d.DivideByZOnCoset()
	d.ICosetFFT()

	return FromDomain(d), nil
}

// CheckQuotient tests numerator == quotient * (x^m - 1) at a point drawn from
// the transcript after absorbing both polynomials.
func CheckQuotient(field *core.PrimeField, numerator, quotient *DensePoly, m int, transcript *core.Transcript) bool {
	transcript.AppendUint64("vanishing_degree", uint64(m))
	transcript.AppendFields("numerator", numerator.Coefficients)
	transcript.AppendFields("quotient", quotient.Coefficients)

	tau := transcript.SampleField("tau", field)

	lhs := numerator.Evaluate(field, tau)
	z := field.Sub(field.Exp(tau, uint64(m)), core.One())
	rhs := field.Mul(quotient.Evaluate(field, tau), z)

	core.Logger().V(2).Info("quotient check", "m", m, "tau", tau.String())

	return lhs.Equal(&rhs)
}

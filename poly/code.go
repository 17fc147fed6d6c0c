package poly

import (
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
)

// Encode returns the Reed-Solomon codeword of row at rate 1/rhoInv: row is read
// as coefficients, zero-padded to the next power of two >= len(row)*rhoInv and
// evaluated on the roots of unity.
func Encode(engine *fft.Engine, row []core.Element, rhoInv int) ([]core.Element, error) {
	if len(row) == 0 {
		return nil, domain.Error.New("row is empty")
	}
	if !core.IsPowerOfTwo(rhoInv) {
		return nil, domain.Error.New("inverse rate %d is not a power of two", rhoInv)
	}

	m, exp, omega, err := domain.ComputeOmega(engine.Field(), len(row)*rhoInv)
	if err != nil {
		return nil, err
	}

	d := domain.New(engine, padded(row, m), m, exp, omega)
	d.FFT()

	return d.IntoCoeffs(), nil
}

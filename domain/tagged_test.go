package domain_test

import (
	"errors"
	"testing"

	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/stretchr/testify/require"
)

func TestTagged(t *testing.T) {
	engine := testEngines(t)[1]
	field := engine.Field()
	v := core.MustRandomElements(field, 16, 3)

	newTagged := func(coeffs []core.Element) *domain.Tagged {
		d, err := domain.FromCoeffs(engine, coeffs)
		require.NoError(t, err)
		return domain.NewTagged(d)
	}

	t.Run("Transitions", func(t *testing.T) {
		a := newTagged(v)
		require.Equal(t, domain.Coefficients, a.Form())

		require.NoError(t, a.FFT())
		require.Equal(t, domain.Values, a.Form())
		require.NoError(t, a.IFFT())
		require.Equal(t, domain.Coefficients, a.Form())

		require.NoError(t, a.CosetFFT())
		require.Equal(t, domain.CosetValues, a.Form())
		require.NoError(t, a.DivideByZOnCoset())
		require.Equal(t, domain.CosetValues, a.Form())
		require.NoError(t, a.ICosetFFT())
		require.Equal(t, domain.Coefficients, a.Form())
	})

	t.Run("WrongForm", func(t *testing.T) {
		a := newTagged(v)

		for _, err := range []error{a.IFFT(), a.ICosetFFT(), a.DivideByZOnCoset()} {
			require.True(t, errors.Is(err, domain.ErrWrongForm))
			require.True(t, domain.Error.Has(err))
		}

		b := newTagged(v)
		require.True(t, errors.Is(a.MulAssign(b), domain.ErrWrongForm))

		require.NoError(t, a.FFT())
		require.True(t, errors.Is(a.FFT(), domain.ErrWrongForm))
		require.True(t, errors.Is(a.CosetFFT(), domain.ErrWrongForm))
		require.True(t, errors.Is(a.SubAssign(b), domain.ErrWrongForm))

		_, err := a.IntoCoeffs()
		require.True(t, errors.Is(err, domain.ErrWrongForm))

		require.NoError(t, b.CosetFFT())
		require.True(t, errors.Is(a.MulAssign(b), domain.ErrWrongForm))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		a, b := newTagged(v), newTagged(v[:8])
		require.NoError(t, a.FFT())
		require.NoError(t, b.FFT())

		err := a.MulAssign(b)
		require.Error(t, err)
		require.False(t, errors.Is(err, domain.ErrWrongForm))
	})

	t.Run("Product", func(t *testing.T) {
		x := core.MustRandomElements(field, 4, 1)
		y := core.MustRandomElements(field, 4, 2)
		a := newTagged(append(x, make([]core.Element, 4)...))
		b := newTagged(append(y, make([]core.Element, 4)...))

		require.NoError(t, a.CosetFFT())
		require.NoError(t, b.CosetFFT())
		require.NoError(t, a.MulAssign(b))
		require.NoError(t, a.ICosetFFT())

		coeffs, err := a.IntoCoeffs()
		require.NoError(t, err)
		require.Equal(t, schoolbook(field, x, y), coeffs[:7])
		require.True(t, coeffs[7].IsZero())
	})

	require.Equal(t, "coset values", domain.CosetValues.String())
	require.Equal(t, "Form(7)", domain.Form(7).String())
}

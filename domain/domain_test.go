package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
	"github.com/stretchr/testify/require"
)

func testString(opname string, engine *fft.Engine, logN int) string {
	return fmt.Sprintf("%s/q=%d/lanes=%d/logN=%d", opname, engine.Field().Modulus(), engine.Pool().Lanes(), logN)
}

func testEngines(t testing.TB) []*fft.Engine {
	var engines []*fft.Engine
	for _, q := range []uint64{core.Modulus57, core.Modulus26} {
		field, err := core.NewPrimeField(q)
		require.NoError(t, err)
		for _, lanes := range []int{1, 4} {
			engines = append(engines, fft.NewEngine(field, fft.NewPool(lanes)))
		}
	}
	return engines
}

func TestComputeOmega(t *testing.T) {
	for _, engine := range testEngines(t) {
		if engine.Pool().Lanes() != 1 {
			continue
		}
		field := engine.Field()
		one := core.One()

		t.Run(testString("Sizing", engine, 0), func(t *testing.T) {
			for _, d := range []int{0, 1, 2, 3, 4, 5, 17, 255, 256, 257, 1000, 1 << 12} {
				m, exp, omega, err := domain.ComputeOmega(field, d)
				require.NoError(t, err)

				require.Equal(t, 1<<exp, m)
				require.GreaterOrEqual(t, m, d)
				if m > 1 {
					require.Less(t, m/2, d)
				}

				x := field.Exp(omega, uint64(m))
				require.True(t, x.Equal(&one))
				if m > 1 {
					x = field.Exp(omega, uint64(m/2))
					require.False(t, x.Equal(&one))
				}

				// cached result
				_, _, again, err := domain.ComputeOmega(field, d)
				require.NoError(t, err)
				require.Equal(t, omega, again)
			}
		})

		t.Run(testString("Boundary", engine, field.TwoAdicity()), func(t *testing.T) {
			s := field.TwoAdicity()

			m, exp, _, err := domain.ComputeOmega(field, 1<<(s-1))
			require.NoError(t, err)
			require.Equal(t, s-1, exp)
			require.Equal(t, 1<<(s-1), m)

			m, exp, omega, err := domain.ComputeOmega(field, 1<<s)
			require.NoError(t, err)
			require.Equal(t, s, exp)
			require.Equal(t, 1<<s, m)
			require.Equal(t, field.RootOfUnity(), omega)

			_, _, _, err = domain.ComputeOmega(field, 1<<s+1)
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrPolynomialDegreeTooLarge))
			require.True(t, domain.Error.Has(err))

			_, err = domain.FromCoeffs(engine, make([]core.Element, 1<<s+1))
			require.True(t, errors.Is(err, domain.ErrPolynomialDegreeTooLarge))
		})
	}
}

func TestEvaluationDomain(t *testing.T) {
	for _, engine := range testEngines(t) {
		testFromCoeffs(engine, t)
		testRoundTrip(engine, t)
		testCosetRoundTrip(engine, t)
		testZ(engine, t)
		testDivideByZOnCoset(engine, t)
		testClone(engine, t)
	}
}

func testFromCoeffs(engine *fft.Engine, t *testing.T) {
	t.Run(testString("FromCoeffs", engine, 3), func(t *testing.T) {
		field := engine.Field()
		coeffs := core.MustRandomElements(field, 5, 1)

		d, err := domain.FromCoeffs(engine, coeffs)
		require.NoError(t, err)
		require.Equal(t, 8, d.Len())
		require.Equal(t, 8, d.Size())
		require.Equal(t, 3, d.Exp())
		require.Equal(t, coeffs, d.Coeffs()[:5])
		for _, c := range d.Coeffs()[5:] {
			require.True(t, c.IsZero())
		}

		// the input is copied
		d.Coeffs()[0] = field.Add(d.Coeffs()[0], core.One())
		require.NotEqual(t, coeffs[0], d.Coeffs()[0])

		out := d.IntoCoeffs()
		require.Len(t, out, 8)
		require.Nil(t, d.Coeffs())
	})

	t.Run(testString("New/InvalidShape", engine, 3), func(t *testing.T) {
		require.Panics(t, func() { domain.New(engine, make([]core.Element, 6), 8, 3, core.One()) })
		require.Panics(t, func() { domain.New(engine, make([]core.Element, 6), 6, 3, core.One()) })
	})
}

func testRoundTrip(engine *fft.Engine, t *testing.T) {
	for _, logN := range []int{0, 1, 2, 5, 8, 11} {
		t.Run(testString("RoundTrip", engine, logN), func(t *testing.T) {
			field := engine.Field()
			v := core.MustRandomElements(field, 1<<logN, uint64(logN))

			d, err := domain.FromCoeffs(engine, v)
			require.NoError(t, err)

			d.FFT()
			d.IFFT()
			require.Equal(t, v, d.Coeffs())

			d.IFFT()
			d.FFT()
			require.Equal(t, v, d.Coeffs())
		})
	}

	t.Run(testString("RoundTrip/Values", engine, 4), func(t *testing.T) {
		field := engine.Field()
		v := core.MustRandomElements(field, 16, 99)
		d, err := domain.FromCoeffs(engine, v)
		require.NoError(t, err)

		d.FFT()
		omega := d.Omega()
		for i := range d.Coeffs() {
			var acc core.Element
			for j := range v {
				acc = field.Add(acc, field.Mul(v[j], field.Exp(omega, uint64(i*j))))
			}
			require.Equal(t, acc, d.Coeffs()[i])
		}
	})
}

func testCosetRoundTrip(engine *fft.Engine, t *testing.T) {
	for _, logN := range []int{0, 3, 7, 10} {
		t.Run(testString("CosetRoundTrip", engine, logN), func(t *testing.T) {
			field := engine.Field()
			v := core.MustRandomElements(field, 1<<logN, uint64(100+logN))

			d, err := domain.FromCoeffs(engine, v)
			require.NoError(t, err)

			d.CosetFFT()
			d.ICosetFFT()
			require.Equal(t, v, d.Coeffs())

			d.ICosetFFT()
			d.CosetFFT()
			require.Equal(t, v, d.Coeffs())
		})
	}

	t.Run(testString("CosetFFT/Values", engine, 3), func(t *testing.T) {
		field := engine.Field()
		v := core.MustRandomElements(field, 8, 5)
		d, err := domain.FromCoeffs(engine, v)
		require.NoError(t, err)

		d.CosetFFT()
		g, omega := field.Generator(), d.Omega()
		for i := range d.Coeffs() {
			x := field.Mul(g, field.Exp(omega, uint64(i)))
			require.Equal(t, horner(field, v, x), d.Coeffs()[i])
		}
	})
}

func testZ(engine *fft.Engine, t *testing.T) {
	t.Run(testString("Z", engine, 6), func(t *testing.T) {
		field := engine.Field()
		d, err := domain.FromCoeffs(engine, make([]core.Element, 64))
		require.NoError(t, err)

		for _, tau := range core.MustRandomElements(field, 8, 6) {
			require.Equal(t, field.Sub(field.Exp(tau, 64), core.One()), d.Z(tau))
		}

		omega := d.Omega()
		for i := 0; i < 64; i++ {
			z := d.Z(field.Exp(omega, uint64(i)))
			require.True(t, z.IsZero(), i)
		}

		z := d.Z(field.Generator())
		require.False(t, z.IsZero())
	})
}

func testDivideByZOnCoset(engine *fft.Engine, t *testing.T) {
	t.Run(testString("DivideByZOnCoset/Folded", engine, 5), func(t *testing.T) {
		field := engine.Field()
		m := 32

		// numerator = q * (x^m - 1)
		q := core.MustRandomElements(field, m, 8)
		numerator := make([]core.Element, 2*m)
		for i := range q {
			numerator[i] = field.Neg(q[i])
			numerator[i+m] = q[i]
		}

		d, err := domain.FromCoeffs(engine, foldHigh(field, numerator, m))
		require.NoError(t, err)
		require.Equal(t, m, d.Len())

		d.CosetFFT()
		d.DivideByZOnCoset()
		d.ICosetFFT()
		require.Equal(t, q, d.Coeffs())
	})

	t.Run(testString("DivideByZOnCoset/Product", engine, 4), func(t *testing.T) {
		field := engine.Field()
		m := 16

		x := core.MustRandomElements(field, m, 20)
		y := core.MustRandomElements(field, m, 21)

		// c = x * y mod (x^m - 1), so x * y - c vanishes on the roots of unity
		a, err := domain.FromCoeffs(engine, x)
		require.NoError(t, err)
		b, err := domain.FromCoeffs(engine, y)
		require.NoError(t, err)
		a.FFT()
		b.FFT()
		a.MulAssign(b)
		a.IFFT()
		c := a.IntoCoeffs()

		a, err = domain.FromCoeffs(engine, x)
		require.NoError(t, err)
		b = a.CloneWithDifferentCoeffs(append([]core.Element(nil), y...))
		cd := a.CloneWithDifferentCoeffs(append([]core.Element(nil), c...))

		a.CosetFFT()
		b.CosetFFT()
		cd.CosetFFT()
		a.MulAssign(b)
		a.SubAssign(cd)
		a.DivideByZOnCoset()
		a.ICosetFFT()
		h := a.Coeffs()

		// h * (x^m - 1) == x * y - c
		want := schoolbook(field, x, y)
		for i := range c {
			want[i] = field.Sub(want[i], c[i])
		}
		got := make([]core.Element, 2*m)
		for i := range h {
			got[i] = field.Sub(got[i], h[i])
			got[i+m] = field.Add(got[i+m], h[i])
		}
		require.Equal(t, want, got[:2*m-1])
		require.True(t, got[2*m-1].IsZero())
	})
}

func schoolbook(field *core.PrimeField, x, y []core.Element) []core.Element {
	out := make([]core.Element, len(x)+len(y)-1)
	for i := range x {
		for j := range y {
			out[i+j] = field.Add(out[i+j], field.Mul(x[i], y[j]))
		}
	}
	return out
}

// foldHigh returns N_lo + g^m N_hi, which agrees with N on the coset of size m.
func foldHigh(field *core.PrimeField, n []core.Element, m int) []core.Element {
	gm := field.Exp(field.Generator(), uint64(m))
	out := append([]core.Element(nil), n[:m]...)
	for j := m; j < len(n); j++ {
		out[j-m] = field.Add(out[j-m], field.Mul(gm, n[j]))
	}
	return out
}

func testClone(engine *fft.Engine, t *testing.T) {
	t.Run(testString("CloneWithDifferentCoeffs", engine, 4), func(t *testing.T) {
		field := engine.Field()
		a, err := domain.FromCoeffs(engine, core.MustRandomElements(field, 16, 9))
		require.NoError(t, err)

		other := core.MustRandomElements(field, 16, 10)
		b := a.CloneWithDifferentCoeffs(other)
		require.Equal(t, a.Omega(), b.Omega())
		require.Equal(t, a.Exp(), b.Exp())
		require.Equal(t, other, b.Coeffs())
		require.NotEqual(t, a.Coeffs(), b.Coeffs())

		ad, err := a.MarshalBinary()
		require.NoError(t, err)
		bd, err := b.MarshalBinary()
		require.NoError(t, err)
		// identical headers
		require.Equal(t, ad[:8+4+4*8+8], bd[:8+4+4*8+8])
	})
}

func TestPointwise(t *testing.T) {
	for _, engine := range testEngines(t) {
		t.Run(testString("MulAssign", engine, 5), func(t *testing.T) {
			field := engine.Field()
			x := core.MustRandomElements(field, 32, 1)
			y := core.MustRandomElements(field, 32, 2)

			a, err := domain.FromCoeffs(engine, x)
			require.NoError(t, err)
			b, err := domain.FromCoeffs(engine, y)
			require.NoError(t, err)

			a.MulAssign(b)
			for i := range x {
				require.Equal(t, field.Mul(x[i], y[i]), a.Coeffs()[i])
			}

			a.SubAssign(b)
			for i := range x {
				require.Equal(t, field.Sub(field.Mul(x[i], y[i]), y[i]), a.Coeffs()[i])
			}

			c, err := domain.FromCoeffs(engine, x[:16])
			require.NoError(t, err)
			require.Panics(t, func() { a.MulAssign(c) })
			require.Panics(t, func() { a.SubAssign(c) })
		})
	}
}

func horner(field *core.PrimeField, coeffs []core.Element, x core.Element) core.Element {
	var acc core.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = field.Add(field.Mul(acc, x), coeffs[i])
	}
	return acc
}

func TestRoundTripMaxSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping maximal domain in short mode")
	}

	field, err := core.NewPrimeField(core.Modulus26)
	require.NoError(t, err)
	engine := fft.NewEngine(field, fft.NewPool(0))

	s := field.TwoAdicity()
	v := core.MustRandomElements(field, 1<<s, 1)

	d, err := domain.FromCoeffs(engine, v)
	require.NoError(t, err)
	require.Equal(t, s, d.Exp())

	d.FFT()
	d.IFFT()
	require.Equal(t, v, d.Coeffs())
}

func TestZAfterIntoCoeffs(t *testing.T) {
	engine := testEngines(t)[0]
	field := engine.Field()

	d, err := domain.FromCoeffs(engine, make([]core.Element, 16))
	require.NoError(t, err)
	d.IntoCoeffs()

	tau := field.NewElement(5)
	require.Equal(t, field.Sub(field.Exp(tau, 16), core.One()), d.Z(tau))
	require.Equal(t, 16, d.Size())
}

package domain

import (
	"errors"
	"fmt"

	"github.com/nulltea/evaldomain/core"
)

// ErrWrongForm is returned by Tagged when an operation is called on a buffer
// in a form it does not accept.
var ErrWrongForm = errors.New("wrong buffer form")

// Form is the interpretation of a domain buffer.
type Form int

const (
	// Coefficients of the polynomial, lowest degree first.
	Coefficients = Form(0)
	// Values of the polynomial on the roots of unity.
	Values = Form(1)
	// Values of the polynomial on the coset generator·{roots of unity}.
	CosetValues = Form(2)
)

func (f Form) String() string {
	switch f {
	case Coefficients:
		return "coefficients"
	case Values:
		return "values"
	case CosetValues:
		return "coset values"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Tagged is an EvaluationDomain that records the form of its buffer. Only the
// transforms change the form, and every operation checks it.
type Tagged struct {
	d    *EvaluationDomain
	form Form
}

// NewTagged builds a tagged domain in coefficient form.
func NewTagged(d *EvaluationDomain) *Tagged {
	return &Tagged{d: d, form: Coefficients}
}

// Form returns the current form of the buffer.
func (t *Tagged) Form() Form {
	return t.form
}

// Domain returns the underlying untagged domain.
func (t *Tagged) Domain() *EvaluationDomain {
	return t.d
}

func (t *Tagged) expect(op string, forms ...Form) error {
	for _, f := range forms {
		if t.form == f {
			return nil
		}
	}
	return Error.Wrap(fmt.Errorf("%w: %s on %s", ErrWrongForm, op, t.form))
}

func (t *Tagged) FFT() error {
	if err := t.expect("FFT", Coefficients); err != nil {
		return err
	}
	t.d.FFT()
	t.form = Values
	return nil
}

func (t *Tagged) IFFT() error {
	if err := t.expect("IFFT", Values); err != nil {
		return err
	}
	t.d.IFFT()
	t.form = Coefficients
	return nil
}

func (t *Tagged) CosetFFT() error {
	if err := t.expect("CosetFFT", Coefficients); err != nil {
		return err
	}
	t.d.CosetFFT()
	t.form = CosetValues
	return nil
}

func (t *Tagged) ICosetFFT() error {
	if err := t.expect("ICosetFFT", CosetValues); err != nil {
		return err
	}
	t.d.ICosetFFT()
	t.form = Coefficients
	return nil
}

// DivideByZOnCoset has the preconditions of EvaluationDomain.DivideByZOnCoset,
// only the form is checked.
func (t *Tagged) DivideByZOnCoset() error {
	if err := t.expect("DivideByZOnCoset", CosetValues); err != nil {
		return err
	}
	t.d.DivideByZOnCoset()
	return nil
}

// MulAssign requires both operands in the same evaluation form and of the same length.
func (t *Tagged) MulAssign(other *Tagged) error {
	if err := t.expect("MulAssign", Values, CosetValues); err != nil {
		return err
	}
	if err := t.sameShape("MulAssign", other); err != nil {
		return err
	}
	t.d.MulAssign(other.d)
	return nil
}

// SubAssign is linear and so accepts any form, as long as both operands agree.
func (t *Tagged) SubAssign(other *Tagged) error {
	if err := t.sameShape("SubAssign", other); err != nil {
		return err
	}
	t.d.SubAssign(other.d)
	return nil
}

func (t *Tagged) sameShape(op string, other *Tagged) error {
	if t.form != other.form {
		return Error.Wrap(fmt.Errorf("%w: %s of %s by %s", ErrWrongForm, op, t.form, other.form))
	}
	if t.d.Len() != other.d.Len() {
		return Error.New("%s: length mismatch %d != %d", op, t.d.Len(), other.d.Len())
	}
	return nil
}

// IntoCoeffs hands over the coefficients, it fails unless the buffer is in coefficient form.
func (t *Tagged) IntoCoeffs() ([]core.Element, error) {
	if err := t.expect("IntoCoeffs", Coefficients); err != nil {
		return nil, err
	}
	return t.d.IntoCoeffs(), nil
}

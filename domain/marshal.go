package domain

import (
	"encoding/binary"

	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/fft"
)

// headerSize is modulus | exp | omega | omegainv | geninv | minv | len.
const headerSize = 8 + 4 + 4*core.ElementBytes + 8

// Empty returns a domain of size one on engine, to be filled by UnmarshalBinary.
func Empty(engine *fft.Engine) *EvaluationDomain {
	return New(engine, make([]core.Element, 1), 1, 0, core.One())
}

// BinarySize returns the size in bytes of the marshalled domain.
func (d *EvaluationDomain) BinarySize() int {
	return headerSize + len(d.coeffs)*core.ElementBytes
}

// MarshalBinary encodes the buffer and the cached metadata, little-endian and
// fixed width, so that UnmarshalBinary restores them bit for bit.
func (d *EvaluationDomain) MarshalBinary() ([]byte, error) {
	data := make([]byte, d.BinarySize())

	ptr := 0
	binary.LittleEndian.PutUint64(data[ptr:], d.engine.Field().Modulus())
	ptr += 8
	binary.LittleEndian.PutUint32(data[ptr:], uint32(d.exp))
	ptr += 4
	for _, x := range []core.Element{d.omega, d.omegainv, d.geninv, d.minv} {
		binary.LittleEndian.PutUint64(data[ptr:], x.Uint64())
		ptr += core.ElementBytes
	}
	binary.LittleEndian.PutUint64(data[ptr:], uint64(len(d.coeffs)))
	ptr += 8
	for i := range d.coeffs {
		binary.LittleEndian.PutUint64(data[ptr:], d.coeffs[i].Uint64())
		ptr += core.ElementBytes
	}

	return data, nil
}

// UnmarshalBinary decodes data into d, which must have been built on an
// engine over the same field. The metadata is checked for consistency.
func (d *EvaluationDomain) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return Error.New("invalid encoding: %d bytes, need at least %d", len(data), headerSize)
	}

	field := d.engine.Field()

	ptr := 0
	if modulus := binary.LittleEndian.Uint64(data[ptr:]); modulus != field.Modulus() {
		return Error.New("invalid encoding: modulus %d, engine field modulus %d", modulus, field.Modulus())
	}
	ptr += 8

	exp := int(binary.LittleEndian.Uint32(data[ptr:]))
	ptr += 4
	if exp > field.TwoAdicity() {
		return Error.Wrap(ErrPolynomialDegreeTooLarge)
	}

	var meta [4]core.Element
	for i := range meta {
		meta[i] = core.NewElement(binary.LittleEndian.Uint64(data[ptr:]))
		ptr += core.ElementBytes
		if !field.IsCanonical(&meta[i]) {
			return Error.New("invalid encoding: metadata %d is not reduced", i)
		}
	}
	omega, omegainv, geninv, minv := meta[0], meta[1], meta[2], meta[3]

	n := binary.LittleEndian.Uint64(data[ptr:])
	ptr += 8
	if n != uint64(1)<<exp {
		return Error.New("invalid encoding: %d coefficients for exp %d", n, exp)
	}
	if uint64(len(data)-ptr) != n*core.ElementBytes {
		return Error.New("invalid encoding: %d trailing bytes for %d coefficients", len(data)-ptr, n)
	}

	one := core.One()
	switch {
	case !equal(field.Mul(omega, omegainv), one):
		return Error.New("invalid encoding: omega * omegainv != 1")
	case !equal(field.Exp(omega, n), one) || (n > 1 && equal(field.Exp(omega, n/2), one)):
		return Error.New("invalid encoding: omega is not a primitive %d-th root of unity", n)
	case !equal(field.Mul(geninv, field.Generator()), one):
		return Error.New("invalid encoding: geninv * generator != 1")
	case !equal(field.Mul(minv, field.NewElement(n)), one):
		return Error.New("invalid encoding: minv * m != 1")
	}

	coeffs := make([]core.Element, n)
	for i := range coeffs {
		coeffs[i] = core.NewElement(binary.LittleEndian.Uint64(data[ptr:]))
		ptr += core.ElementBytes
		if !field.IsCanonical(&coeffs[i]) {
			return Error.New("invalid encoding: coefficient %d is not reduced", i)
		}
	}

	d.coeffs = coeffs
	d.d = int(n)
	d.exp = exp
	d.omega, d.omegainv, d.geninv, d.minv = omega, omegainv, geninv, minv

	return nil
}

func equal(x, y core.Element) bool {
	return x.Equal(&y)
}

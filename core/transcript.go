package core

import (
	"encoding/binary"

	"github.com/gtank/merlin"
)

// Transcript is a Fiat-Shamir transcript over merlin (STROBE-128).
type Transcript struct {
	*merlin.Transcript
}

func NewTranscript(name string) *Transcript {
	return &Transcript{merlin.NewTranscript(name)}
}

func (t *Transcript) AppendUint64(label string, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	t.AppendMessage([]byte(label), b[:])
}

func (t *Transcript) AppendField(label string, element *Element) {
	t.AppendMessage([]byte(label), element.ToBytes())
}

func (t *Transcript) AppendFields(label string, elements []Element) {
	for i := range elements {
		t.AppendField(label, &elements[i])
	}
}

// SampleField draws a field element. 16 bytes are reduced mod q so the bias is
// at most 2^-64 for moduli of 61 bits or less.
func (t *Transcript) SampleField(label string, field *PrimeField) Element {
	bytes := t.ExtractBytes([]byte(label), 2*ElementBytes)
	q := field.Modulus()
	lo := binary.LittleEndian.Uint64(bytes[:ElementBytes]) % q
	hi := binary.LittleEndian.Uint64(bytes[ElementBytes:]) % q
	// hi * 2^64 + lo mod q
	two64 := field.Add(field.NewElement(1<<63), field.NewElement(1<<63))
	return field.Add(field.Mul(NewElement(hi), two64), NewElement(lo))
}

func (t *Transcript) SampleFields(label string, field *PrimeField, elements []Element) {
	for i := range elements {
		elements[i] = t.SampleField(label, field)
	}
}

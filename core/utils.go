package core

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// RandomElements returns n field elements drawn from a ChaCha20 keystream keyed by seed.
// The same seed always yields the same elements. Sampling is by rejection so the
// elements are uniform in [0, q).
func RandomElements(field *PrimeField, n int, seed uint64) ([]Element, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative element count %d", n)
	}

	key := make([]byte, chacha20.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	cipher, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ChaCha20: %v", err)
	}

	q := field.Modulus()
	mask := uint64(1)<<uint(bitLen(q)) - 1

	elements := make([]Element, n)
	buf := make([]byte, ElementBytes)
	for i := range elements {
		for {
			clear(buf)
			cipher.XORKeyStream(buf, buf)
			v := binary.LittleEndian.Uint64(buf) & mask
			if v < q {
				elements[i] = NewElement(v)
				break
			}
		}
	}

	return elements, nil
}

// MustRandomElements is RandomElements panicking on error.
func MustRandomElements(field *PrimeField, n int, seed uint64) []Element {
	elements, err := RandomElements(field, n, seed)
	if err != nil {
		panic(err)
	}
	return elements
}

func bitLen(q uint64) int {
	return Log2(q) + 1
}

// MarshalElements concatenates the little-endian encodings of elements.
func MarshalElements(elements []Element) []byte {
	data := make([]byte, len(elements)*ElementBytes)
	for i := range elements {
		binary.LittleEndian.PutUint64(data[i*ElementBytes:], elements[i][0])
	}
	return data
}

// UnmarshalElements decodes the output of MarshalElements and checks that every
// element is reduced modulo the field.
func UnmarshalElements(field *PrimeField, data []byte) ([]Element, error) {
	if len(data)%ElementBytes != 0 {
		return nil, Error.New("invalid element encoding: %d bytes is not a multiple of %d", len(data), ElementBytes)
	}

	elements := make([]Element, len(data)/ElementBytes)
	for i := range elements {
		elements[i].SetBytes(data[i*ElementBytes : (i+1)*ElementBytes])
		if !field.IsCanonical(&elements[i]) {
			return nil, Error.New("invalid element encoding: element %d is not reduced", i)
		}
	}

	return elements, nil
}

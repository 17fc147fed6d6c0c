package fft

import (
	"fmt"

	"github.com/nulltea/evaldomain/core"
)

// Scale multiplies every element of a by c.
func (e *Engine) Scale(a []core.Element, c core.Element) {
	field := e.field
	chunks := Chunks(a, e.pool.ChunkSize(len(a)))
	e.pool.Run(len(chunks), func(i int) {
		for j := range chunks[i] {
			field.MulAssign(&chunks[i][j], &c, &chunks[i][j])
		}
	})
}

// DistributePowers multiplies a[i] by g^i. Each chunk starts from g^i0 and
// steps by g.
func (e *Engine) DistributePowers(a []core.Element, g core.Element) {
	field := e.field
	chunkSize := e.pool.ChunkSize(len(a))
	chunks := Chunks(a, chunkSize)
	e.pool.Run(len(chunks), func(i int) {
		u := field.Exp(g, uint64(i*chunkSize))
		for j := range chunks[i] {
			field.MulAssign(&chunks[i][j], &u, &chunks[i][j])
			field.MulAssign(&u, &g, &u)
		}
	})
}

// MulAssign sets a[i] = a[i] * b[i].
func (e *Engine) MulAssign(a, b []core.Element) {
	e.pointwise(a, b, e.field.MulAssign)
}

// SubAssign sets a[i] = a[i] - b[i].
func (e *Engine) SubAssign(a, b []core.Element) {
	e.pointwise(a, b, e.field.SubAssign)
}

// AddAssign sets a[i] = a[i] + b[i].
func (e *Engine) AddAssign(a, b []core.Element) {
	e.pointwise(a, b, e.field.AddAssign)
}

func (e *Engine) pointwise(a, b []core.Element, op func(x, y, z *core.Element)) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("length mismatch: %d != %d", len(a), len(b)))
	}

	chunkSize := e.pool.ChunkSize(len(a))
	as, bs := Chunks(a, chunkSize), Chunks(b, chunkSize)
	e.pool.Run(len(as), func(i int) {
		x, y := as[i], bs[i]
		for j := range x {
			op(&x[j], &y[j], &x[j])
		}
	})
}

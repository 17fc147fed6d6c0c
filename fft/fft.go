// Package fft implements the radix-2 decimation-in-time Fourier transform over
// a prime field, serially and decomposed across the lanes of a Pool.
package fft

import (
	"fmt"

	"github.com/nulltea/evaldomain/core"
	"github.com/tuneinsight/lattigo/v6/utils"
)

// Transform computes in place the transform of a, of length 2^logN, for the
// primitive 2^logN-th root of unity omega.
type Transform func(a []core.Element, omega core.Element, logN int)

// Engine runs transforms and pointwise operations on the lanes of a Pool.
// The transform strategy is fixed when the engine is built.
type Engine struct {
	field     *core.PrimeField
	pool      *Pool
	transform Transform
}

// NewEngine returns an engine over field. A single lane pool always runs the
// serial algorithm, otherwise the transform is decomposed whenever the input
// has more than Pool.LogLanes() levels.
func NewEngine(field *core.PrimeField, pool *Pool) *Engine {
	e := &Engine{
		field: field,
		pool:  pool,
	}

	if pool.Lanes() == 1 {
		e.transform = e.serial
	} else {
		e.transform = e.best
	}

	core.Logger().V(1).Info("fft engine", "modulus", field.Modulus(), "lanes", pool.Lanes(), "logLanes", pool.LogLanes())

	return e
}

func (e *Engine) Field() *core.PrimeField {
	return e.field
}

func (e *Engine) Pool() *Pool {
	return e.pool
}

// FFT transforms a in place with the engine strategy.
func (e *Engine) FFT(a []core.Element, omega core.Element, logN int) {
	e.transform(a, omega, logN)
}

func (e *Engine) serial(a []core.Element, omega core.Element, logN int) {
	SerialFFT(e.field, a, omega, logN)
}

func (e *Engine) best(a []core.Element, omega core.Element, logN int) {
	logLanes := e.pool.LogLanes()

	if logN <= logLanes {
		SerialFFT(e.field, a, omega, logN)
	} else {
		e.ParallelFFT(a, omega, logN, logLanes)
	}
}

// SerialFFT is the iterative Cooley-Tukey transform: a bit-reversal
// permutation followed by logN butterfly stages.
// With omega^-1 it computes the inverse transform up to the 1/n scaling.
func SerialFFT(field *core.PrimeField, a []core.Element, omega core.Element, logN int) {
	n := len(a)
	if n != 1<<logN {
		panic(fmt.Sprintf("invalid transform size: len %d, expected 2^%d", n, logN))
	}

	for k := 0; k < n; k++ {
		rk := int(utils.BitReverse64(uint64(k), logN))
		if k < rk {
			a[k], a[rk] = a[rk], a[k]
		}
	}

	var t core.Element
	for m := 1; m < n; m <<= 1 {
		wm := field.Exp(omega, uint64(n/(2*m)))

		for k := 0; k < n; k += 2 * m {
			w := core.One()
			for j := 0; j < m; j++ {
				u, v := &a[k+j], &a[k+j+m]
				field.MulAssign(v, &w, &t)
				field.SubAssign(u, &t, v)
				field.AddAssign(u, &t, u)
				field.MulAssign(&w, &wm, &w)
			}
		}
	}
}

// ParallelFFT splits the transform of size n = 2^logN into 2^logLanes
// independent transforms of size n / 2^logLanes. Lane j gathers
//
//	tmp_j[i] = sum_s a[i + s*n'] * omega^(j*s*n') * omega^(i*j)
//
// in its own buffer, transforms it with omega^(2^logLanes), and the results are
// interleaved back into a. The output is identical to SerialFFT.
func (e *Engine) ParallelFFT(a []core.Element, omega core.Element, logN, logLanes int) {
	if logN < logLanes {
		panic(fmt.Sprintf("invalid decomposition: logN %d < logLanes %d", logN, logLanes))
	}
	if len(a) != 1<<logN {
		panic(fmt.Sprintf("invalid transform size: len %d, expected 2^%d", len(a), logN))
	}

	field := e.field
	numLanes := 1 << logLanes
	logNewN := logN - logLanes
	mask := numLanes - 1
	newOmega := field.Exp(omega, uint64(numLanes))

	tmp := make([][]core.Element, numLanes)
	backing := make([]core.Element, len(a))
	for j := range tmp {
		tmp[j] = backing[j<<logNewN : (j+1)<<logNewN : (j+1)<<logNewN]
	}

	e.pool.Run(numLanes, func(j int) {
		sub := tmp[j]

		// Shuffle into a sub-FFT
		omegaJ := field.Exp(omega, uint64(j))
		omegaStep := field.Exp(omega, uint64(j)<<logNewN)

		elt := core.One()
		var t core.Element
		for i := range sub {
			for s := 0; s < numLanes; s++ {
				idx := (i + (s << logNewN)) & (len(a) - 1)
				field.MulAssign(&a[idx], &elt, &t)
				field.AddAssign(&sub[i], &t, &sub[i])
				field.MulAssign(&elt, &omegaStep, &elt)
			}
			field.MulAssign(&elt, &omegaJ, &elt)
		}

		SerialFFT(field, sub, newOmega, logNewN)
	})

	chunkSize := e.pool.ChunkSize(len(a))
	chunks := Chunks(a, chunkSize)
	e.pool.Run(len(chunks), func(c int) {
		idx := c * chunkSize
		for i := range chunks[c] {
			chunks[c][i] = tmp[idx&mask][idx>>logLanes]
			idx++
		}
	})
}

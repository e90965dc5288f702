// Package quant emulates coarse sampler bit depths on complex chunks.
//
// Real and imaginary parts are quantized independently against a 3-sigma
// scale computed from the current chunk's own statistics. The scale is
// chunk-adaptive by contract: re-chunking the same signal changes the
// normalization, so results are not reproducible across chunkings. This is
// a known non-ideality that downstream consumers depend on.
package quant

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-fx/fx/core"
)

const sigmaClip = 3.0

// Quantizer rounds complex samples to a fixed number of levels per component.
type Quantizer struct {
	bits   int
	levels float64 // (2^bits)/2 - 1
}

// New creates a Quantizer for the given bit depth. bits == 0 disables
// quantization (ProcessChunk becomes the identity). bits == 1 is rejected:
// the level grid (2^bits)/2 - 1 collapses to zero and every sample would
// divide by it.
func New(bits int) (*Quantizer, error) {
	if bits < 0 {
		return nil, fmt.Errorf("quant: bit depth must be >= 0: %d", bits)
	}

	if bits == 1 {
		return nil, fmt.Errorf("quant: bit depth 1 leaves no quantization levels")
	}

	if bits > 32 {
		return nil, fmt.Errorf("quant: bit depth must be <= 32: %d", bits)
	}

	q := &Quantizer{bits: bits}
	if bits > 0 {
		q.levels = math.Exp2(float64(bits))/2 - 1
	}

	return q, nil
}

// Bits returns the configured bit depth.
func (q *Quantizer) Bits() int { return q.bits }

// Enabled reports whether quantization is active.
func (q *Quantizer) Enabled() bool { return q.bits > 0 }

// ProcessChunk quantizes an antennas-by-samples chunk and returns a new
// chunk of the same shape. With quantization disabled the input is returned
// unmodified.
func (q *Quantizer) ProcessChunk(signals [][]complex128) [][]complex128 {
	if !q.Enabled() || len(signals) == 0 {
		return signals
	}

	realScale := sigmaClip * chunkStdDev(signals, func(v complex128) float64 { return real(v) })
	imagScale := sigmaClip * chunkStdDev(signals, func(v complex128) float64 { return imag(v) })

	out := make([][]complex128, len(signals))
	for ant, row := range signals {
		out[ant] = make([]complex128, len(row))
		for i, v := range row {
			out[ant][i] = complex(
				q.quantizePart(real(v), realScale),
				q.quantizePart(imag(v), imagScale),
			)
		}
	}

	return out
}

// quantizePart normalizes one component to [-1, 1], rounds it onto the level
// grid, and denormalizes. A zero scale means the component is constant over
// the chunk; it is passed through untouched.
func (q *Quantizer) quantizePart(v, scale float64) float64 {
	if scale == 0 {
		return v
	}

	norm := core.Clamp(v/scale, -1, 1)

	return math.Round(norm*q.levels) / q.levels * scale
}

// chunkStdDev computes the population standard deviation of one component
// over every sample of the chunk.
func chunkStdDev(signals [][]complex128, part func(complex128) float64) float64 {
	n := 0
	for _, row := range signals {
		n += len(row)
	}

	if n == 0 {
		return 0
	}

	flat := make([]float64, 0, n)
	for _, row := range signals {
		for _, v := range row {
			flat = append(flat, part(v))
		}
	}

	return stat.PopStdDev(flat, nil)
}

// Package spectrum provides helpers over complex spectrum and visibility bins.
//
// The package does not implement FFT itself. It operates on complex bins
// produced by the channeliser or emitted by the correlator and extracts
// magnitude, power, and phase views for downstream consumers and tests.
package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// MeanPhase returns the circular mean phase of the bins in radians.
//
// Bins are reduced as unit phasors so wrap-around near +/-pi does not bias
// the mean. Zero-magnitude bins contribute nothing. Returns 0 for empty or
// all-zero input.
func MeanPhase(in []complex128) float64 {
	var sumRe, sumIm float64

	for _, c := range in {
		mag := cmplx.Abs(c)
		if mag == 0 {
			continue
		}

		sumRe += real(c) / mag
		sumIm += imag(c) / mag
	}

	if sumRe == 0 && sumIm == 0 {
		return 0
	}

	return math.Atan2(sumIm, sumRe)
}

// TotalPower returns the summed |X[k]|^2 over all bins.
func TotalPower(in []complex128) float64 {
	sum := 0.0
	for _, c := range in {
		re := real(c)
		im := imag(c)
		sum += re*re + im*im
	}
	return sum
}

package testutil

import (
	"math"
	"math/rand"
)

// ComplexTone generates a deterministic complex exponential exp(2*pi*i*f*t)
// with zero initial phase.
func ComplexTone(freqHz, sampleRate float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		phase := step * float64(i)
		out[i] = complex(math.Cos(phase), math.Sin(phase))
	}
	return out
}

// ToneChunk places the identical complex tone on every antenna, producing an
// antennas-by-samples chunk as seen for an on-axis source.
func ToneChunk(nAnts int, freqHz, sampleRate float64, samples int) [][]complex128 {
	tone := ComplexTone(freqHz, sampleRate, samples)
	out := make([][]complex128, nAnts)
	for i := range out {
		out[i] = append([]complex128(nil), tone...)
	}
	return out
}

// NoiseChunk generates a complex white-noise chunk with a fixed seed for
// reproducibility.
func NoiseChunk(seed int64, nAnts, samples int, amplitude float64) [][]complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]complex128, nAnts)
	for a := range out {
		out[a] = make([]complex128, samples)
		for i := range out[a] {
			out[a][i] = complex(
				(rng.Float64()*2-1)*amplitude,
				(rng.Float64()*2-1)*amplitude,
			)
		}
	}
	return out
}

// RandomSpectrum generates a deterministic random antennas-by-channels
// spectrum set with standard-normal real and imaginary parts.
func RandomSpectrum(seed int64, nAnts, nChannels int) [][]complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]complex128, nAnts)
	for a := range out {
		out[a] = make([]complex128, nChannels)
		for i := range out[a] {
			out[a][i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}
	return out
}

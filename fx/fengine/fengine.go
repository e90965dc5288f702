package fengine

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fx/fx/core"
	"github.com/cwbudde/algo-fx/fx/quant"
	"github.com/cwbudde/algo-fx/fx/window"
)

const minChannels = 2

// Engine converts time-domain antenna chunks into frequency channels.
type Engine struct {
	channels   int
	windowType window.Type
	overlap    float64
	stride     int

	coeffs    []float64
	quantizer *quant.Quantizer
	plan      *algofft.Plan[complex128]
}

// New creates a channeliser.
//
// channels is the FFT size and must be a power of two >= 2. quantizeBits of
// zero disables quantization emulation. overlap is the fraction of each
// window shared with the next, in [0, 0.5]; the hop stride becomes
// channels*(1-overlap).
func New(channels int, windowType window.Type, quantizeBits int, overlap float64) (*Engine, error) {
	if !core.IsPowerOfTwo(channels) || channels < minChannels {
		return nil, fmt.Errorf("fengine: channel count must be a power of two >= %d: %d", minChannels, channels)
	}

	if overlap < 0 || overlap > 0.5 {
		return nil, fmt.Errorf("fengine: overlap factor must be in [0, 0.5]: %f", overlap)
	}

	coeffs := window.Generate(windowType, channels)
	if coeffs == nil {
		return nil, fmt.Errorf("fengine: window generation failed for type %v", windowType)
	}

	quantizer, err := quant.New(quantizeBits)
	if err != nil {
		return nil, fmt.Errorf("fengine: %w", err)
	}

	plan, err := algofft.NewPlan64(channels)
	if err != nil {
		return nil, fmt.Errorf("fengine: FFT plan init (size=%d): %w", channels, err)
	}

	return &Engine{
		channels:   channels,
		windowType: windowType,
		overlap:    overlap,
		stride:     int(float64(channels) * (1 - overlap)),
		coeffs:     coeffs,
		quantizer:  quantizer,
		plan:       plan,
	}, nil
}

// Channels returns the FFT size (channel count).
func (e *Engine) Channels() int { return e.channels }

// Stride returns the hop size between consecutive windows in samples.
func (e *Engine) Stride() int { return e.stride }

// WindowType returns the configured window function.
func (e *Engine) WindowType() window.Type { return e.windowType }

// QuantizeBits returns the quantization bit depth, 0 when disabled.
func (e *Engine) QuantizeBits() int { return e.quantizer.Bits() }

// SpectraPerChunk returns how many spectra a chunk of the given sample count
// yields, or zero when the chunk is too short.
func (e *Engine) SpectraPerChunk(samples int) int {
	if samples < e.channels {
		return 0
	}

	return (samples-e.channels)/e.stride + 1
}

// Process channelises one antennas-by-samples chunk into an
// antennas-by-spectra-by-channels array.
//
// Each spectrum is the unscaled forward FFT of one tapered window. Returns
// ErrChunkTooShort when no full window fits into the chunk.
func (e *Engine) Process(chunk [][]complex128) ([][][]complex128, error) {
	nAnts, nSamples, uniform := core.MatrixShape(chunk)
	if nAnts == 0 || nSamples == 0 {
		return nil, ErrEmptyChunk
	}

	if !uniform {
		return nil, ErrRaggedChunk
	}

	signals := e.quantizer.ProcessChunk(chunk)

	nSpectra := e.SpectraPerChunk(nSamples)
	if nSpectra <= 0 {
		return nil, fmt.Errorf("%w: %d samples, FFT size %d", ErrChunkTooShort, nSamples, e.channels)
	}

	out := core.CubeC128(nAnts, nSpectra, e.channels)

	for ant := range nAnts {
		for spec := range nSpectra {
			start := spec * e.stride
			row := out[ant][spec]

			for i := range e.channels {
				row[i] = signals[ant][start+i] * complex(e.coeffs[i], 0)
			}

			err := e.plan.Forward(row, row)
			if err != nil {
				return nil, fmt.Errorf("fengine: forward FFT failed: %w", err)
			}
		}
	}

	return out, nil
}

// ChannelFrequencies returns the frequency in Hz of each channel for the
// given sample rate, in FFT bin order: [0 .. C/2-1, -C/2 .. -1] * rate/C.
func (e *Engine) ChannelFrequencies(sampleRate float64) []float64 {
	out := make([]float64, e.channels)
	step := sampleRate / float64(e.channels)
	half := (e.channels + 1) / 2

	for i := 0; i < half; i++ {
		out[i] = float64(i) * step
	}

	for i := half; i < e.channels; i++ {
		out[i] = float64(i-e.channels) * step
	}

	return out
}

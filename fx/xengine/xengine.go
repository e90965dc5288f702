package xengine

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-fx/fx/core"
)

// Engine correlates per-antenna spectra and integrates the products.
type Engine struct {
	nAnts     int
	nChannels int
	baselines []Baseline

	integrationTime       float64
	sampleRate            float64
	spectraPerIntegration int

	// sum and count form one integration state and are always updated
	// together under mu.
	mu    sync.Mutex
	sum   [][]complex128
	count int
}

// New creates an X-engine for nAnts antennas and nChannels channels.
//
// Each spectrum spans nChannels/sampleRate seconds, so an integration of
// integrationTime seconds folds max(1, floor(integrationTime*sampleRate/
// nChannels)) spectra.
func New(nAnts, nChannels int, integrationTime, sampleRate float64) (*Engine, error) {
	if nAnts < 2 {
		return nil, fmt.Errorf("xengine: antenna count must be >= 2: %d", nAnts)
	}

	if nChannels <= 0 {
		return nil, fmt.Errorf("xengine: channel count must be > 0: %d", nChannels)
	}

	if integrationTime <= 0 || math.IsNaN(integrationTime) || math.IsInf(integrationTime, 0) {
		return nil, fmt.Errorf("xengine: integration time must be > 0 and finite: %f", integrationTime)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("xengine: sample rate must be > 0 and finite: %f", sampleRate)
	}

	spectra := int(integrationTime * sampleRate / float64(nChannels))
	if spectra < 1 {
		spectra = 1
	}

	baselines := Baselines(nAnts)

	return &Engine{
		nAnts:                 nAnts,
		nChannels:             nChannels,
		baselines:             baselines,
		integrationTime:       integrationTime,
		sampleRate:            sampleRate,
		spectraPerIntegration: spectra,
		sum:                   core.MatrixC128(len(baselines), nChannels),
	}, nil
}

// NumAntennas returns the configured antenna count.
func (e *Engine) NumAntennas() int { return e.nAnts }

// NumChannels returns the configured channel count.
func (e *Engine) NumChannels() int { return e.nChannels }

// NumBaselines returns the canonical baseline count n(n+1)/2.
func (e *Engine) NumBaselines() int { return len(e.baselines) }

// Baselines returns a copy of the canonical baseline enumeration.
func (e *Engine) Baselines() []Baseline {
	out := make([]Baseline, len(e.baselines))
	copy(out, e.baselines)
	return out
}

// BaselineInfo returns per-id antenna-pair labels for the engine's layout.
func (e *Engine) BaselineInfo() []BaselineInfo {
	return BaselineTable(e.nAnts)
}

// SpectraPerIntegration returns the fold target for one integration.
func (e *Engine) SpectraPerIntegration() int { return e.spectraPerIntegration }

// CorrelateSpectrum computes all pairwise products for one time sample.
//
// spectrum holds one spectrum per antenna (antennas x channels). The result
// is baselines x channels with vis[bl][c] = s[i][c] * conj(s[j][c]) for
// baseline (i, j). Pure function: no accumulator state is touched.
func (e *Engine) CorrelateSpectrum(spectrum [][]complex128) ([][]complex128, error) {
	if len(spectrum) != e.nAnts {
		return nil, fmt.Errorf("%w: expected %d antennas, got %d", ErrShapeMismatch, e.nAnts, len(spectrum))
	}

	for ant, row := range spectrum {
		if len(row) != e.nChannels {
			return nil, fmt.Errorf("%w: antenna %d has %d channels, expected %d", ErrShapeMismatch, ant, len(row), e.nChannels)
		}
	}

	vis := core.MatrixC128(len(e.baselines), e.nChannels)

	for bl, b := range e.baselines {
		si := spectrum[b.Ant1]
		sj := spectrum[b.Ant2]
		dst := vis[bl]

		for c := range dst {
			v := sj[c]
			dst[c] = si[c] * complex(real(v), -imag(v))
		}
	}

	return vis, nil
}

// Accumulate adds one visibility set into the running sum and advances the
// fold count.
func (e *Engine) Accumulate(vis [][]complex128) error {
	if len(vis) != len(e.baselines) {
		return fmt.Errorf("%w: expected %d baselines, got %d", ErrShapeMismatch, len(e.baselines), len(vis))
	}

	for bl, row := range vis {
		if len(row) != e.nChannels {
			return fmt.Errorf("%w: baseline %d has %d channels, expected %d", ErrShapeMismatch, bl, len(row), e.nChannels)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for bl, row := range vis {
		dst := e.sum[bl]
		for c, v := range row {
			dst[c] += v
		}
	}

	e.count++

	return nil
}

// Count returns the number of spectra folded into the current integration.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.count
}

// IsReady reports whether the integration threshold has been reached.
func (e *Engine) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.count >= e.spectraPerIntegration
}

// Integrated returns the elementwise mean of the accumulated visibilities
// and resets the accumulator to an empty state.
//
// Draining an empty accumulator returns ErrEmptyAccumulation.
func (e *Engine) Integrated() ([][]complex128, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.count == 0 {
		return nil, ErrEmptyAccumulation
	}

	scale := complex(1/float64(e.count), 0)
	out := core.MatrixC128(len(e.baselines), e.nChannels)

	for bl, row := range e.sum {
		dst := out[bl]
		for c, v := range row {
			dst[c] = v * scale
			row[c] = 0
		}
	}

	e.count = 0

	return out, nil
}

// Package delay implements geometric delay tracking and fringe stopping.
//
// For a tracked sky direction, every antenna sees the wavefront at a
// slightly different time. The engine projects antenna positions onto the
// phase-center direction, stores the per-antenna delay relative to antenna
// zero in reference-wavelength units, and removes the delay from channelised
// spectra with a pure per-channel phase rotation.
package delay

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-fx/fx/core"
)

// SpeedOfLight in meters per second, used to derive the reference wavelength.
const SpeedOfLight = 2.998e8

// defaultPhaseCenter is zenith: zero delay for arrays in the XY plane.
var defaultPhaseCenter = []float64{0, 0, 1}

// Engine applies geometric-delay phase corrections to channelised spectra.
//
// SetPhaseCenter swaps the delay vector atomically, so a concurrent Apply
// never observes a half-updated vector.
type Engine struct {
	positions  [][]float64 // nAnts x 3, meters
	refFreq    float64
	wavelength float64

	mu          sync.RWMutex
	phaseCenter []float64
	delays      []float64 // reference-wavelength units, delays[0] == 0
}

// New creates a delay engine for the given antenna positions (n x 2 or
// n x 3, meters; 2D positions are padded with z = 0) and reference
// frequency in Hz. The phase center starts at zenith.
func New(positions [][]float64, refFreq float64) (*Engine, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("delay: antenna position table is empty")
	}

	if refFreq <= 0 || math.IsNaN(refFreq) || math.IsInf(refFreq, 0) {
		return nil, fmt.Errorf("delay: reference frequency must be > 0 and finite: %f", refFreq)
	}

	padded := make([][]float64, len(positions))
	for i, pos := range positions {
		switch len(pos) {
		case 2:
			padded[i] = []float64{pos[0], pos[1], 0}
		case 3:
			padded[i] = []float64{pos[0], pos[1], pos[2]}
		default:
			return nil, fmt.Errorf("delay: antenna %d position must have 2 or 3 coordinates: %d", i, len(pos))
		}
	}

	e := &Engine{
		positions:  padded,
		refFreq:    refFreq,
		wavelength: SpeedOfLight / refFreq,
	}

	err := e.SetPhaseCenter(defaultPhaseCenter)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// NumAntennas returns the configured antenna count.
func (e *Engine) NumAntennas() int { return len(e.positions) }

// ReferenceFreq returns the reference frequency in Hz.
func (e *Engine) ReferenceFreq() float64 { return e.refFreq }

// Wavelength returns the reference wavelength in meters.
func (e *Engine) Wavelength() float64 { return e.wavelength }

// SetPhaseCenter points the engine at a new sky direction and recomputes the
// delay vector. direction is a 3-vector with nonzero norm; it need not be
// pre-normalized.
func (e *Engine) SetPhaseCenter(direction []float64) error {
	if len(direction) != 3 {
		return fmt.Errorf("delay: phase center must be a 3-vector: %d components", len(direction))
	}

	norm := math.Sqrt(floats.Dot(direction, direction))
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return fmt.Errorf("delay: phase center must have nonzero finite norm")
	}

	unit := []float64{direction[0] / norm, direction[1] / norm, direction[2] / norm}

	delays, err := GeometricDelays(e.positions, unit, e.wavelength)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.phaseCenter = unit
	e.delays = delays
	e.mu.Unlock()

	return nil
}

// PhaseCenter returns a copy of the current tracked unit direction.
func (e *Engine) PhaseCenter() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]float64, len(e.phaseCenter))
	copy(out, e.phaseCenter)
	return out
}

// Delays returns a copy of the current per-antenna delay vector in
// reference-wavelength units. Delays are relative to antenna 0, which is
// identically zero.
func (e *Engine) Delays() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]float64, len(e.delays))
	copy(out, e.delays)
	return out
}

// Apply removes the geometric delays from channelised spectra
// (antennas x spectra x channels) and returns a new array of the same shape.
//
// The stored wavelength-unit delay is first converted to an absolute time
// delay and then rotated against each channel's own frequency; the rotation
// has unit magnitude, so amplitudes are preserved exactly.
func (e *Engine) Apply(spectra [][][]complex128, channelFreqs []float64) ([][][]complex128, error) {
	if len(spectra) != len(e.positions) {
		return nil, fmt.Errorf("delay: expected %d antennas, got %d", len(e.positions), len(spectra))
	}

	delays := e.Delays()

	nSpectra := 0
	nChannels := len(channelFreqs)
	if len(spectra) > 0 {
		nSpectra = len(spectra[0])
	}

	out := core.CubeC128(len(spectra), nSpectra, nChannels)
	phasor := make([]complex128, nChannels)

	for ant := range spectra {
		if len(spectra[ant]) != nSpectra {
			return nil, fmt.Errorf("delay: antenna %d has %d spectra, expected %d", ant, len(spectra[ant]), nSpectra)
		}

		// Absolute time delay in seconds; the negative sign removes a
		// positive geometric delay.
		tau := delays[ant] / e.refFreq
		for c, freq := range channelFreqs {
			phase := -2 * math.Pi * tau * freq
			phasor[c] = complex(math.Cos(phase), math.Sin(phase))
		}

		for spec := range spectra[ant] {
			row := spectra[ant][spec]
			if len(row) != nChannels {
				return nil, fmt.Errorf("delay: antenna %d spectrum %d has %d channels, expected %d", ant, spec, len(row), nChannels)
			}

			dst := out[ant][spec]
			for c := range row {
				dst[c] = row[c] * phasor[c]
			}
		}
	}

	return out, nil
}

// GeometricDelays projects antenna positions (n x 3, meters) onto a unit
// direction and returns per-antenna delays in units of wavelength, relative
// to antenna 0.
func GeometricDelays(positions [][]float64, direction []float64, wavelength float64) ([]float64, error) {
	if wavelength <= 0 {
		return nil, fmt.Errorf("delay: wavelength must be > 0: %f", wavelength)
	}

	if len(positions) == 0 {
		return nil, fmt.Errorf("delay: antenna position table is empty")
	}

	delays := make([]float64, len(positions))
	for i, pos := range positions {
		delays[i] = floats.Dot(pos, direction) / wavelength
	}

	ref := delays[0]
	for i := range delays {
		delays[i] -= ref
	}

	return delays, nil
}

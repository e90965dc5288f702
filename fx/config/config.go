// Package config defines the externally supplied correlator configuration.
//
// The surface mirrors what a deployment provides: array geometry, channeliser
// settings, integration parameters, and the tracked phase center. Values load
// from YAML and are validated before any engine is constructed, so invalid
// setups fail once, up front.
package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-fx/fx/core"
	"github.com/cwbudde/algo-fx/fx/window"
)

// Config is the complete correlator configuration.
type Config struct {
	// Array geometry. AntPositions rows hold 2 or 3 coordinates in meters;
	// when empty, NAnts antennas are placed on a circle of radius AntRadius.
	NAnts        int         `yaml:"n_ants"`
	AntPositions [][]float64 `yaml:"ant_positions"`
	AntRadius    float64     `yaml:"ant_radius"`

	// Channeliser.
	NChannels     int     `yaml:"n_channels"`
	WindowType    string  `yaml:"window_type"`
	QuantizeBits  int     `yaml:"quantize_bits"`
	OverlapFactor float64 `yaml:"overlap_factor"`

	// Correlator.
	IntegrationTime float64 `yaml:"integration_time"`
	SampleRate      float64 `yaml:"sample_rate"`

	// Delay tracking.
	EnableDelays  bool      `yaml:"enable_delays"`
	ReferenceFreq float64   `yaml:"reference_freq"`
	PhaseCenter   []float64 `yaml:"phase_center"`

	// Session.
	ChunkSize       int `yaml:"chunk_size"`
	MaxIntegrations int `yaml:"max_integrations"`
}

// Default returns the stock configuration: a four-antenna circle, 256
// channels, Hann window, one-second integrations, zenith phase center.
func Default() Config {
	return Config{
		NAnts:           4,
		AntRadius:       10,
		NChannels:       256,
		WindowType:      "hanning",
		OverlapFactor:   0,
		IntegrationTime: 1,
		SampleRate:      1024,
		EnableDelays:    true,
		ReferenceFreq:   1,
		PhaseCenter:     []float64{0, 0, 1},
		ChunkSize:       4096,
	}
}

// Load reads and validates a YAML configuration file. Fields absent from the
// file keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}

	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every construction parameter.
func (c Config) Validate() error {
	if c.NAnts < 2 {
		return errors.Errorf("config: n_ants must be >= 2: %d", c.NAnts)
	}

	if !core.IsPowerOfTwo(c.NChannels) || c.NChannels < 2 {
		return errors.Errorf("config: n_channels must be a power of two >= 2: %d", c.NChannels)
	}

	if _, err := window.Parse(c.WindowType); err != nil {
		return errors.Wrap(err, "config")
	}

	if c.QuantizeBits < 0 || c.QuantizeBits == 1 {
		return errors.Errorf("config: quantize_bits must be 0 or >= 2: %d", c.QuantizeBits)
	}

	if c.OverlapFactor < 0 || c.OverlapFactor > 0.5 {
		return errors.Errorf("config: overlap_factor must be in [0, 0.5]: %f", c.OverlapFactor)
	}

	if c.IntegrationTime <= 0 {
		return errors.Errorf("config: integration_time must be > 0: %f", c.IntegrationTime)
	}

	if c.SampleRate <= 0 {
		return errors.Errorf("config: sample_rate must be > 0: %f", c.SampleRate)
	}

	if c.ChunkSize < c.NChannels {
		return errors.Errorf("config: chunk_size must be >= n_channels: %d < %d", c.ChunkSize, c.NChannels)
	}

	if c.MaxIntegrations < 0 {
		return errors.Errorf("config: max_integrations must be >= 0: %d", c.MaxIntegrations)
	}

	if len(c.AntPositions) > 0 {
		if len(c.AntPositions) != c.NAnts {
			return errors.Errorf("config: ant_positions has %d rows for n_ants=%d", len(c.AntPositions), c.NAnts)
		}

		for i, pos := range c.AntPositions {
			if len(pos) != 2 && len(pos) != 3 {
				return errors.Errorf("config: ant_positions row %d must have 2 or 3 coordinates: %d", i, len(pos))
			}
		}
	} else if c.AntRadius <= 0 {
		return errors.Errorf("config: ant_radius must be > 0 when ant_positions is empty: %f", c.AntRadius)
	}

	if c.EnableDelays {
		if c.ReferenceFreq <= 0 {
			return errors.Errorf("config: reference_freq must be > 0: %f", c.ReferenceFreq)
		}

		if len(c.PhaseCenter) != 3 {
			return errors.Errorf("config: phase_center must be a 3-vector: %d components", len(c.PhaseCenter))
		}

		norm := 0.0
		for _, v := range c.PhaseCenter {
			norm += v * v
		}

		if norm == 0 {
			return errors.New("config: phase_center must have nonzero norm")
		}
	}

	return nil
}

// Window resolves the configured window type.
func (c Config) Window() (window.Type, error) {
	return window.Parse(c.WindowType)
}

// Positions returns the antenna position table, generating a uniform circle
// of radius AntRadius in the XY plane when no table is configured.
func (c Config) Positions() [][]float64 {
	if len(c.AntPositions) > 0 {
		out := make([][]float64, len(c.AntPositions))
		for i, pos := range c.AntPositions {
			out[i] = append([]float64(nil), pos...)
		}

		return out
	}

	out := make([][]float64, c.NAnts)
	for i := range out {
		angle := 2 * math.Pi * float64(i) / float64(c.NAnts)
		out[i] = []float64{c.AntRadius * math.Cos(angle), c.AntRadius * math.Sin(angle), 0}
	}

	return out
}

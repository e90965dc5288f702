// Package pipeline wires the correlator engines into a streaming session.
//
// The runner is thin glue: it pulls fixed-shape chunks from a source, pushes
// them through the channeliser, the optional delay engine, and the
// correlator, and hands each completed integration to a sink. Session bounds
// (max integrations, cancellation) live here; the engines themselves are
// deadline-unaware.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-fx/fx/delay"
	"github.com/cwbudde/algo-fx/fx/fengine"
	"github.com/cwbudde/algo-fx/fx/xengine"
)

// ChunkSource supplies fixed-shape antennas-by-samples chunks. Next returns
// io.EOF once the stream ends. The pipeline never buffers or retries; short
// reads and malformed input are the source's responsibility to signal.
type ChunkSource interface {
	Next() ([][]complex128, error)
}

// SourceFunc adapts a function to the ChunkSource interface.
type SourceFunc func() ([][]complex128, error)

// Next pulls the next chunk.
func (f SourceFunc) Next() ([][]complex128, error) { return f() }

// Sink receives one baselines-by-channels visibility set per completed
// integration. Baseline labels are not attached; consumers regenerate the
// canonical enumeration via xengine.Baselines or BaselineTable.
type Sink interface {
	Write(vis [][]complex128) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(vis [][]complex128) error

// Write hands one integration to the function.
func (f SinkFunc) Write(vis [][]complex128) error { return f(vis) }

// Stats summarizes one session.
type Stats struct {
	Chunks        int
	SkippedChunks int
	Spectra       int
	Integrations  int
}

// Runner executes the FX dataflow chunk by chunk.
type Runner struct {
	fEngine *fengine.Engine
	dEngine *delay.Engine // nil disables fringe stopping
	xEngine *xengine.Engine

	source ChunkSource
	sink   Sink

	sampleRate      float64
	maxIntegrations int
	log             *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDelayEngine enables fringe stopping between channelisation and
// correlation.
func WithDelayEngine(d *delay.Engine) Option {
	return func(r *Runner) { r.dEngine = d }
}

// WithMaxIntegrations bounds the session to n completed integrations.
// Zero means run until the source is exhausted.
func WithMaxIntegrations(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxIntegrations = n
		}
	}
}

// WithLogger injects a structured logger for session events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a session runner and validates that the engines agree with
// each other.
func New(f *fengine.Engine, x *xengine.Engine, source ChunkSource, sink Sink, sampleRate float64, opts ...Option) (*Runner, error) {
	if f == nil || x == nil {
		return nil, errors.New("pipeline: channeliser and correlator are required")
	}

	if source == nil || sink == nil {
		return nil, errors.New("pipeline: chunk source and sink are required")
	}

	if sampleRate <= 0 {
		return nil, errors.Errorf("pipeline: sample rate must be > 0: %f", sampleRate)
	}

	if f.Channels() != x.NumChannels() {
		return nil, errors.Errorf("pipeline: channeliser emits %d channels but correlator expects %d", f.Channels(), x.NumChannels())
	}

	r := &Runner{
		fEngine:    f,
		xEngine:    x,
		source:     source,
		sink:       sink,
		sampleRate: sampleRate,
		log:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if r.dEngine != nil && r.dEngine.NumAntennas() != x.NumAntennas() {
		return nil, errors.Errorf("pipeline: delay engine has %d antennas but correlator expects %d", r.dEngine.NumAntennas(), x.NumAntennas())
	}

	return r, nil
}

// Run drives the session until the source is exhausted, the integration
// bound is reached, or ctx is cancelled. Chunks too short to channelise are
// skipped and counted. A partial integration left at end of stream is
// discarded, never emitted.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	chFreqs := r.fEngine.ChannelFrequencies(r.sampleRate)
	scratch := make([][]complex128, r.xEngine.NumAntennas())

	r.log.Info("session start",
		"channels", r.fEngine.Channels(),
		"antennas", r.xEngine.NumAntennas(),
		"baselines", r.xEngine.NumBaselines(),
		"spectra_per_integration", r.xEngine.SpectraPerIntegration(),
		"fringe_stopping", r.dEngine != nil,
	)

	for {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrap(err, "pipeline: session cancelled")
		}

		chunk, err := r.source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return stats, errors.Wrap(err, "pipeline: chunk source")
		}

		stats.Chunks++

		spectra, err := r.fEngine.Process(chunk)
		if errors.Is(err, fengine.ErrChunkTooShort) {
			stats.SkippedChunks++
			r.log.Warn("chunk skipped", "chunk", stats.Chunks, "reason", err.Error())
			continue
		}

		if err != nil {
			return stats, errors.Wrap(err, "pipeline: channeliser")
		}

		if r.dEngine != nil {
			spectra, err = r.dEngine.Apply(spectra, chFreqs)
			if err != nil {
				return stats, errors.Wrap(err, "pipeline: delay correction")
			}
		}

		done, err := r.correlateChunk(spectra, scratch, &stats)
		if err != nil {
			return stats, err
		}

		if done {
			break
		}
	}

	if leftover := r.xEngine.Count(); leftover > 0 {
		r.log.Debug("partial integration discarded", "spectra", leftover)
	}

	r.log.Info("session done",
		"chunks", stats.Chunks,
		"skipped", stats.SkippedChunks,
		"spectra", stats.Spectra,
		"integrations", stats.Integrations,
	)

	return stats, nil
}

// correlateChunk folds every spectrum index of one channelised chunk into
// the accumulator, draining completed integrations to the sink. It reports
// true once the integration bound is reached.
func (r *Runner) correlateChunk(spectra [][][]complex128, scratch [][]complex128, stats *Stats) (bool, error) {
	if len(spectra) != len(scratch) {
		return false, errors.Errorf("pipeline: chunk carries %d antennas but correlator expects %d", len(spectra), len(scratch))
	}

	nSpectra := len(spectra[0])

	for spec := 0; spec < nSpectra; spec++ {
		// A fixed spectrum index spans all antennas simultaneously.
		for ant := range scratch {
			scratch[ant] = spectra[ant][spec]
		}

		vis, err := r.xEngine.CorrelateSpectrum(scratch)
		if err != nil {
			return false, errors.Wrap(err, "pipeline: correlator")
		}

		if err := r.xEngine.Accumulate(vis); err != nil {
			return false, errors.Wrap(err, "pipeline: accumulator")
		}

		stats.Spectra++

		if !r.xEngine.IsReady() {
			continue
		}

		integrated, err := r.xEngine.Integrated()
		if err != nil {
			return false, errors.Wrap(err, "pipeline: integration drain")
		}

		if err := r.sink.Write(integrated); err != nil {
			return false, errors.Wrap(err, "pipeline: sink")
		}

		stats.Integrations++
		r.log.Info("integration emitted", "integration", stats.Integrations, "spectra", stats.Spectra)

		if r.maxIntegrations > 0 && stats.Integrations >= r.maxIntegrations {
			return true, nil
		}
	}

	return false, nil
}

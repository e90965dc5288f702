package xengine

import "errors"

var (
	// ErrEmptyAccumulation reports a drain of an accumulator that holds no
	// spectra. Callers gate on IsReady, or on Count when draining short.
	ErrEmptyAccumulation = errors.New("xengine: integration buffer is empty")

	// ErrShapeMismatch reports input whose antenna or channel counts do not
	// match the engine configuration.
	ErrShapeMismatch = errors.New("xengine: shape mismatch")
)

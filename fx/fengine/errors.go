package fengine

import "errors"

var (
	// ErrChunkTooShort reports a chunk with fewer samples than one FFT
	// window. Callers may recover by accumulating more data or skipping
	// the chunk.
	ErrChunkTooShort = errors.New("fengine: chunk too short for FFT size")

	// ErrEmptyChunk reports a chunk with no antennas or no samples.
	ErrEmptyChunk = errors.New("fengine: empty chunk")

	// ErrRaggedChunk reports antenna rows of unequal length.
	ErrRaggedChunk = errors.New("fengine: antenna rows must have equal length")
)

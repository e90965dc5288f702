// Package fengine implements the channeliser stage of the FX correlator.
//
// Time-domain antenna chunks are split into short windows, tapered, and
// transformed with an FFT into frequency channels. Optional quantization
// emulation runs before channelisation. The engine is stateless between
// chunks apart from its precomputed window coefficients and FFT plan, so a
// single instance can channelise an arbitrarily long stream.
package fengine

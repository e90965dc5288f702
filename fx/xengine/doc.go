// Package xengine implements the correlator and accumulator stage of the
// FX correlator.
//
// For every time sample the engine multiplies each antenna spectrum with the
// conjugate of every other (and itself), producing one visibility row per
// canonical baseline. Products are summed over an integration interval and
// drained as their elementwise mean. Only the i <= j half of the product
// matrix is stored; the (j, i) value is its conjugate, and autocorrelations
// are real by construction.
package xengine

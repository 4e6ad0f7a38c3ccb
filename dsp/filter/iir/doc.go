// Package iir provides a direct-form II transposed runtime for IIR filters
// of arbitrary order given as a transfer function (b, a).
package iir

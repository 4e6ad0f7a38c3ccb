// Package response analyses designed filters: frequency, phase, group-delay
// and phase-delay responses, impulse and step responses, and pole/zero
// locations.
//
// FIR responses are computed with a zero-padded FFT, IIR responses by
// evaluating b/a on a uniform grid from DC towards Nyquist.
package response

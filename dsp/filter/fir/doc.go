// Package fir provides a direct-form FIR filter runtime for real and complex
// tap sets.
//
// A [Filter] applies designed coefficients to an input stream using a
// circular-buffer delay line. It is used to verify designed filters in the
// time domain (impulse and step responses) and to evaluate single points of
// the frequency response.
package fir

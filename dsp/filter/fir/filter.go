package fir

import (
	"math"
	"math/cmplx"
)

// Sample is the element type a [Filter] operates on.
type Sample interface {
	float64 | complex128
}

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter[T Sample] struct {
	coeffs []T
	delay  []T
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New[T Sample](coeffs []T) *Filter[T] {
	c := make([]T, len(coeffs))
	copy(c, coeffs)

	return &Filter[T]{
		coeffs: c,
		delay:  make([]T, len(coeffs)),
	}
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter[T]) ProcessSample(x T) T {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x

	var y T

	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]

		p--
		if p < 0 {
			p = n - 1
		}
	}

	f.pos++
	if f.pos >= n {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter[T]) ProcessBlock(buf []T) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter[T]) ProcessBlockTo(dst, src []T) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *Filter[T]) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter[T]) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter[T]) Coefficients() []T {
	c := make([]T, len(f.coeffs))
	copy(c, f.coeffs)

	return c
}

// ImpulseResponse returns the first n output samples for a unit impulse.
// The filter state is reset before and after.
func (f *Filter[T]) ImpulseResponse(n int) []T {
	f.Reset()
	defer f.Reset()

	in := make([]T, n)
	if n > 0 {
		in[0] = 1
	}

	out := make([]T, n)
	f.ProcessBlockTo(out, in)

	return out
}

// StepResponse returns the first n output samples for a unit step.
// The filter state is reset before and after.
func (f *Filter[T]) StepResponse(n int) []T {
	f.Reset()
	defer f.Reset()

	in := make([]T, n)
	for i := range in {
		in[i] = 1
	}

	out := make([]T, n)
	f.ProcessBlockTo(out, in)

	return out
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz). Negative frequencies are meaningful
// for complex taps.
func (f *Filter[T]) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range f.coeffs {
		h += toComplex(c) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter[T]) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

func toComplex[T Sample](v T) complex128 {
	switch x := any(v).(type) {
	case float64:
		return complex(x, 0)
	case complex128:
		return x
	default:
		return 0
	}
}

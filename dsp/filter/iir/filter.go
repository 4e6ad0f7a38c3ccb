package iir

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrEmptyCoefficients is returned when b or a is empty.
	ErrEmptyCoefficients = errors.New("iir: coefficients must not be empty")
	// ErrZeroLeading is returned when a[0] is zero.
	ErrZeroLeading = errors.New("iir: leading denominator coefficient must not be zero")
)

// Filter is an IIR filter in Direct Form II Transposed:
//
//	y    = b[0]*x + z[0]
//	z[i] = b[i+1]*x - a[i+1]*y + z[i+1]
//
// Coefficients are normalized by a[0] and zero-padded to a common length.
type Filter struct {
	b, a []float64
	z    []float64
}

// New returns a filter for the transfer function b(z)/a(z).
func New(b, a []float64) (*Filter, error) {
	if len(b) == 0 || len(a) == 0 {
		return nil, ErrEmptyCoefficients
	}

	if a[0] == 0 {
		return nil, ErrZeroLeading
	}

	n := max(len(b), len(a))
	f := &Filter{
		b: make([]float64, n),
		a: make([]float64, n),
		z: make([]float64, n-1),
	}

	for i, v := range b {
		f.b[i] = v / a[0]
	}

	for i, v := range a {
		f.a[i] = v / a[0]
	}

	return f, nil
}

// Order returns the filter order.
func (f *Filter) Order() int {
	return len(f.z)
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.z)
	if n == 0 {
		return f.b[0] * x
	}

	y := f.b[0]*x + f.z[0]
	for i := 0; i < n-1; i++ {
		f.z[i] = f.b[i+1]*x - f.a[i+1]*y + f.z[i+1]
	}

	f.z[n-1] = f.b[n]*x - f.a[n]*y

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the filter state.
func (f *Filter) Reset() {
	clear(f.z)
}

// ImpulseResponse returns the first n output samples for a unit impulse,
// starting from zero state. The filter is reset afterwards.
func (f *Filter) ImpulseResponse(n int) []float64 {
	f.Reset()
	defer f.Reset()

	out := make([]float64, n)
	if n > 0 {
		out[0] = 1
	}

	f.ProcessBlock(out)

	return out
}

// StepResponse returns the first n output samples for a unit step,
// starting from zero state. The filter is reset afterwards.
func (f *Filter) StepResponse(n int) []float64 {
	f.Reset()
	defer f.Reset()

	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	f.ProcessBlock(out)

	return out
}

// Response computes H(e^jw) at the given frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	return polyAt(f.b, w) / polyAt(f.a, w)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// polyAt evaluates sum c[k] e^{-jwk} with Horner's scheme in e^{-jw}.
func polyAt(c []float64, w float64) complex128 {
	zinv := cmplx.Exp(complex(0, -w))

	var acc complex128
	for k := len(c) - 1; k >= 0; k-- {
		acc = acc*zinv + complex(c[k], 0)
	}

	return acc
}

package testutil

import (
	"math"
	"math/cmplx"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// ComplexTone generates exp(j*2*pi*f*n/fs). Negative frequencies rotate clockwise.
func ComplexTone(freqHz, sampleRate float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = cmplx.Exp(complex(0, step*float64(i)))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

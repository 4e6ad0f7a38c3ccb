package response

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/iir"
)

// DefaultIIRLength is the impulse/step response length for IIR filters.
const DefaultIIRLength = 50

// Impulse returns the impulse response of b/a. A nil a selects an FIR
// filter, whose response is len(b) samples long. IIR responses have n samples,
// or [DefaultIIRLength] when n <= 0.
func Impulse(b, a []float64, n int) ([]float64, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}

	if a == nil {
		return fir.New(b).ImpulseResponse(len(b)), nil
	}

	flt, err := iir.New(b, a)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	return flt.ImpulseResponse(iirLength(n)), nil
}

// Step returns the step response of b/a, the running sum of [Impulse].
func Step(b, a []float64, n int) ([]float64, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}

	if a == nil {
		return fir.New(b).StepResponse(len(b)), nil
	}

	flt, err := iir.New(b, a)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	return flt.StepResponse(iirLength(n)), nil
}

// ImpulseComplex returns the impulse response of complex FIR taps.
func ImpulseComplex(taps []complex128) []complex128 {
	return fir.New(taps).ImpulseResponse(len(taps))
}

// StepComplex returns the step response of complex FIR taps.
func StepComplex(taps []complex128) []complex128 {
	return fir.New(taps).StepResponse(len(taps))
}

func iirLength(n int) int {
	if n <= 0 {
		return DefaultIIRLength
	}

	return n
}

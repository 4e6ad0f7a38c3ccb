package response

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// PoleZero holds the z-plane zeros and poles of a filter and the gain that
// scales the monic numerator.
type PoleZero struct {
	Zeros []complex128
	Poles []complex128
	Gain  complex128
}

// PoleZeros returns the zeros and poles of b/a. A nil a selects an FIR
// filter, which has len(b)-1 poles at the origin.
func PoleZeros(b, a []float64) (PoleZero, error) {
	zeros, err := polyroot.Roots(b)
	if err != nil {
		return PoleZero{}, fmt.Errorf("response: zeros: %w", err)
	}

	if a == nil {
		return PoleZero{
			Zeros: zeros,
			Poles: make([]complex128, len(b)-1),
			Gain:  complex(leadingReal(b), 0),
		}, nil
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return PoleZero{}, fmt.Errorf("response: poles: %w", err)
	}

	return PoleZero{
		Zeros: zeros,
		Poles: poles,
		Gain:  complex(leadingReal(b)/leadingReal(a), 0),
	}, nil
}

// PoleZerosComplex is [PoleZeros] for complex FIR taps.
func PoleZerosComplex(taps []complex128) (PoleZero, error) {
	zeros, err := polyroot.ComplexRoots(taps)
	if err != nil {
		return PoleZero{}, fmt.Errorf("response: zeros: %w", err)
	}

	var gain complex128

	for _, v := range taps {
		if v != 0 {
			gain = v
			break
		}
	}

	return PoleZero{Zeros: zeros, Poles: make([]complex128, len(taps)-1), Gain: gain}, nil
}

func leadingReal(c []float64) float64 {
	for _, v := range c {
		if v != 0 {
			return v
		}
	}

	return 0
}

package firdes

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// RootRaisedCosine designs a root raised cosine pulse with excess bandwidth
// alpha (0 < alpha <= 1). ntaps is forced odd. The taps sum to gain.
func RootRaisedCosine(gain, sampleRate, symbolRate, alpha float64, ntaps int) ([]float64, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}

	if !(symbolRate > 0) || symbolRate > sampleRate {
		return nil, fmt.Errorf("%w: symbol rate %g with fs=%g", ErrInvalidParameter, symbolRate, sampleRate)
	}

	if !(alpha > 0) || alpha > 1 {
		return nil, fmt.Errorf("%w: rolloff %g outside (0, 1]", ErrInvalidParameter, alpha)
	}

	if ntaps <= 0 {
		return nil, ErrInvalidTaps
	}

	ntaps |= 1
	spb := sampleRate / symbolRate
	taps := make([]float64, ntaps)
	scale := 0.0

	for i := range taps {
		xi := float64(i - ntaps/2)
		x1 := math.Pi * xi / spb
		x2 := 4 * alpha * xi / spb
		x3 := x2*x2 - 1

		var num, den float64

		if math.Abs(x3) >= 1e-6 {
			if i != ntaps/2 {
				num = math.Cos((1+alpha)*x1) + math.Sin((1-alpha)*x1)/(4*alpha*xi/spb)
			} else {
				num = math.Cos((1+alpha)*x1) + (1-alpha)*math.Pi/(4*alpha)
			}

			den = x3 * math.Pi
		} else {
			if alpha == 1 {
				taps[i] = -1
				scale += taps[i]

				continue
			}

			x3 = (1 - alpha) * x1
			x2 = (1 + alpha) * x1
			num = math.Sin(x2)*(1+alpha)*math.Pi -
				math.Cos(x3)*((1-alpha)*math.Pi*spb)/(4*alpha*xi) +
				math.Sin(x3)*spb*spb/(4*alpha*xi*xi)
			den = -32 * math.Pi * alpha * alpha * xi / spb
		}

		taps[i] = 4 * alpha * num / den
		scale += taps[i]
	}

	vecmath.ScaleBlock(taps, taps, gain/scale)

	return taps, nil
}

// Gaussian designs a Gaussian pulse for GMSK-style shaping with bandwidth-time
// product bt and samplesPerSymbol samples per symbol. The taps sum to gain.
func Gaussian(gain, samplesPerSymbol, bt float64, ntaps int) ([]float64, error) {
	if !(samplesPerSymbol > 0) {
		return nil, fmt.Errorf("%w: samples per symbol %g", ErrInvalidParameter, samplesPerSymbol)
	}

	if !(bt > 0) {
		return nil, fmt.Errorf("%w: BT %g must be > 0", ErrInvalidParameter, bt)
	}

	if ntaps <= 0 {
		return nil, ErrInvalidTaps
	}

	dt := 1 / samplesPerSymbol
	s := 1 / (math.Sqrt(math.Ln2) / (2 * math.Pi * bt))
	t0 := -0.5 * float64(ntaps)

	taps := make([]float64, ntaps)
	scale := 0.0

	for i := range taps {
		t0++
		ts := s * dt * t0
		taps[i] = math.Exp(-0.5 * ts * ts)
		scale += taps[i]
	}

	vecmath.ScaleBlock(taps, taps, gain/scale)

	return taps, nil
}

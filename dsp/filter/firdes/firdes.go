package firdes

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// Window selects the window and its Kaiser beta for the window-method designs.
type Window struct {
	Type window.Type
	Beta float64
}

// DefaultWindow is the Hann window used when none is chosen.
var DefaultWindow = Window{Type: window.TypeHann, Beta: window.DefaultBeta}

// NumTaps returns the odd tap count that reaches attenuationDB over a
// transition of width transitionWidth:
//
//	ntaps = int(atten * fs / (22 * tw)), forced odd
func NumTaps(sampleRate, transitionWidth, attenuationDB float64) (int, error) {
	if err := validateRate(sampleRate); err != nil {
		return 0, err
	}

	if err := validateTransition(transitionWidth, attenuationDB); err != nil {
		return 0, err
	}

	n := int(attenuationDB * sampleRate / (22.0 * transitionWidth))
	if n&1 == 0 {
		n++
	}

	return n, nil
}

// LowPass designs a windowed-sinc low-pass filter with cutoff (Hz) at the
// centre of the transition band. DC gain equals gain.
func LowPass(gain, sampleRate, cutoff, transitionWidth, attenuationDB float64, w Window) ([]float64, error) {
	if err := validateCutoff(sampleRate, cutoff); err != nil {
		return nil, err
	}

	ntaps, err := NumTaps(sampleRate, transitionWidth, attenuationDB)
	if err != nil {
		return nil, err
	}

	return lowPassTaps(gain, sampleRate, cutoff, ntaps, w), nil
}

func lowPassTaps(gain, sampleRate, cutoff float64, ntaps int, w Window) []float64 {
	m := (ntaps - 1) / 2
	fwT0 := 2 * math.Pi * cutoff / sampleRate

	taps := make([]float64, ntaps)
	for n := -m; n <= m; n++ {
		if n == 0 {
			taps[n+m] = fwT0 / math.Pi
		} else {
			taps[n+m] = math.Sin(float64(n)*fwT0) / (float64(n) * math.Pi)
		}
	}

	window.Apply(w.Type, taps, window.WithBeta(w.Beta))

	return normalize(taps, gain, func(int) float64 { return 1 })
}

// HighPass designs a windowed-sinc high-pass filter. Gain is applied at Nyquist.
func HighPass(gain, sampleRate, cutoff, transitionWidth, attenuationDB float64, w Window) ([]float64, error) {
	if err := validateCutoff(sampleRate, cutoff); err != nil {
		return nil, err
	}

	ntaps, err := NumTaps(sampleRate, transitionWidth, attenuationDB)
	if err != nil {
		return nil, err
	}

	m := (ntaps - 1) / 2
	fwT0 := 2 * math.Pi * cutoff / sampleRate

	taps := make([]float64, ntaps)
	for n := -m; n <= m; n++ {
		if n == 0 {
			taps[n+m] = 1 - fwT0/math.Pi
		} else {
			taps[n+m] = -math.Sin(float64(n)*fwT0) / (float64(n) * math.Pi)
		}
	}

	window.Apply(w.Type, taps, window.WithBeta(w.Beta))

	return normalize(taps, gain, func(n int) float64 { return math.Cos(float64(n) * math.Pi) }), nil
}

// BandPass designs a windowed-sinc band-pass filter between low and high (Hz).
// Gain is applied at the band centre.
func BandPass(gain, sampleRate, low, high, transitionWidth, attenuationDB float64, w Window) ([]float64, error) {
	if err := validateBand(sampleRate, low, high); err != nil {
		return nil, err
	}

	ntaps, err := NumTaps(sampleRate, transitionWidth, attenuationDB)
	if err != nil {
		return nil, err
	}

	m := (ntaps - 1) / 2
	fwT0 := 2 * math.Pi * low / sampleRate
	fwT1 := 2 * math.Pi * high / sampleRate

	taps := make([]float64, ntaps)
	for n := -m; n <= m; n++ {
		if n == 0 {
			taps[n+m] = (fwT1 - fwT0) / math.Pi
		} else {
			taps[n+m] = (math.Sin(float64(n)*fwT1) - math.Sin(float64(n)*fwT0)) / (float64(n) * math.Pi)
		}
	}

	window.Apply(w.Type, taps, window.WithBeta(w.Beta))

	centre := (fwT0 + fwT1) / 2

	return normalize(taps, gain, func(n int) float64 { return math.Cos(float64(n) * centre) }), nil
}

// BandReject designs a windowed-sinc band-reject (notch) filter that stops
// low..high (Hz). DC gain equals gain.
func BandReject(gain, sampleRate, low, high, transitionWidth, attenuationDB float64, w Window) ([]float64, error) {
	if err := validateBand(sampleRate, low, high); err != nil {
		return nil, err
	}

	ntaps, err := NumTaps(sampleRate, transitionWidth, attenuationDB)
	if err != nil {
		return nil, err
	}

	m := (ntaps - 1) / 2
	fwT0 := 2 * math.Pi * low / sampleRate
	fwT1 := 2 * math.Pi * high / sampleRate

	taps := make([]float64, ntaps)
	for n := -m; n <= m; n++ {
		if n == 0 {
			taps[n+m] = 1 + (fwT0-fwT1)/math.Pi
		} else {
			taps[n+m] = (math.Sin(float64(n)*fwT0) - math.Sin(float64(n)*fwT1)) / (float64(n) * math.Pi)
		}
	}

	window.Apply(w.Type, taps, window.WithBeta(w.Beta))

	return normalize(taps, gain, func(int) float64 { return 1 }), nil
}

// ComplexBandPass designs a complex band-pass filter passing low..high (Hz).
// Edges may be negative. The taps are a low-pass of half the passband width
// shifted to the band centre.
func ComplexBandPass(gain, sampleRate, low, high, transitionWidth, attenuationDB float64, w Window) ([]complex128, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}

	if !(high > low) || low < -sampleRate/2 || high > sampleRate/2 {
		return nil, ErrInvalidBand
	}

	lp, err := LowPass(gain, sampleRate, (high-low)/2, transitionWidth, attenuationDB, w)
	if err != nil {
		return nil, err
	}

	return Rotate(lp, (high+low)/2, sampleRate), nil
}

// Rotate multiplies real taps by a complex exponential at freq (Hz) with the
// phase referenced to the centre tap, shifting the response by freq.
func Rotate(taps []float64, freq, sampleRate float64) []complex128 {
	step := 2 * math.Pi * freq / sampleRate
	n := len(taps)

	var phase float64
	if n&1 == 1 {
		phase = -step * float64(n>>1)
	} else {
		phase = -step / 2 * float64((1+2*n)>>1)
	}

	out := make([]complex128, n)
	for i, t := range taps {
		out[i] = complex(t, 0) * cmplx.Exp(complex(0, phase))
		phase += step
	}

	return out
}

// normalize scales taps so that the response at the reference frequency,
// taps[m] + 2*sum(taps[m+n]*ref(n)), equals gain.
func normalize(taps []float64, gain float64, ref func(n int) float64) []float64 {
	m := (len(taps) - 1) / 2

	fmax := taps[m]
	for n := 1; n <= m; n++ {
		fmax += 2 * taps[n+m] * ref(n)
	}

	if fmax == 0 {
		return taps
	}

	vecmath.ScaleBlock(taps, taps, gain/fmax)

	return taps
}

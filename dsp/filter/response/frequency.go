package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/iir"
)

const (
	// DefaultFFTSize is the FFT length used for FIR responses when none is given.
	DefaultFFTSize = 8192
	// DefaultIIRPoints is the number of frequency points for IIR responses.
	DefaultIIRPoints = 512
)

var (
	// ErrDegenerate is returned alongside a usable response when a magnitude
	// bin is exactly zero. The magnitude is then reported as flat 0 dB.
	ErrDegenerate = errors.New("response: zero magnitude bin (log of zero)")
	// ErrEmpty is returned for empty coefficient slices.
	ErrEmpty = errors.New("response: empty coefficients")
)

// Frequency is a sampled frequency response.
//
// GroupDelay and PhaseDelay are in samples and have one entry less than the
// other slices: GroupDelay[k] is the delay between Freq[k] and Freq[k+1],
// PhaseDelay[k] belongs to Freq[k+1].
type Frequency struct {
	Freq        []float64
	MagnitudeDB []float64
	Phase       []float64
	GroupDelay  []float64
	PhaseDelay  []float64
}

// FIRReal returns the response of real taps over [0, fs/2). nfft is rounded
// up to a power of two no shorter than the filter; zero selects
// [DefaultFFTSize].
func FIRReal(taps []float64, fs float64, nfft int) (Frequency, error) {
	if len(taps) == 0 {
		return Frequency{}, ErrEmpty
	}

	in := make([]complex128, fftSize(nfft, len(taps)))
	for i, v := range taps {
		in[i] = complex(v, 0)
	}

	bins, err := fft(in)
	if err != nil {
		return Frequency{}, err
	}

	n := len(bins)
	half := bins[:n/2]

	freq := make([]float64, len(half))
	for k := range freq {
		freq[k] = float64(k) * fs / float64(n)
	}

	return build(half, freq, 2*math.Pi/float64(n), 0)
}

// FIRComplex returns the response of complex taps over [-fs/2, fs/2), with
// the FFT bins shifted so that DC is in the middle.
func FIRComplex(taps []complex128, fs float64, nfft int) (Frequency, error) {
	if len(taps) == 0 {
		return Frequency{}, ErrEmpty
	}

	in := make([]complex128, fftSize(nfft, len(taps)))
	copy(in, taps)

	bins, err := fft(in)
	if err != nil {
		return Frequency{}, err
	}

	n := len(bins)
	shifted := append(append(make([]complex128, 0, n), bins[n/2:]...), bins[:n/2]...)

	freq := make([]float64, n)
	for k := range freq {
		freq[k] = -fs/2 + float64(k)*fs/float64(n)
	}

	return build(shifted, freq, 2*math.Pi/float64(n), -math.Pi)
}

// IIR returns the response of b/a at n points (zero selects
// [DefaultIIRPoints]) over [0, 1), where 1 is the Nyquist frequency.
func IIR(b, a []float64, n int) (Frequency, error) {
	flt, err := iir.New(b, a)
	if err != nil {
		return Frequency{}, fmt.Errorf("response: %w", err)
	}

	if n <= 0 {
		n = DefaultIIRPoints
	}

	h := make([]complex128, n)
	freq := make([]float64, n)

	for k := range h {
		freq[k] = float64(k) / float64(n)
		h[k] = flt.Response(freq[k], 2)
	}

	resp := Frequency{Freq: freq, MagnitudeDB: magnitudeDB(h)}
	fillPhase(&resp, h, math.Pi/float64(n), 0)

	return resp, nil
}

// build fills a Frequency from FFT bins. dw is the bin spacing in
// rad/sample and w0 the angular frequency of the first bin.
func build(bins []complex128, freq []float64, dw, w0 float64) (Frequency, error) {
	resp := Frequency{Freq: freq, MagnitudeDB: magnitudeDB(bins)}

	var err error

	for _, v := range resp.MagnitudeDB {
		if math.IsInf(v, -1) {
			resp.MagnitudeDB = make([]float64, len(bins))
			err = ErrDegenerate

			break
		}
	}

	fillPhase(&resp, bins, dw, w0)

	return resp, err
}

func magnitudeDB(h []complex128) []float64 {
	re := make([]float64, len(h))
	im := make([]float64, len(h))

	for i, v := range h {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, len(h))
	vecmath.Magnitude(mag, re, im)

	for i, m := range mag {
		mag[i] = 20 * math.Log10(m)
	}

	return mag
}

// fillPhase sets the unwrapped phase plus group and phase delay in samples.
func fillPhase(resp *Frequency, h []complex128, dw, w0 float64) {
	phase := make([]float64, len(h))
	for i, v := range h {
		phase[i] = cmplx.Phase(v)
	}

	resp.Phase = Unwrap(phase)

	if len(h) < 2 {
		return
	}

	resp.GroupDelay = make([]float64, len(h)-1)
	resp.PhaseDelay = make([]float64, len(h)-1)

	for k := range resp.GroupDelay {
		resp.GroupDelay[k] = -(resp.Phase[k+1] - resp.Phase[k]) / dw

		// At DC the phase delay tends to the group delay.
		w := w0 + float64(k+1)*dw
		if w == 0 {
			resp.PhaseDelay[k] = resp.GroupDelay[k]
			continue
		}

		resp.PhaseDelay[k] = -resp.Phase[k+1] / w
	}
}

// Unwrap removes 2*pi jumps between consecutive phase samples.
func Unwrap(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]

		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

func fftSize(nfft, taps int) int {
	if nfft <= 0 {
		nfft = DefaultFFTSize
	}

	n := 1
	for n < max(nfft, taps) {
		n <<= 1
	}

	return n
}

func fft(in []complex128) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(in))
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, len(in))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return out, nil
}

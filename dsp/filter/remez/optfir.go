package remez

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ExtraTaps is the number of taps added to the estimated order for margin.
const ExtraTaps = 2

// PassbandDeviation converts a peak-to-peak passband ripple in dB to the
// linear deviation from unity.
func PassbandDeviation(rippleDB float64) float64 {
	r := math.Pow(10, rippleDB/20)
	return (r - 1) / (r + 1)
}

// StopbandDeviation converts a stopband attenuation in dB to a linear deviation.
func StopbandDeviation(attenuationDB float64) float64 {
	return math.Pow(10, -attenuationDB/20)
}

// Spec is the output of [EstimateOrder], ready to be passed to [Design].
type Spec struct {
	Order   int
	Bands   []float64
	Desired []float64
	Weights []float64
}

// EstimateOrder estimates the filter order for a multi-band specification
// using Herrmann's formula.
//
// cuts are the transition band edges in Hz (two per transition), mags the
// amplitude of each band, devs the maximum deviation of each band and fs the
// sample rate.
func EstimateOrder(cuts, mags, devs []float64, fs float64) (Spec, error) {
	nbands := len(mags)
	if nbands < 2 || len(devs) != nbands || len(cuts) != 2*(nbands-1) {
		return Spec{}, fmt.Errorf("%w: %d cuts, %d magnitudes, %d deviations", ErrInvalidBands, len(cuts), len(mags), len(devs))
	}

	if !(fs > 0) {
		return Spec{}, fmt.Errorf("%w: sample rate %g", ErrInvalidBands, fs)
	}

	f := make([]float64, len(cuts))
	for i, c := range cuts {
		f[i] = c / fs
		if f[i] < 0 || f[i] > 0.5 || (i > 0 && f[i] <= f[i-1]) {
			return Spec{}, fmt.Errorf("%w: edge %g Hz with fs=%g", ErrInvalidBands, c, fs)
		}
	}

	d := make([]float64, nbands)
	for i, v := range devs {
		if !(v > 0) {
			return Spec{}, fmt.Errorf("%w: deviation %g", ErrInvalidBands, v)
		}

		d[i] = v
		if mags[i] != 0 {
			d[i] = v / mags[i]
		}
	}

	var l float64

	if nbands == 2 {
		l = lpOrder(f[0], f[1], d[0], d[1])
	} else {
		for i := 1; i < nbands-1; i++ {
			l1 := lpOrder(f[2*(i-1)], f[2*(i-1)+1], d[i], d[i-1])
			l2 := lpOrder(f[2*i], f[2*i+1], d[i], d[i+1])
			l = math.Max(l, math.Max(l1, l2))
		}
	}

	spec := Spec{Order: int(math.Ceil(l)) - 1}

	spec.Bands = append(spec.Bands, 0)
	for _, v := range f {
		spec.Bands = append(spec.Bands, 2*v)
	}

	spec.Bands = append(spec.Bands, 1)

	maxDev := 0.0
	for _, v := range d {
		maxDev = math.Max(maxDev, v)
	}

	for i, m := range mags {
		spec.Desired = append(spec.Desired, m, m)
		spec.Weights = append(spec.Weights, maxDev/d[i])
	}

	return spec, nil
}

// lpOrder is Herrmann's length estimate for a single transition from f1 to
// f2 (cycles/sample) with deviations dp and ds.
func lpOrder(f1, f2, dp, ds float64) float64 {
	const (
		a1 = 5.309e-3
		a2 = 7.114e-2
		a3 = -4.761e-1
		a4 = -2.66e-3
		a5 = -5.941e-1
		a6 = -4.278e-1
		b1 = 11.01217
		b2 = 0.5124401
	)

	df := math.Abs(f2 - f1)
	ddp := math.Log10(dp)
	dds := math.Log10(ds)

	dinf := (a1*ddp*ddp+a2*ddp+a3)*dds + (a4*ddp*ddp + a5*ddp + a6)
	ff := b1 + b2*(ddp-dds)

	return dinf/df - ff*df + 1
}

// designSpec runs [Design] for spec and retries once on a denser grid with
// more iterations when the exchange does not settle.
func designSpec(spec Spec, forceOdd bool, opts []Option) ([]float64, error) {
	order := spec.Order
	if forceOdd && order%2 == 1 {
		order++
	}

	n := order + ExtraTaps + 1

	h, err := Design(n, spec.Bands, spec.Desired, spec.Weights, opts...)
	if !errors.Is(err, ErrNoConvergence) {
		return h, err
	}

	retry := append(opts[:len(opts):len(opts)],
		WithGridDensity(2*defaultGridDensity), WithMaxIterations(2*defaultMaxIterations))

	return Design(n, spec.Bands, spec.Desired, spec.Weights, retry...)
}

// LowPass designs an equiripple low-pass with passband to passEdge and
// stopband from stopEdge (Hz).
func LowPass(gain, fs, passEdge, stopEdge, rippleDB, attenuationDB float64, opts ...Option) ([]float64, error) {
	spec, err := EstimateOrder(
		[]float64{passEdge, stopEdge},
		[]float64{gain, 0},
		[]float64{PassbandDeviation(rippleDB), StopbandDeviation(attenuationDB)},
		fs,
	)
	if err != nil {
		return nil, err
	}

	return designSpec(spec, false, opts)
}

// HighPass designs an equiripple high-pass with stopband to stopEdge and
// passband from passEdge (Hz). The tap count is always odd.
func HighPass(gain, fs, stopEdge, passEdge, rippleDB, attenuationDB float64, opts ...Option) ([]float64, error) {
	spec, err := EstimateOrder(
		[]float64{stopEdge, passEdge},
		[]float64{0, gain},
		[]float64{StopbandDeviation(attenuationDB), PassbandDeviation(rippleDB)},
		fs,
	)
	if err != nil {
		return nil, err
	}

	return designSpec(spec, true, opts)
}

// BandPass designs an equiripple band-pass passing passLow..passHigh with
// stopbands below stopLow and above stopHigh (Hz).
func BandPass(gain, fs, stopLow, passLow, passHigh, stopHigh, rippleDB, attenuationDB float64, opts ...Option) ([]float64, error) {
	sd := StopbandDeviation(attenuationDB)

	spec, err := EstimateOrder(
		[]float64{stopLow, passLow, passHigh, stopHigh},
		[]float64{0, gain, 0},
		[]float64{sd, PassbandDeviation(rippleDB), sd},
		fs,
	)
	if err != nil {
		return nil, err
	}

	return designSpec(spec, false, opts)
}

// BandReject designs an equiripple band-reject filter with passbands below
// passLow and above passHigh and a stopband stopLow..stopHigh (Hz). The tap
// count is always odd.
func BandReject(gain, fs, passLow, stopLow, stopHigh, passHigh, rippleDB, attenuationDB float64, opts ...Option) ([]float64, error) {
	pd := PassbandDeviation(rippleDB)

	spec, err := EstimateOrder(
		[]float64{passLow, stopLow, stopHigh, passHigh},
		[]float64{gain, 0, gain},
		[]float64{pd, StopbandDeviation(attenuationDB), pd},
		fs,
	)
	if err != nil {
		return nil, err
	}

	return designSpec(spec, true, opts)
}

// ComplexBandPass designs a complex equiripple band-pass by shifting a
// low-pass prototype to the centre of passLow..passHigh. Edges may be negative.
func ComplexBandPass(gain, fs, stopLow, passLow, passHigh, stopHigh, rippleDB, attenuationDB float64, opts ...Option) ([]complex128, error) {
	if !(stopLow < passLow && passLow < passHigh && passHigh < stopHigh) {
		return nil, fmt.Errorf("%w: %g %g %g %g", ErrInvalidBands, stopLow, passLow, passHigh, stopHigh)
	}

	centre := (passHigh + passLow) / 2

	lp, err := LowPass(gain, fs, passHigh-centre, stopHigh-centre, rippleDB, attenuationDB, opts...)
	if err != nil {
		return nil, err
	}

	taps := make([]complex128, len(lp))
	for i, v := range lp {
		taps[i] = complex(v, 0) * cmplx.Exp(complex(0, 2*math.Pi*centre/fs*float64(i)))
	}

	return taps, nil
}

package window

import "math"

// Analysis holds numerically measured spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// MainLobeBins is the one-sided distance from DC to the first null, in bins.
	MainLobeBins float64
	// HighestSidelobedB is the highest sidelobe level relative to DC in dB.
	HighestSidelobedB float64
}

// Analyze measures spectral properties of the given window coefficients by
// evaluating the DTFT on a grid of 1/8 bin.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	dc := dtftPower(coeffs, 0)
	if dc == 0 {
		return Analysis{}
	}

	enbw, _ := EquivalentNoiseBandwidth(coeffs)

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	nf := float64(n)
	step := 1 / (8 * nf)

	// First null: the first local minimum once the main lobe has fallen
	// below a tenth of the DC power.
	null := 0.5
	prev := dc

	for f := step; f < 0.5; f += step {
		p := dtftPower(coeffs, f)
		if prev < dc/10 && p > prev {
			null = f - step
			break
		}

		prev = p
	}

	peak := 0.0
	for f := null; f < 0.5; f += step / 4 {
		peak = math.Max(peak, dtftPower(coeffs, f))
	}

	sidelobe := math.Inf(-1)
	if peak > 0 {
		sidelobe = 10 * math.Log10(peak/dc)
	}

	return Analysis{
		CoherentGain:      sum / nf,
		ENBW:              enbw,
		MainLobeBins:      null * nf,
		HighestSidelobedB: sidelobe,
	}
}

// dtftPower evaluates |W(f)|^2 at normalized frequency f in cycles/sample.
func dtftPower(coeffs []float64, f float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * f

	for k, c := range coeffs {
		re += c * math.Cos(w*float64(k))
		im -= c * math.Sin(w*float64(k))
	}

	return re*re + im*im
}

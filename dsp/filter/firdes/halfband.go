package firdes

// HalfBand designs a windowed-sinc half-band low-pass with cutoff fs/4.
//
// The tap count from [NumTaps] is raised to the next 4k+3 so that every
// second tap away from the centre is exactly zero and the outermost taps are
// not. DC gain equals gain.
func HalfBand(gain, sampleRate, transitionWidth, attenuationDB float64, w Window) ([]float64, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}

	ntaps, err := NumTaps(sampleRate, transitionWidth, attenuationDB)
	if err != nil {
		return nil, err
	}

	for ntaps%4 != 3 {
		ntaps += 2
	}

	taps := lowPassTaps(gain, sampleRate, sampleRate/4, ntaps, w)

	m := (ntaps - 1) / 2
	for n := 2; n <= m; n += 2 {
		taps[m+n] = 0
		taps[m-n] = 0
	}

	return taps, nil
}

package firdes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("firdes: sample rate must be > 0")
	// ErrInvalidBand is returned for cutoffs outside (0, fs/2) or out of order.
	ErrInvalidBand = errors.New("firdes: invalid band edges")
	// ErrInvalidTransition is returned for a non-positive transition width.
	ErrInvalidTransition = errors.New("firdes: transition width must be > 0")
	// ErrInvalidAttenuation is returned for a non-positive attenuation.
	ErrInvalidAttenuation = errors.New("firdes: attenuation must be > 0")
	// ErrInvalidTaps is returned for a non-positive tap count.
	ErrInvalidTaps = errors.New("firdes: number of taps must be > 0")
	// ErrInvalidParameter is returned for out-of-range shape parameters.
	ErrInvalidParameter = errors.New("firdes: invalid parameter")
)

func validateRate(fs float64) error {
	if !(fs > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, fs)
	}
	return nil
}

func validateCutoff(fs, cutoff float64) error {
	if err := validateRate(fs); err != nil {
		return err
	}
	if !(cutoff > 0) || cutoff > fs/2 {
		return fmt.Errorf("%w: cutoff %g outside (0, %g]", ErrInvalidBand, cutoff, fs/2)
	}
	return nil
}

func validateBand(fs, low, high float64) error {
	if err := validateRate(fs); err != nil {
		return err
	}
	if !(low > 0) || !(high > low) || high > fs/2 {
		return fmt.Errorf("%w: %g..%g with fs=%g", ErrInvalidBand, low, high, fs)
	}
	return nil
}

func validateTransition(tw, atten float64) error {
	if !(tw > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidTransition, tw)
	}
	if !(atten > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidAttenuation, atten)
	}
	return nil
}

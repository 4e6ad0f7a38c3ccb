package iirdes

import "errors"

var (
	// ErrInvalidEdges is returned for band edges outside (0, 1) or in an
	// order that does not describe the requested band.
	ErrInvalidEdges = errors.New("iirdes: invalid band edges")
	// ErrInvalidGain is returned unless 0 < passband ripple < stopband attenuation.
	ErrInvalidGain = errors.New("iirdes: invalid passband/stopband gain")
	// ErrOrder is returned when no usable filter order exists for the request.
	ErrOrder = errors.New("iirdes: invalid filter order")
	// ErrUnstable is returned when the discretized filter has a pole on or
	// outside the unit circle or non-finite coefficients.
	ErrUnstable = errors.New("iirdes: unstable filter")
)

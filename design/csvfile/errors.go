package csvfile

import "errors"

var (
	// ErrOpen wraps the os error when a file cannot be opened or created.
	ErrOpen = errors.New("csvfile: cannot open file")
	// ErrMissingRestype is returned for a file without a restype row.
	ErrMissingRestype = errors.New("csvfile: missing restype")
	// ErrUnknownRestype is returned for a restype other than fir or iir.
	ErrUnknownRestype = errors.New("csvfile: unknown restype")
	// ErrUnknownKind is returned when filttype or bandtype names no known
	// filter kind.
	ErrUnknownKind = errors.New("csvfile: unknown filter kind")
	// ErrMissingCoefficients is returned when the taps row (FIR) or the b
	// and a rows (IIR) are missing or empty.
	ErrMissingCoefficients = errors.New("csvfile: missing coefficients")
	// ErrMalformedCoefficient is returned for a coefficient that does not
	// parse as a number.
	ErrMalformedCoefficient = errors.New("csvfile: malformed coefficient")
)

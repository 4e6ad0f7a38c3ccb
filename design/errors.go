package design

import "errors"

var (
	// ErrDesign wraps every failure of [Design] and [Record.Design].
	ErrDesign = errors.New("design: filter design failed")
	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("design: invalid parameters")
	// ErrUnknownKind is returned for a filter kind, restype or code that is
	// not in the dictionaries.
	ErrUnknownKind = errors.New("design: unknown filter kind")
	// ErrUnsupported is returned for parameter combinations no designer
	// implements, such as an equiripple half-band filter.
	ErrUnsupported = errors.New("design: unsupported design")
	// ErrInvalidRecord is returned by Record.Validate.
	ErrInvalidRecord = errors.New("design: invalid record")
)

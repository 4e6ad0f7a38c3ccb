package design

import (
	"fmt"
	"slices"
)

// Record is a designed filter: its parameters, its coefficients and any
// design-file parameters this package does not know.
//
// An FIR record holds Taps; an IIR record holds B and A. A Record is not
// safe for concurrent mutation.
type Record struct {
	Params Params
	Taps   Coefficients
	B, A   Coefficients
	// Extra holds unrecognised parameters read from a design file. They are
	// written back unchanged.
	Extra []Param
}

// NewRecord returns a record of kind with default parameters and no
// coefficients.
func NewRecord(kind Kind) (*Record, error) {
	p, err := DefaultParams(kind)
	if err != nil {
		return nil, err
	}

	return &Record{Params: p}, nil
}

// Kind returns the kind of r's params.
func (r *Record) Kind() Kind { return r.Params.Kind() }

// Restype returns the response type of r.
func (r *Record) Restype() Restype { return r.Params.Kind().Restype() }

// Validate checks that r has params and that its coefficients match its
// restype.
func (r *Record) Validate() error {
	if r.Params == nil {
		return fmt.Errorf("%w: no params", ErrInvalidRecord)
	}

	switch r.Restype() {
	case RestypeFIR:
		if r.Taps.Len() == 0 {
			return fmt.Errorf("%w: fir record without taps", ErrInvalidRecord)
		}
		if r.B.Len() != 0 || r.A.Len() != 0 {
			return fmt.Errorf("%w: fir record with b/a coefficients", ErrInvalidRecord)
		}
	case RestypeIIR:
		if r.B.Len() == 0 || r.A.Len() == 0 {
			return fmt.Errorf("%w: iir record needs b and a", ErrInvalidRecord)
		}
		if r.B.IsComplex() || r.A.IsComplex() {
			return fmt.Errorf("%w: complex iir coefficients", ErrInvalidRecord)
		}
		if r.Taps.Len() != 0 {
			return fmt.Errorf("%w: iir record with taps", ErrInvalidRecord)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownKind, r.Params.Kind())
	}

	return nil
}

// NumTaps returns the FIR tap count or the IIR numerator length.
func (r *Record) NumTaps() int {
	if r.Params != nil && r.Restype() == RestypeIIR {
		return r.B.Len()
	}

	return r.Taps.Len()
}

// Design recomputes the coefficients from r's params and replaces the old
// ones. The ntaps parameter is updated to the new length. On error r is left
// unchanged and the error wraps [ErrDesign].
func (r *Record) Design() error {
	if r.Params == nil {
		return fmt.Errorf("%w: %w: no params", ErrDesign, ErrInvalidRecord)
	}

	res, err := Design(r.Params)
	if err != nil {
		return err
	}

	r.Taps, r.B, r.A = res.Taps, res.B, res.A
	Set(r.Params, "ntaps", Number(float64(res.NumTaps())))

	return nil
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := &Record{
		Taps:  r.Taps,
		B:     r.B,
		A:     r.A,
		Extra: slices.Clone(r.Extra),
	}

	if r.Params != nil {
		out.Params = cloneParams(r.Params)
	}

	return out
}

func cloneParams(p Params) Params {
	switch p := p.(type) {
	case *LowPass:
		c := *p
		return &c
	case *HighPass:
		c := *p
		return &c
	case *BandPass:
		c := *p
		return &c
	case *ComplexBandPass:
		c := *p
		return &c
	case *BandNotch:
		c := *p
		return &c
	case *RootRaisedCosine:
		c := *p
		return &c
	case *Gaussian:
		c := *p
		return &c
	case *HalfBand:
		c := *p
		return &c
	case *IIRLowPass:
		c := *p
		return &c
	case *IIRHighPass:
		c := *p
		return &c
	case *IIRBandPass:
		c := *p
		return &c
	case *IIRBandStop:
		c := *p
		return &c
	default:
		return p
	}
}

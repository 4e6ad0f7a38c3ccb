package design

import "slices"

// Coefficients is an ordered list of filter coefficients, either all real or
// all complex. The zero value is an empty real list.
type Coefficients struct {
	real    []float64
	cplx    []complex128
	isCmplx bool
}

// RealCoefficients returns real coefficients holding a copy of v.
func RealCoefficients(v []float64) Coefficients {
	return Coefficients{real: slices.Clone(v)}
}

// ComplexCoefficients returns complex coefficients holding a copy of v.
func ComplexCoefficients(v []complex128) Coefficients {
	return Coefficients{cplx: slices.Clone(v), isCmplx: true}
}

// Len returns the number of coefficients.
func (c Coefficients) Len() int {
	if c.isCmplx {
		return len(c.cplx)
	}

	return len(c.real)
}

// IsComplex reports whether c holds complex coefficients.
func (c Coefficients) IsComplex() bool { return c.isCmplx }

// Real returns a copy of real coefficients, or nil when c is complex.
func (c Coefficients) Real() []float64 {
	if c.isCmplx {
		return nil
	}

	return slices.Clone(c.real)
}

// Complex returns a copy of the coefficients as complex values. Real
// coefficients get a zero imaginary part.
func (c Coefficients) Complex() []complex128 {
	if c.isCmplx {
		return slices.Clone(c.cplx)
	}

	out := make([]complex128, len(c.real))
	for i, v := range c.real {
		out[i] = complex(v, 0)
	}

	return out
}

// Equal reports whether c and o have the same type and equal values.
func (c Coefficients) Equal(o Coefficients) bool {
	if c.isCmplx != o.isCmplx {
		return false
	}

	if c.isCmplx {
		return slices.Equal(c.cplx, o.cplx)
	}

	return slices.Equal(c.real, o.real)
}

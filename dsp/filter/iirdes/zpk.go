package iirdes

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// ZPK is a filter in zero-pole-gain form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
//
// Complex roots always come with their conjugates.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// TransferFunction is a filter in polynomial form with coefficients in
// descending powers. For a digital filter that is
//
//	H(z) = (B[0] + B[1] z^-1 + ...) / (A[0] + A[1] z^-1 + ...)
type TransferFunction struct {
	B []float64
	A []float64
}

// Order returns the filter order, the degree of the denominator.
func (tf TransferFunction) Order() int {
	return max(len(tf.A)-1, 0)
}

// TransferFunction expands f into numerator and denominator polynomials.
func (f ZPK) TransferFunction() TransferFunction {
	b := polyroot.ExpandReal(f.Zeros)
	for i := range b {
		b[i] *= f.Gain
	}

	return TransferFunction{B: b, A: polyroot.ExpandReal(f.Poles)}
}

// Response evaluates the analog response H(s) at s.
func (f ZPK) Response(s complex128) complex128 {
	h := complex(f.Gain, 0)
	for _, z := range f.Zeros {
		h *= s - z
	}

	for _, p := range f.Poles {
		h /= s - p
	}

	return h
}

func (f ZPK) degree() int {
	return len(f.Poles) - len(f.Zeros)
}

func (f ZPK) stable() bool {
	for _, p := range f.Poles {
		if !(cmplx.Abs(p) < 1) {
			return false
		}
	}

	return true
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

func prodNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func prodShift(c complex128, v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= c - x
	}

	return out
}

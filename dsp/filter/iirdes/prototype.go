package iirdes

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/internal/ellipticmath"
)

const epsilon = 2.220446049250313e-16

// Butterworth returns the analog Butterworth low-pass prototype of order n
// with its -3 dB point at 1 rad/s.
func Butterworth(n int) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrOrder, n)
	}

	return ZPK{Poles: butterworthPoles(n), Gain: 1}, nil
}

func butterworthPoles(n int) []complex128 {
	p := make([]complex128, n)
	for i := range p {
		m := float64(2*i - n + 1)
		p[i] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*n)))
	}

	return p
}

// Chebyshev1 returns the analog Chebyshev type I low-pass prototype of order
// n with rippleDB of passband ripple. The response leaves the ripple band at
// 1 rad/s.
func Chebyshev1(n int, rippleDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrOrder, n)
	}

	if !(rippleDB > 0) {
		return ZPK{}, fmt.Errorf("%w: ripple %g dB", ErrInvalidGain, rippleDB)
	}

	eps := math.Sqrt(dbToMinusOne(rippleDB))
	mu := math.Asinh(1/eps) / float64(n)

	p := make([]complex128, n)
	for i := range p {
		theta := math.Pi * float64(2*i-n+1) / float64(2*n)
		p[i] = -cmplx.Sinh(complex(mu, theta))
	}

	k := real(prodNeg(p))
	if n%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}

	return ZPK{Poles: p, Gain: k}, nil
}

// Chebyshev2 returns the analog Chebyshev type II (inverse Chebyshev)
// low-pass prototype of order n. The stopband starts at 1 rad/s and is at
// least stopbandDB below the passband.
func Chebyshev2(n int, stopbandDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrOrder, n)
	}

	if !(stopbandDB > 0) {
		return ZPK{}, fmt.Errorf("%w: attenuation %g dB", ErrInvalidGain, stopbandDB)
	}

	de := 1 / math.Sqrt(dbToMinusOne(stopbandDB))
	mu := math.Asinh(1/de) / float64(n)

	// The zero at infinity for m == 0 is dropped for odd orders.
	z := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		if m == 0 {
			continue
		}

		z = append(z, complex(0, 1/math.Sin(float64(m)*math.Pi/float64(2*n))))
	}

	p := butterworthPoles(n)
	for i, v := range p {
		p[i] = 1 / complex(math.Sinh(mu)*real(v), math.Cosh(mu)*imag(v))
	}

	return ZPK{Zeros: z, Poles: p, Gain: real(prodNeg(p) / prodNeg(z))}, nil
}

// Elliptic returns the analog elliptic (Cauer) low-pass prototype of order n
// with rippleDB of passband ripple up to 1 rad/s and at least stopbandDB of
// stopband attenuation.
//
//nolint:cyclop,funlen
func Elliptic(n int, rippleDB, stopbandDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrOrder, n)
	}

	if !(rippleDB > 0) || !(stopbandDB > rippleDB) {
		return ZPK{}, fmt.Errorf("%w: ripple %g dB, attenuation %g dB", ErrInvalidGain, rippleDB, stopbandDB)
	}

	epsSq := dbToMinusOne(rippleDB)
	ck1Sq := epsSq / dbToMinusOne(stopbandDB)

	if n == 1 {
		p := -math.Sqrt(1 / epsSq)
		return ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	m := ellipticmath.DegreeParam(n, ck1Sq)
	if !(m > 0 && m < 1) {
		return ZPK{}, fmt.Errorf("%w: degree equation has no solution for order %d", ErrOrder, n)
	}

	capk, _ := ellipticmath.EllipK(math.Sqrt(m), ellipticmath.Tol)
	val0, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq), ellipticmath.Tol)

	var (
		sn, cn, dn []float64
		zeros      []complex128
	)

	for j := 1 - n%2; j < n; j += 2 {
		s, c, d, ok := ellipticmath.Jacobi(float64(j)*capk/float64(n), m)
		if !ok {
			return ZPK{}, fmt.Errorf("%w: elliptic functions diverged", ErrOrder)
		}

		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)

		if math.Abs(s) > epsilon {
			z := complex(0, 1/(math.Sqrt(m)*s))
			zeros = append(zeros, z, cmplx.Conj(z))
		}
	}

	r := ellipticmath.ArcSC1(1/math.Sqrt(epsSq), ck1Sq)
	if !(r > 0) || math.IsInf(r, 0) {
		return ZPK{}, fmt.Errorf("%w: inverse elliptic function failed", ErrOrder)
	}

	v0 := capk * r / (float64(n) * val0)

	sv, cv, dv, ok := ellipticmath.Jacobi(v0, 1-m)
	if !ok {
		return ZPK{}, fmt.Errorf("%w: elliptic functions diverged", ErrOrder)
	}

	base := make([]complex128, len(sn))
	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		base[i] = -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)
	}

	poles := append([]complex128(nil), base...)

	// For odd orders the real pole is not duplicated.
	thr := 0.0
	if n%2 == 1 {
		norm2 := 0.0
		for _, p := range base {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr = epsilon * math.Sqrt(norm2)
	}

	for _, p := range base {
		if n%2 == 0 || math.Abs(imag(p)) > thr {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	gain := real(prodNeg(poles) / prodNeg(zeros))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

// dbToMinusOne returns 10^(db/10) - 1.
func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10)
}

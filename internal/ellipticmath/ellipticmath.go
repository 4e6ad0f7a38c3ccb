// Package ellipticmath implements the complete elliptic integral and Jacobi
// elliptic functions needed by the elliptic (Cauer) IIR prototype and its
// order estimate.
//
// Functions taking k use the modulus; functions taking m use the parameter
// m = k^2, matching the usual filter-design formulas.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the Landen convergence threshold used by the filter designers.
const Tol = 2.2e-16

const (
	arcSNIterations = 10
	nomeTerms       = 7
	kSmall          = 1e-6
)

// Landen computes the Landen sequence of descending moduli for k.
// If tol < 1 it is interpreted as a convergence threshold; otherwise
// it is interpreted as a fixed iteration count.
func Landen(k, tol float64) []float64 {
	var v []float64
	if k == 0 || k == 1.0 {
		return []float64{k}
	}

	if tol < 1 {
		for k > tol {
			t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
			k = t * t
			v = append(v, k)
		}

		return v
	}

	for range int(tol) {
		t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}

	return v
}

// LandenK computes K(k) from a precomputed Landen sequence using
// K(k) = (pi/2) * product(1 + v[i]).
func LandenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}

	return prod * math.Pi * 0.5
}

// EllipK computes the complete elliptic integral K(k) and its complement
// K'(k) = K(sqrt(1-k^2)). Asymptotic forms are used close to k=0 and k=1.
func EllipK(k, tol float64) (float64, float64) {
	kmax := math.Sqrt(1 - kSmall*kSmall)

	var K, Kp float64

	switch {
	case k == 1.0:
		K = math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	default:
		K = LandenK(Landen(k, tol))
	}

	switch {
	case k == 0.0:
		Kp = math.Inf(1)
	case k < kSmall:
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	default:
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = LandenK(Landen(kp, tol))
	}

	return K, Kp
}

// CDE computes cd(u*K, k), with u normalized to the quarter period.
func CDE(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)

	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}

// SNE computes sn(u*K, k) for a vector of real arguments normalized to the
// quarter period.
func SNE(u []float64, k, tol float64) []float64 {
	v := Landen(k, tol)

	w := make([]float64, len(u))
	for i := range u {
		w[i] = math.Sin(u[i] * math.Pi * 0.5)
	}

	for i := len(v) - 1; i >= 0; i-- {
		for j := range w {
			w[j] = ((1 + v[i]) * w[j]) / (1 + v[i]*w[j]*w[j])
		}
	}

	return w
}

// Jacobi returns sn, cn and dn of the real argument u for parameter m in
// [0, 1). ok is false for parameters outside that range or non-finite results.
func Jacobi(u, m float64) (sn, cn, dn float64, ok bool) {
	if !(m >= 0 && m < 1) {
		return 0, 0, 0, false
	}

	k := math.Sqrt(m)

	K, _ := EllipK(k, Tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	un := u / K

	sn = SNE([]float64{un}, k, Tol)[0]
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1.0 - m*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn = math.Sqrt(math.Max(dn2, 0))
	cn = real(CDE(complex(un, 0), k, Tol)) * dn

	return sn, cn, dn, true
}

// ArcSC1 returns the real v with sc(v, 1-m) = w, equivalently the imaginary
// part of the inverse sn of j*w for parameter m. NaN signals no real solution.
func ArcSC1(w, m float64) float64 {
	z := arcSN(complex(0, w), m)
	if math.Abs(real(z)) > 1e-7*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func arcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNIterations - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := math.Pi * 0.5
	for _, kn := range ks[1:] {
		K *= real(1.0 + kn)
	}

	wn := w
	for i := range len(ks) - 1 {
		den := (1.0 + ks[i+1]) * (1.0 + complement(ks[i]*wn))
		if den == 0 {
			return cmplx.NaN()
		}

		wn = 2.0 * wn / den
	}

	return complex(K, 0) * (2.0 / math.Pi) * cmplx.Asin(wn)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// DegreeParam solves the degree equation n*K'(m)/K(m) = K'(m1)/K(m1) for the
// parameter m, using the nome series. NaN is returned for invalid input.
func DegreeParam(n int, m1 float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	K1, K1p := EllipK(math.Sqrt(m1), Tol)
	if K1 <= 0 || K1p <= 0 || math.IsNaN(K1) || math.IsNaN(K1p) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q := math.Pow(math.Exp(-math.Pi*K1p/K1), 1.0/float64(n))

	num := 0.0
	for i := range nomeTerms {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < nomeTerms; i++ {
		den += 2.0 * math.Pow(q, float64(i*i))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}

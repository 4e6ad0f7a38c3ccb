// Package polyroot finds polynomial roots and expands roots back into
// polynomial coefficients. Pole/zero extraction and the IIR designers use it.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (all zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Outer coefficients at or below negligible times the largest one count as
// zero.
const negligible = 1e-14

// Roots returns the roots of the real polynomial
// coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
// Leading zero coefficients are ignored and trailing zeros yield roots at the
// origin. Eigenvalues of the companion matrix are used; when the eigen
// decomposition fails the Durand-Kerner iteration is tried instead.
func Roots(coeff []float64) ([]complex128, error) {
	c, origin, err := trimReal(coeff)
	if err != nil {
		return nil, err
	}

	roots := make([]complex128, origin, origin+len(c)-1)
	if len(c) == 1 {
		return roots, nil
	}

	n := len(c) - 1
	if n == 1 {
		return append(roots, complex(-c[1]/c[0], 0)), nil
	}

	comp := mat.NewDense(n, n, nil)
	for j := range n {
		comp.Set(0, j, -c[j+1]/c[0])
	}

	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if eig.Factorize(comp, mat.EigenNone) {
		return append(roots, eig.Values(nil)...), nil
	}

	cc := make([]complex128, len(c))
	for i, v := range c {
		cc[i] = complex(v, 0)
	}

	dk, err := DurandKerner(cc)
	if err != nil {
		return nil, err
	}

	return append(roots, dk...), nil
}

// ComplexRoots returns the roots of a polynomial with complex coefficients
// in descending power order.
//
// gonum has no complex eigensolver, so the complex companion matrix C is
// embedded in the real matrix [[Re C, -Im C], [Im C, Re C]]. Its eigenvalues
// are the roots together with their conjugates; each root is picked by its
// residual and its conjugate partner dropped. Durand-Kerner is the fallback.
func ComplexRoots(coeff []complex128) ([]complex128, error) {
	floor := 0.0
	for _, v := range coeff {
		floor = math.Max(floor, cmplx.Abs(v))
	}

	floor *= negligible

	start := 0
	for start < len(coeff) && cmplx.Abs(coeff[start]) <= floor {
		start++
	}

	end := len(coeff)
	for end > start && cmplx.Abs(coeff[end-1]) <= floor {
		end--
	}

	if start == end {
		return nil, ErrDegeneratePolynomial
	}

	roots := make([]complex128, len(coeff)-end, len(coeff)-start-1)
	c := coeff[start:end]

	n := len(c) - 1
	switch n {
	case 0:
		return roots, nil
	case 1:
		return append(roots, -c[1]/c[0]), nil
	}

	if eig, ok := companionEigen(c); ok {
		return append(roots, pickRoots(c, eig)...), nil
	}

	dk, err := DurandKerner(c)
	if err != nil {
		return nil, err
	}

	return append(roots, dk...), nil
}

// companionEigen returns the 2n eigenvalues of the real embedding of the
// companion matrix of c.
func companionEigen(c []complex128) ([]complex128, bool) {
	n := len(c) - 1
	m := mat.NewDense(2*n, 2*n, nil)

	set := func(i, j int, v complex128) {
		m.Set(i, j, real(v))
		m.Set(i, j+n, -imag(v))
		m.Set(i+n, j, imag(v))
		m.Set(i+n, j+n, real(v))
	}

	for j := range n {
		set(0, j, -c[j+1]/c[0])
	}

	for i := 1; i < n; i++ {
		set(i, i-1, 1)
	}

	var eig mat.Eigen
	if !eig.Factorize(m, mat.EigenNone) {
		return nil, false
	}

	return eig.Values(nil), true
}

// pickRoots selects the len(c)-1 roots of c from the eigenvalues of the real
// embedding. The best remaining candidate is taken and the candidate nearest
// to its conjugate is discarded with it.
func pickRoots(c, cand []complex128) []complex128 {
	n := len(c) - 1
	res := make([]float64, len(cand))

	for i, z := range cand {
		res[i] = relResidual(c, z)
	}

	used := make([]bool, len(cand))
	out := make([]complex128, 0, n)

	for range n {
		best := -1

		for i := range cand {
			if !used[i] && (best < 0 || res[i] < res[best]) {
				best = i
			}
		}

		used[best] = true
		out = append(out, cand[best])

		conj := cmplx.Conj(cand[best])
		partner := -1

		for i := range cand {
			if used[i] {
				continue
			}

			if partner < 0 || cmplx.Abs(cand[i]-conj) < cmplx.Abs(cand[partner]-conj) {
				partner = i
			}
		}

		if partner >= 0 {
			used[partner] = true
		}
	}

	return out
}

// relResidual is |p(x)| scaled by sum |c_i| |x|^(n-i), the size of the
// terms that cancel at a root.
func relResidual(c []complex128, x complex128) float64 {
	ax := cmplx.Abs(x)
	scale := 0.0

	for _, v := range c {
		scale = scale*ax + cmplx.Abs(v)
	}

	if scale == 0 {
		return 0
	}

	return cmplx.Abs(PolyEval(c, x)) / scale
}

// Expand returns the monic polynomial with the given roots, in descending
// power order: prod (z - r_i).
func Expand(roots []complex128) []complex128 {
	p := make([]complex128, 1, len(roots)+1)
	p[0] = 1

	for _, r := range roots {
		p = append(p, 0)
		for i := len(p) - 1; i > 0; i-- {
			p[i] -= r * p[i-1]
		}
	}

	return p
}

// ExpandReal is [Expand] keeping only the real parts. It is intended for root
// sets closed under conjugation, whose expansion is real up to rounding.
func ExpandReal(roots []complex128) []float64 {
	p := Expand(roots)

	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = real(v)
	}

	return out
}

// trimReal drops leading zeros and counts trailing zeros. Zero means
// negligible relative to the largest coefficient.
func trimReal(coeff []float64) ([]float64, int, error) {
	floor := 0.0
	for _, v := range coeff {
		floor = math.Max(floor, math.Abs(v))
	}

	floor *= negligible

	start := 0
	for start < len(coeff) && math.Abs(coeff[start]) <= floor {
		start++
	}

	end := len(coeff)
	for end > start && math.Abs(coeff[end-1]) <= floor {
		end--
	}

	if start == end {
		return nil, 0, ErrDegeneratePolynomial
	}

	return coeff[start:end], len(coeff) - end, nil
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual, maxRel := 0.0, 0.0

	for _, r := range roots {
		maxResidual = math.Max(maxResidual, cmplx.Abs(PolyEval(norm, r)))
		maxRel = math.Max(maxRel, relResidual(norm, r))
	}

	if maxResidual < 1e-6 || maxRel < 1e-9 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

package iirdes

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/internal/ellipticmath"
)

// Band selects the response shape of a design.
type Band int

const (
	LowPass Band = iota
	HighPass
	BandPass
	BandStop
)

func (b Band) String() string {
	switch b {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case BandStop:
		return "bandstop"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// MaxOrder bounds the order returned by the order estimators.
const MaxOrder = 64

type family int

const (
	familyButter family = iota
	familyCheby
	familyEllip
)

// ClassifyEdges infers the band from passband edges wp and stopband edges
// ws, each holding one edge (low/high-pass) or two (band-pass/band-stop).
func ClassifyEdges(wp, ws []float64) (Band, error) {
	if len(wp) != len(ws) || (len(wp) != 1 && len(wp) != 2) {
		return 0, fmt.Errorf("%w: %d passband and %d stopband edges", ErrInvalidEdges, len(wp), len(ws))
	}

	for _, w := range slices.Concat(wp, ws) {
		if !(w > 0 && w < 1) {
			return 0, fmt.Errorf("%w: %g is outside (0, 1)", ErrInvalidEdges, w)
		}
	}

	if len(wp) == 1 {
		switch {
		case wp[0] < ws[0]:
			return LowPass, nil
		case wp[0] > ws[0]:
			return HighPass, nil
		}
	} else {
		switch {
		case ws[0] < wp[0] && wp[0] < wp[1] && wp[1] < ws[1]:
			return BandPass, nil
		case wp[0] < ws[0] && ws[0] < ws[1] && ws[1] < wp[1]:
			return BandStop, nil
		}
	}

	return 0, fmt.Errorf("%w: passband %v, stopband %v", ErrInvalidEdges, wp, ws)
}

// ButterworthOrder returns the lowest Butterworth order that loses no more
// than gpassDB in the passband and reaches gstopDB in the stopband, along
// with the natural frequencies to pass to the design.
func ButterworthOrder(wp, ws []float64, gpassDB, gstopDB float64) (int, []float64, error) {
	band, passb, stopb, err := prepareOrder(wp, ws, gpassDB, gstopDB)
	if err != nil {
		return 0, nil, err
	}

	nat := selectivity(band, passb, stopb, gpassDB, gstopDB, familyButter)

	ord, err := checkOrder(orderFor(familyButter, nat, gpassDB, gstopDB))
	if err != nil {
		return 0, nil, err
	}

	w0 := math.Pow(dbToMinusOne(gpassDB), -1/(2*float64(ord)))

	var wn []float64

	switch band {
	case LowPass:
		wn = []float64{w0 * passb[0]}
	case HighPass:
		wn = []float64{passb[0] / w0}
	case BandStop:
		d := passb[1] - passb[0]
		discr := math.Sqrt(d*d + 4*w0*w0*passb[0]*passb[1])
		wn = []float64{math.Abs((d + discr) / (2 * w0)), math.Abs((d - discr) / (2 * w0))}
	case BandPass:
		d := passb[1] - passb[0]
		root := math.Sqrt(w0*w0/4*d*d + passb[0]*passb[1])
		wn = []float64{math.Abs(w0*d/2 + root), math.Abs(-w0*d/2 + root)}
	}

	slices.Sort(wn)

	return ord, unwarp(wn), nil
}

// Chebyshev1Order is [ButterworthOrder] for a Chebyshev type I design. The
// natural frequencies are the passband edges.
func Chebyshev1Order(wp, ws []float64, gpassDB, gstopDB float64) (int, []float64, error) {
	band, passb, stopb, err := prepareOrder(wp, ws, gpassDB, gstopDB)
	if err != nil {
		return 0, nil, err
	}

	nat := selectivity(band, passb, stopb, gpassDB, gstopDB, familyCheby)

	ord, err := checkOrder(orderFor(familyCheby, nat, gpassDB, gstopDB))
	if err != nil {
		return 0, nil, err
	}

	return ord, unwarp(passb), nil
}

// Chebyshev2Order is [ButterworthOrder] for a Chebyshev type II design. The
// natural frequencies are where the response first reaches -gstopDB.
func Chebyshev2Order(wp, ws []float64, gpassDB, gstopDB float64) (int, []float64, error) {
	band, passb, stopb, err := prepareOrder(wp, ws, gpassDB, gstopDB)
	if err != nil {
		return 0, nil, err
	}

	nat := selectivity(band, passb, stopb, gpassDB, gstopDB, familyCheby)

	ord, err := checkOrder(orderFor(familyCheby, nat, gpassDB, gstopDB))
	if err != nil {
		return 0, nil, err
	}

	ratio := math.Sqrt(dbToMinusOne(gstopDB) / dbToMinusOne(gpassDB))
	f := 1 / math.Cosh(math.Acosh(ratio)/float64(ord))

	var wn []float64

	switch band {
	case LowPass:
		wn = []float64{passb[0] / f}
	case HighPass:
		wn = []float64{passb[0] * f}
	case BandStop:
		d := passb[1] - passb[0]
		w := -f/2*d + math.Sqrt(f*f*d*d/4+passb[0]*passb[1])
		wn = []float64{w, passb[0] * passb[1] / w}
	case BandPass:
		d := passb[1] - passb[0]
		w := -d/(2*f) + math.Sqrt(d*d/(4*f*f)+passb[0]*passb[1])
		wn = []float64{w, passb[0] * passb[1] / w}
	}

	return ord, unwarp(wn), nil
}

// EllipticOrder is [ButterworthOrder] for an elliptic design. The natural
// frequencies are the passband edges.
func EllipticOrder(wp, ws []float64, gpassDB, gstopDB float64) (int, []float64, error) {
	band, passb, stopb, err := prepareOrder(wp, ws, gpassDB, gstopDB)
	if err != nil {
		return 0, nil, err
	}

	nat := selectivity(band, passb, stopb, gpassDB, gstopDB, familyEllip)

	ord, err := checkOrder(orderFor(familyEllip, nat, gpassDB, gstopDB))
	if err != nil {
		return 0, nil, err
	}

	return ord, unwarp(passb), nil
}

// prepareOrder validates the request and prewarps the edges to the analog
// frequency axis.
func prepareOrder(wp, ws []float64, gpassDB, gstopDB float64) (Band, []float64, []float64, error) {
	band, err := ClassifyEdges(wp, ws)
	if err != nil {
		return 0, nil, nil, err
	}

	if !(gpassDB > 0) || !(gstopDB > gpassDB) {
		return 0, nil, nil, fmt.Errorf("%w: gpass %g dB, gstop %g dB", ErrInvalidGain, gpassDB, gstopDB)
	}

	return band, warp(wp), warp(ws), nil
}

func warp(w []float64) []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = math.Tan(math.Pi * v / 2)
	}

	return out
}

func unwarp(w []float64) []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = 2 / math.Pi * math.Atan(v)
	}

	return out
}

// selectivity returns the stopband-to-passband frequency ratio of the
// equivalent low-pass. For band-stop designs the passband edges are first
// moved to the positions that minimize the order, and passb is updated.
func selectivity(band Band, passb, stopb []float64, gpassDB, gstopDB float64, fam family) float64 {
	switch band {
	case LowPass:
		return stopb[0] / passb[0]
	case HighPass:
		return passb[0] / stopb[0]
	case BandStop:
		passb[0] = minimizeBounded(func(w float64) float64 {
			return orderFor(fam, bandStopRatio([]float64{w, passb[1]}, stopb), gpassDB, gstopDB)
		}, passb[0], stopb[0]-1e-12)
		passb[1] = minimizeBounded(func(w float64) float64 {
			return orderFor(fam, bandStopRatio([]float64{passb[0], w}, stopb), gpassDB, gstopDB)
		}, stopb[1]+1e-12, passb[1])

		return bandStopRatio(passb, stopb)
	default:
		nat := math.Inf(1)
		for _, s := range stopb {
			nat = math.Min(nat, math.Abs((s*s-passb[0]*passb[1])/(s*(passb[0]-passb[1]))))
		}

		return nat
	}
}

func bandStopRatio(passb, stopb []float64) float64 {
	nat := math.Inf(1)
	for _, s := range stopb {
		nat = math.Min(nat, math.Abs(s*(passb[0]-passb[1])/(s*s-passb[0]*passb[1])))
	}

	return nat
}

// orderFor returns the fractional order needed for selectivity nat.
func orderFor(fam family, nat, gpassDB, gstopDB float64) float64 {
	gpass := dbToMinusOne(gpassDB)
	gstop := dbToMinusOne(gstopDB)

	switch fam {
	case familyButter:
		return math.Log10(gstop/gpass) / (2 * math.Log10(nat))
	case familyCheby:
		return math.Acosh(math.Sqrt(gstop/gpass)) / math.Acosh(nat)
	default:
		k0, k0p := ellipticmath.EllipK(1/nat, ellipticmath.Tol)
		k1, k1p := ellipticmath.EllipK(math.Sqrt(gpass/gstop), ellipticmath.Tol)

		return k0 * k1p / (k0p * k1)
	}
}

func checkOrder(n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, fmt.Errorf("%w: estimate %g", ErrOrder, n)
	}

	ord := int(math.Ceil(n))
	if ord > MaxOrder {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrOrder, ord, MaxOrder)
	}

	return ord, nil
}

// minimizeBounded returns the minimizer of f on [a, b] by golden-section
// search.
func minimizeBounded(f func(float64) float64, a, b float64) float64 {
	const tol = 1e-5

	invPhi := (math.Sqrt(5) - 1) / 2

	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)

	for math.Abs(b-a) > tol {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}

	return (a + b) / 2
}

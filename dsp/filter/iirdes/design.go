package iirdes

import (
	"fmt"
	"math"
)

// Prototype selects the analog approximation used by [Design].
type Prototype int

const (
	ProtoElliptic Prototype = iota
	ProtoButterworth
	ProtoChebyshev1
	ProtoChebyshev2
)

func (p Prototype) String() string {
	switch p {
	case ProtoElliptic:
		return "elliptic"
	case ProtoButterworth:
		return "butterworth"
	case ProtoChebyshev1:
		return "chebyshev1"
	case ProtoChebyshev2:
		return "chebyshev2"
	default:
		return fmt.Sprintf("Prototype(%d)", int(p))
	}
}

// Order returns the order estimator for p.
func (p Prototype) Order(wp, ws []float64, gpassDB, gstopDB float64) (int, []float64, error) {
	switch p {
	case ProtoElliptic:
		return EllipticOrder(wp, ws, gpassDB, gstopDB)
	case ProtoButterworth:
		return ButterworthOrder(wp, ws, gpassDB, gstopDB)
	case ProtoChebyshev1:
		return Chebyshev1Order(wp, ws, gpassDB, gstopDB)
	case ProtoChebyshev2:
		return Chebyshev2Order(wp, ws, gpassDB, gstopDB)
	default:
		return 0, nil, fmt.Errorf("iirdes: unknown prototype %d", int(p))
	}
}

func (p Prototype) analog(n int, gpassDB, gstopDB float64) (ZPK, error) {
	switch p {
	case ProtoElliptic:
		return Elliptic(n, gpassDB, gstopDB)
	case ProtoButterworth:
		return Butterworth(n)
	case ProtoChebyshev1:
		return Chebyshev1(n, gpassDB)
	case ProtoChebyshev2:
		return Chebyshev2(n, gstopDB)
	default:
		return ZPK{}, fmt.Errorf("iirdes: unknown prototype %d", int(p))
	}
}

// Design returns the lowest-order digital filter of the given prototype that
// keeps the passband wp within gpassDB and attenuates the stopband ws by at
// least gstopDB. Edges are normalized to 1 = Nyquist; band-pass and
// band-stop designs take two edges each.
func Design(band Band, proto Prototype, wp, ws []float64, gpassDB, gstopDB float64) (TransferFunction, error) {
	f, err := DesignZPK(band, proto, wp, ws, gpassDB, gstopDB)
	if err != nil {
		return TransferFunction{}, err
	}

	tf := f.TransferFunction()
	if !finite(tf.B) || !finite(tf.A) {
		return TransferFunction{}, fmt.Errorf("%w: non-finite coefficients", ErrUnstable)
	}

	return tf, nil
}

// DesignZPK is [Design] returning the digital zeros, poles and gain.
func DesignZPK(band Band, proto Prototype, wp, ws []float64, gpassDB, gstopDB float64) (ZPK, error) {
	got, err := ClassifyEdges(wp, ws)
	if err != nil {
		return ZPK{}, err
	}

	if got != band {
		return ZPK{}, fmt.Errorf("%w: edges describe a %s, want %s", ErrInvalidEdges, got, band)
	}

	n, wn, err := proto.Order(wp, ws, gpassDB, gstopDB)
	if err != nil {
		return ZPK{}, err
	}

	return Filter(band, proto, n, wn, gpassDB, gstopDB)
}

// Filter designs a digital filter of order n with natural frequencies wn
// (1 = Nyquist). gpassDB is used by Chebyshev I and elliptic prototypes,
// gstopDB by Chebyshev II and elliptic prototypes.
func Filter(band Band, proto Prototype, n int, wn []float64, gpassDB, gstopDB float64) (ZPK, error) {
	want := 1
	if band == BandPass || band == BandStop {
		want = 2
	}

	if len(wn) != want {
		return ZPK{}, fmt.Errorf("%w: %s needs %d natural frequencies, got %d", ErrInvalidEdges, band, want, len(wn))
	}

	warped := make([]float64, len(wn))
	for i, w := range wn {
		if !(w > 0 && w < 1) {
			return ZPK{}, fmt.Errorf("%w: natural frequency %g", ErrInvalidEdges, w)
		}

		// Prewarp for the bilinear transform at fs = 2.
		warped[i] = 4 * math.Tan(math.Pi*w/2)
	}

	f, err := proto.analog(n, gpassDB, gstopDB)
	if err != nil {
		return ZPK{}, err
	}

	switch band {
	case LowPass:
		f = LowpassToLowpass(f, warped[0])
	case HighPass:
		f = LowpassToHighpass(f, warped[0])
	case BandPass:
		f = LowpassToBandpass(f, math.Sqrt(warped[0]*warped[1]), warped[1]-warped[0])
	case BandStop:
		f = LowpassToBandstop(f, math.Sqrt(warped[0]*warped[1]), warped[1]-warped[0])
	default:
		return ZPK{}, fmt.Errorf("%w: unknown band %d", ErrInvalidEdges, int(band))
	}

	f = Bilinear(f, 2)
	if !f.stable() || math.IsNaN(f.Gain) || math.IsInf(f.Gain, 0) {
		return ZPK{}, ErrUnstable
	}

	return f, nil
}

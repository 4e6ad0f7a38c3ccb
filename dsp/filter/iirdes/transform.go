package iirdes

import "math/cmplx"

// LowpassToLowpass moves the cutoff of a low-pass prototype from 1 rad/s to wo.
func LowpassToLowpass(f ZPK, wo float64) ZPK {
	w := complex(wo, 0)

	out := ZPK{
		Zeros: make([]complex128, len(f.Zeros)),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain,
	}

	for i, z := range f.Zeros {
		out.Zeros[i] = z * w
	}

	for i, p := range f.Poles {
		out.Poles[i] = p * w
	}

	for range f.degree() {
		out.Gain *= wo
	}

	return out
}

// LowpassToHighpass turns a low-pass prototype into a high-pass with cutoff wo.
func LowpassToHighpass(f ZPK, wo float64) ZPK {
	w := complex(wo, 0)

	out := ZPK{
		Zeros: make([]complex128, 0, len(f.Poles)),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}

	for _, z := range f.Zeros {
		out.Zeros = append(out.Zeros, w/z)
	}

	for i, p := range f.Poles {
		out.Poles[i] = w / p
	}

	for range f.degree() {
		out.Zeros = append(out.Zeros, 0)
	}

	return out
}

// LowpassToBandpass turns a low-pass prototype into a band-pass centred on wo
// (geometric mean of the edges) with bandwidth bw.
func LowpassToBandpass(f ZPK, wo, bw float64) ZPK {
	out := ZPK{
		Zeros: splitRoots(f.Zeros, bw/2, wo, false),
		Poles: splitRoots(f.Poles, bw/2, wo, false),
		Gain:  f.Gain,
	}

	for range f.degree() {
		out.Zeros = append(out.Zeros, 0)
		out.Gain *= bw
	}

	return out
}

// LowpassToBandstop turns a low-pass prototype into a band-stop centred on wo
// with bandwidth bw.
func LowpassToBandstop(f ZPK, wo, bw float64) ZPK {
	out := ZPK{
		Zeros: splitRoots(f.Zeros, bw/2, wo, true),
		Poles: splitRoots(f.Poles, bw/2, wo, true),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}

	for range f.degree() {
		out.Zeros = append(out.Zeros, complex(0, wo))
	}

	for range f.degree() {
		out.Zeros = append(out.Zeros, complex(0, -wo))
	}

	return out
}

// splitRoots maps every root r to the pair x +- sqrt(x^2 - wo^2), where x is
// r*scale, or scale/r when invert is set.
func splitRoots(roots []complex128, scale, wo float64, invert bool) []complex128 {
	s := complex(scale, 0)
	w2 := complex(wo*wo, 0)

	lo := make([]complex128, 0, 2*len(roots))
	hi := make([]complex128, 0, len(roots))

	for _, r := range roots {
		x := r * s
		if invert {
			x = s / r
		}

		d := cmplx.Sqrt(x*x - w2)
		lo = append(lo, x+d)
		hi = append(hi, x-d)
	}

	return append(lo, hi...)
}

// Bilinear discretizes an analog filter with the bilinear transform
// s = 2*fs*(z-1)/(z+1). No frequency prewarping is applied.
func Bilinear(f ZPK, fs float64) ZPK {
	fs2 := complex(2*fs, 0)

	out := ZPK{
		Zeros: make([]complex128, 0, len(f.Poles)),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain * real(prodShift(fs2, f.Zeros)/prodShift(fs2, f.Poles)),
	}

	for _, z := range f.Zeros {
		out.Zeros = append(out.Zeros, (fs2+z)/(fs2-z))
	}

	for i, p := range f.Poles {
		out.Poles[i] = (fs2 + p) / (fs2 - p)
	}

	for range f.degree() {
		out.Zeros = append(out.Zeros, -1)
	}

	return out
}

package design

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/firdes"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/iirdes"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/remez"
)

// Result holds the coefficients of one design: Taps for FIR kinds, B and A
// for IIR kinds.
type Result struct {
	Taps Coefficients
	B, A Coefficients
}

// NumTaps returns the tap count or the numerator length.
func (r Result) NumTaps() int {
	if r.B.Len() > 0 {
		return r.B.Len()
	}

	return r.Taps.Len()
}

// Design validates p and computes its coefficients. It does not modify p.
// Errors wrap [ErrDesign] together with the cause.
func Design(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v: %w", ErrDesign, p.Kind(), err)
	}

	res, err := design(p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v: %w", ErrDesign, p.Kind(), err)
	}

	return res, nil
}

func design(p Params) (Result, error) {
	switch p := p.(type) {
	case *LowPass:
		if p.Window == WindowEquiripple {
			return realTaps(remez.LowPass(p.Gain, p.SampleRate, p.PassbandEnd, p.StopbandStart, p.Ripple, p.Attenuation))
		}

		return realTaps(firdes.LowPass(p.Gain, p.SampleRate, p.PassbandEnd,
			p.StopbandStart-p.PassbandEnd, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *HighPass:
		if p.Window == WindowEquiripple {
			return realTaps(remez.HighPass(p.Gain, p.SampleRate, p.StopbandEnd, p.PassbandStart, p.Ripple, p.Attenuation))
		}

		return realTaps(firdes.HighPass(p.Gain, p.SampleRate, p.PassbandStart,
			p.PassbandStart-p.StopbandEnd, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *BandPass:
		if p.Window == WindowEquiripple {
			return realTaps(remez.BandPass(p.Gain, p.SampleRate,
				p.PassbandStart-p.TransitionWidth, p.PassbandStart, p.PassbandEnd, p.PassbandEnd+p.TransitionWidth,
				p.Ripple, p.Attenuation))
		}

		return realTaps(firdes.BandPass(p.Gain, p.SampleRate, p.PassbandStart, p.PassbandEnd,
			p.TransitionWidth, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *ComplexBandPass:
		if p.Window == WindowEquiripple {
			return complexTaps(remez.ComplexBandPass(p.Gain, p.SampleRate,
				p.PassbandStart-p.TransitionWidth, p.PassbandStart, p.PassbandEnd, p.PassbandEnd+p.TransitionWidth,
				p.Ripple, p.Attenuation))
		}

		return complexTaps(firdes.ComplexBandPass(p.Gain, p.SampleRate, p.PassbandStart, p.PassbandEnd,
			p.TransitionWidth, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *BandNotch:
		if p.Window == WindowEquiripple {
			return realTaps(remez.BandReject(p.Gain, p.SampleRate,
				p.NotchStart-p.TransitionWidth, p.NotchStart, p.NotchEnd, p.NotchEnd+p.TransitionWidth,
				p.Ripple, p.Attenuation))
		}

		return realTaps(firdes.BandReject(p.Gain, p.SampleRate, p.NotchStart, p.NotchEnd,
			p.TransitionWidth, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *RootRaisedCosine:
		return realTaps(firdes.RootRaisedCosine(p.Gain, p.SampleRate, p.SymbolRate, p.Rolloff, p.NumTaps))
	case *Gaussian:
		return realTaps(firdes.Gaussian(p.Gain, p.SampleRate/p.SymbolRate, p.BT, p.NumTaps))
	case *HalfBand:
		return realTaps(firdes.HalfBand(p.Gain, p.SampleRate, p.TransitionWidth, p.Attenuation, windowOf(p.Window, p.Beta)))
	case *IIRLowPass:
		return designIIR(p.Kind(), p.Prototype, []float64{p.PassbandEdge}, []float64{p.StopbandEdge}, p.Ripple, p.Attenuation)
	case *IIRHighPass:
		return designIIR(p.Kind(), p.Prototype, []float64{p.PassbandEdge}, []float64{p.StopbandEdge}, p.Ripple, p.Attenuation)
	case *IIRBandPass:
		return designIIR(p.Kind(), p.Prototype, p.PassbandEdges[:], p.StopbandEdges[:], p.Ripple, p.Attenuation)
	case *IIRBandStop:
		return designIIR(p.Kind(), p.Prototype, p.PassbandEdges[:], p.StopbandEdges[:], p.Ripple, p.Attenuation)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownKind, p)
	}
}

// windowOf is only called for window-method kinds, which Validate has
// already checked.
func windowOf(w Window, beta float64) firdes.Window {
	t, _ := w.Type()
	return firdes.Window{Type: t, Beta: beta}
}

func realTaps(taps []float64, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}

	return Result{Taps: RealCoefficients(taps)}, nil
}

func complexTaps(taps []complex128, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}

	return Result{Taps: ComplexCoefficients(taps)}, nil
}

func designIIR(kind Kind, proto Prototype, wp, ws []float64, ripple, atten float64) (Result, error) {
	ip, ok := proto.designer()
	if !ok {
		return Result{}, fmt.Errorf("%w: prototype %q", ErrUnsupported, string(proto))
	}

	tf, err := iirdes.Design(iirBand(kind), ip, wp, ws, ripple, atten)
	if err != nil {
		return Result{}, err
	}

	return Result{B: RealCoefficients(tf.B), A: RealCoefficients(tf.A)}, nil
}

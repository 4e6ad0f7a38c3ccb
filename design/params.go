package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/iirdes"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// Params are the design inputs of one filter kind. The implementations are
// the pointer types of the structs in this file; the set is closed.
type Params interface {
	Kind() Kind
	Validate() error
	fields() []field
}

// Defaults shared by the FIR kinds.
const (
	DefaultSampleRate  = 32000.0
	DefaultGain        = 1.0
	DefaultAttenuation = 40.0
	DefaultRipple      = 0.1
	DefaultWindow      = WindowHann
)

// LowPass is a low-pass FIR filter. Frequencies are in Hz.
type LowPass struct {
	SampleRate    float64
	Gain          float64
	PassbandEnd   float64
	StopbandStart float64
	Attenuation   float64
	Window        Window
	Beta          float64
	// Ripple is the passband ripple in dB, used by WindowEquiripple only.
	Ripple float64
	// NumTaps is set by the design.
	NumTaps int
}

// HighPass is a high-pass FIR filter.
type HighPass struct {
	SampleRate    float64
	Gain          float64
	StopbandEnd   float64
	PassbandStart float64
	Attenuation   float64
	Window        Window
	Beta          float64
	Ripple        float64
	NumTaps       int
}

// BandPass is a real band-pass FIR filter. TransitionWidth applies on both
// sides of the passband.
type BandPass struct {
	SampleRate      float64
	Gain            float64
	PassbandStart   float64
	PassbandEnd     float64
	TransitionWidth float64
	Attenuation     float64
	Window          Window
	Beta            float64
	Ripple          float64
	NumTaps         int
}

// ComplexBandPass is a band-pass filter with complex taps. Its passband may
// lie at negative frequencies.
type ComplexBandPass BandPass

// BandNotch is a band-reject FIR filter rejecting NotchStart..NotchEnd.
type BandNotch struct {
	SampleRate      float64
	Gain            float64
	NotchStart      float64
	NotchEnd        float64
	TransitionWidth float64
	Attenuation     float64
	Window          Window
	Beta            float64
	Ripple          float64
	NumTaps         int
}

// RootRaisedCosine is a root raised cosine pulse shaping filter.
type RootRaisedCosine struct {
	SampleRate float64
	Gain       float64
	SymbolRate float64
	Rolloff    float64
	NumTaps    int
}

// Gaussian is a Gaussian pulse shaping filter with samples per symbol
// SampleRate/SymbolRate.
type Gaussian struct {
	SampleRate float64
	Gain       float64
	SymbolRate float64
	BT         float64
	NumTaps    int
}

// HalfBand is a half-band low-pass filter with cutoff SampleRate/4.
type HalfBand struct {
	SampleRate      float64
	Gain            float64
	TransitionWidth float64
	Attenuation     float64
	Window          Window
	Beta            float64
	NumTaps         int
}

// IIRLowPass is a digital IIR low-pass filter. Edges are normalized to
// 1 = Nyquist; Ripple is the maximum passband loss and Attenuation the
// minimum stopband attenuation, both in dB.
type IIRLowPass struct {
	Prototype    Prototype
	PassbandEdge float64
	StopbandEdge float64
	Ripple       float64
	Attenuation  float64
	// NumTaps is set by the design to the numerator length.
	NumTaps int
}

// IIRHighPass is a digital IIR high-pass filter.
type IIRHighPass IIRLowPass

// IIRBandPass is a digital IIR band-pass filter.
type IIRBandPass struct {
	Prototype     Prototype
	PassbandEdges [2]float64
	StopbandEdges [2]float64
	Ripple        float64
	Attenuation   float64
	NumTaps       int
}

// IIRBandStop is a digital IIR band-stop filter.
type IIRBandStop IIRBandPass

// DefaultParams returns the default parameters of kind.
func DefaultParams(kind Kind) (Params, error) {
	switch kind {
	case KindLowPass:
		return &LowPass{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			PassbandEnd: 8000, StopbandStart: 10000,
			Attenuation: DefaultAttenuation, Window: DefaultWindow,
			Beta: window.DefaultBeta, Ripple: DefaultRipple,
		}, nil
	case KindHighPass:
		return &HighPass{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			StopbandEnd: 8000, PassbandStart: 10000,
			Attenuation: DefaultAttenuation, Window: DefaultWindow,
			Beta: window.DefaultBeta, Ripple: DefaultRipple,
		}, nil
	case KindBandPass:
		p := defaultBandPass()
		return &p, nil
	case KindComplexBandPass:
		p := ComplexBandPass(defaultBandPass())
		return &p, nil
	case KindBandNotch:
		return &BandNotch{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			NotchStart: 8000, NotchEnd: 10000, TransitionWidth: 1000,
			Attenuation: DefaultAttenuation, Window: DefaultWindow,
			Beta: window.DefaultBeta, Ripple: DefaultRipple,
		}, nil
	case KindRootRaisedCosine:
		return &RootRaisedCosine{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			SymbolRate: 8000, Rolloff: 0.35, NumTaps: 11,
		}, nil
	case KindGaussian:
		return &Gaussian{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			SymbolRate: 2000, BT: 0.5, NumTaps: 11,
		}, nil
	case KindHalfBand:
		return &HalfBand{
			SampleRate: DefaultSampleRate, Gain: DefaultGain,
			TransitionWidth: 2000, Attenuation: DefaultAttenuation,
			Window: DefaultWindow, Beta: window.DefaultBeta,
		}, nil
	case KindIIRLowPass:
		return &IIRLowPass{
			Prototype: PrototypeElliptic, PassbandEdge: 0.2, StopbandEdge: 0.3,
			Ripple: DefaultRipple, Attenuation: DefaultAttenuation,
		}, nil
	case KindIIRHighPass:
		return &IIRHighPass{
			Prototype: PrototypeElliptic, PassbandEdge: 0.35, StopbandEdge: 0.3,
			Ripple: DefaultRipple, Attenuation: DefaultAttenuation,
		}, nil
	case KindIIRBandPass:
		return &IIRBandPass{
			Prototype:     PrototypeElliptic,
			PassbandEdges: [2]float64{0.25, 0.3}, StopbandEdges: [2]float64{0.2, 0.35},
			Ripple: DefaultRipple, Attenuation: DefaultAttenuation,
		}, nil
	case KindIIRBandStop:
		return &IIRBandStop{
			Prototype:     PrototypeElliptic,
			PassbandEdges: [2]float64{0.2, 0.35}, StopbandEdges: [2]float64{0.25, 0.3},
			Ripple: DefaultRipple, Attenuation: DefaultAttenuation,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

func defaultBandPass() BandPass {
	return BandPass{
		SampleRate: DefaultSampleRate, Gain: DefaultGain,
		PassbandStart: 8000, PassbandEnd: 10000, TransitionWidth: 1000,
		Attenuation: DefaultAttenuation, Window: DefaultWindow,
		Beta: window.DefaultBeta, Ripple: DefaultRipple,
	}
}

func (*LowPass) Kind() Kind          { return KindLowPass }
func (*HighPass) Kind() Kind         { return KindHighPass }
func (*BandPass) Kind() Kind         { return KindBandPass }
func (*ComplexBandPass) Kind() Kind  { return KindComplexBandPass }
func (*BandNotch) Kind() Kind        { return KindBandNotch }
func (*RootRaisedCosine) Kind() Kind { return KindRootRaisedCosine }
func (*Gaussian) Kind() Kind         { return KindGaussian }
func (*HalfBand) Kind() Kind         { return KindHalfBand }
func (*IIRLowPass) Kind() Kind       { return KindIIRLowPass }
func (*IIRHighPass) Kind() Kind      { return KindIIRHighPass }
func (*IIRBandPass) Kind() Kind      { return KindIIRBandPass }
func (*IIRBandStop) Kind() Kind      { return KindIIRBandStop }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...)
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalid("%s must be > 0, got %g", name, v)
	}
	return nil
}

func validateFIR(fs, gain, atten float64, w Window, beta, ripple float64) error {
	if err := positive("sample rate", fs); err != nil {
		return err
	}
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return invalid("gain must be finite, got %g", gain)
	}
	if err := positive("attenuation", atten); err != nil {
		return err
	}
	if !w.Valid() {
		return invalid("unknown window code %d", int(w))
	}
	if w == WindowKaiser && !(beta >= 0) {
		return invalid("kaiser beta must be >= 0, got %g", beta)
	}
	if w == WindowEquiripple {
		return positive("ripple", ripple)
	}
	return nil
}

func validateEdges(fs float64, edges ...float64) error {
	lo := 0.0
	for i, e := range edges {
		if !(e > lo) || e > fs/2 {
			return invalid("band edges %v must increase within (0, %g]", edges[:i+1], fs/2)
		}
		lo = e
	}
	return nil
}

func (p *LowPass) Validate() error {
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, p.Ripple); err != nil {
		return err
	}
	return validateEdges(p.SampleRate, p.PassbandEnd, p.StopbandStart)
}

func (p *HighPass) Validate() error {
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, p.Ripple); err != nil {
		return err
	}
	return validateEdges(p.SampleRate, p.StopbandEnd, p.PassbandStart)
}

func (p *BandPass) Validate() error {
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, p.Ripple); err != nil {
		return err
	}
	if err := positive("transition width", p.TransitionWidth); err != nil {
		return err
	}
	return validateEdges(p.SampleRate, p.PassbandStart, p.PassbandEnd)
}

func (p *ComplexBandPass) Validate() error {
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, p.Ripple); err != nil {
		return err
	}
	if err := positive("transition width", p.TransitionWidth); err != nil {
		return err
	}
	if !(p.PassbandStart >= -p.SampleRate/2) || !(p.PassbandEnd > p.PassbandStart) || p.PassbandEnd > p.SampleRate/2 {
		return invalid("passband %g..%g must increase within [%g, %g]",
			p.PassbandStart, p.PassbandEnd, -p.SampleRate/2, p.SampleRate/2)
	}
	return nil
}

func (p *BandNotch) Validate() error {
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, p.Ripple); err != nil {
		return err
	}
	if err := positive("transition width", p.TransitionWidth); err != nil {
		return err
	}
	return validateEdges(p.SampleRate, p.NotchStart, p.NotchEnd)
}

func (p *RootRaisedCosine) Validate() error {
	if err := positive("sample rate", p.SampleRate); err != nil {
		return err
	}
	if err := positive("symbol rate", p.SymbolRate); err != nil {
		return err
	}
	if !(p.Rolloff > 0) || p.Rolloff > 1 {
		return invalid("rolloff must be in (0, 1], got %g", p.Rolloff)
	}
	if p.NumTaps <= 0 {
		return invalid("number of taps must be > 0, got %d", p.NumTaps)
	}
	return nil
}

func (p *Gaussian) Validate() error {
	if err := positive("sample rate", p.SampleRate); err != nil {
		return err
	}
	if err := positive("symbol rate", p.SymbolRate); err != nil {
		return err
	}
	if err := positive("BT", p.BT); err != nil {
		return err
	}
	if p.NumTaps <= 0 {
		return invalid("number of taps must be > 0, got %d", p.NumTaps)
	}
	return nil
}

func (p *HalfBand) Validate() error {
	if p.Window == WindowEquiripple {
		return fmt.Errorf("%w: %w: equiripple half-band filter", ErrInvalidParams, ErrUnsupported)
	}
	if err := validateFIR(p.SampleRate, p.Gain, p.Attenuation, p.Window, p.Beta, 0); err != nil {
		return err
	}
	return positive("transition width", p.TransitionWidth)
}

func validateIIR(kind Kind, proto Prototype, ripple, atten float64, wp, ws []float64) error {
	if !proto.Valid() {
		return invalid("unknown IIR prototype %q", string(proto))
	}
	if err := positive("ripple", ripple); err != nil {
		return err
	}
	if !(atten > ripple) {
		return invalid("attenuation %g must exceed ripple %g", atten, ripple)
	}

	band, err := iirdes.ClassifyEdges(wp, ws)
	if err != nil {
		return invalid("%v", err)
	}
	if want := iirBand(kind); band != want {
		return invalid("edges pb=%v sb=%v describe a %v filter, not %v", wp, ws, band, want)
	}
	return nil
}

func iirBand(kind Kind) iirdes.Band {
	switch kind {
	case KindIIRHighPass:
		return iirdes.HighPass
	case KindIIRBandPass:
		return iirdes.BandPass
	case KindIIRBandStop:
		return iirdes.BandStop
	default:
		return iirdes.LowPass
	}
}

func (p *IIRLowPass) Validate() error {
	return validateIIR(p.Kind(), p.Prototype, p.Ripple, p.Attenuation,
		[]float64{p.PassbandEdge}, []float64{p.StopbandEdge})
}

func (p *IIRHighPass) Validate() error {
	return validateIIR(p.Kind(), p.Prototype, p.Ripple, p.Attenuation,
		[]float64{p.PassbandEdge}, []float64{p.StopbandEdge})
}

func (p *IIRBandPass) Validate() error {
	return validateIIR(p.Kind(), p.Prototype, p.Ripple, p.Attenuation,
		p.PassbandEdges[:], p.StopbandEdges[:])
}

func (p *IIRBandStop) Validate() error {
	return validateIIR(p.Kind(), p.Prototype, p.Ripple, p.Attenuation,
		p.PassbandEdges[:], p.StopbandEdges[:])
}

package design

import (
	"fmt"
	"math"
)

// field binds one design-file key to a Params struct field.
type field struct {
	key string
	get func() Value
	// set stores v and reports whether it was usable.
	set func(v Value) bool
	// omit hides the field when writing.
	omit func() bool
	// unless names a key that takes precedence over this one when reading.
	unless string
}

func numberField(key string, p *float64) field {
	return field{
		key: key,
		get: func() Value { return Number(*p) },
		set: func(v Value) bool {
			f, ok := v.Float()
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
			*p = f
			return true
		},
	}
}

func intField(key string, p *int) field {
	return field{
		key: key,
		get: func() Value { return Number(float64(*p)) },
		set: func(v Value) bool {
			f, ok := v.Float()
			if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
				return false
			}
			*p = int(f)
			return true
		},
	}
}

func windowField(key string, p *Window) field {
	return field{
		key: key,
		get: func() Value { return Number(float64(*p)) },
		set: func(v Value) bool {
			f, ok := v.Float()
			if !ok || f != math.Trunc(f) {
				return false
			}
			w, ok := WindowByCode(int(f))
			if ok {
				*p = w
			}
			return ok
		},
	}
}

func prototypeField(key string, p *Prototype) field {
	return field{
		key: key,
		get: func() Value { return Text(p.Code()) },
		set: func(v Value) bool {
			proto, ok := PrototypeByCode(v.String())
			if ok {
				*p = proto
			}
			return ok
		},
	}
}

// pairField stores a band edge pair as one "[lo, hi]" value.
func pairField(key string, p *[2]float64) field {
	return field{
		key: key,
		get: func() Value { return Text(formatPair(*p)) },
		set: func(v Value) bool {
			pair, err := parsePair(v.String())
			if err == nil {
				*p = pair
			}
			return err == nil
		},
	}
}

// constField is written as v and consumed silently when read.
func constField(key string, v Value) field {
	return field{
		key: key,
		get: func() Value { return v },
		set: func(Value) bool { return true },
	}
}

func onlyEquiripple(f field, w *Window) field {
	f.omit = func() bool { return *w != WindowEquiripple }
	return f
}

func firFields(kind Kind, fs, gain *float64, w *Window, beta *float64, specific ...field) []field {
	out := []field{
		constField("filttype", Text(kind.Code())),
		numberField("fs", fs),
		numberField("gain", gain),
	}
	out = append(out, specific...)

	return append(out, windowField("wintype", w), numberField("winbeta", beta))
}

func (p *LowPass) fields() []field {
	return append(firFields(p.Kind(), &p.SampleRate, &p.Gain, &p.Window, &p.Beta,
		numberField("pbend", &p.PassbandEnd),
		numberField("sbstart", &p.StopbandStart),
		numberField("atten", &p.Attenuation),
	),
		intField("ntaps", &p.NumTaps),
		onlyEquiripple(numberField("ripple", &p.Ripple), &p.Window),
	)
}

func (p *HighPass) fields() []field {
	return append(firFields(p.Kind(), &p.SampleRate, &p.Gain, &p.Window, &p.Beta,
		numberField("sbend", &p.StopbandEnd),
		numberField("pbstart", &p.PassbandStart),
		numberField("atten", &p.Attenuation),
	),
		intField("ntaps", &p.NumTaps),
		onlyEquiripple(numberField("ripple", &p.Ripple), &p.Window),
	)
}

func bandFields(kind Kind, p *BandPass) []field {
	return append(firFields(kind, &p.SampleRate, &p.Gain, &p.Window, &p.Beta,
		numberField("pbend", &p.PassbandEnd),
		numberField("pbstart", &p.PassbandStart),
		numberField("tb", &p.TransitionWidth),
		numberField("atten", &p.Attenuation),
	),
		intField("ntaps", &p.NumTaps),
		onlyEquiripple(numberField("ripple", &p.Ripple), &p.Window),
	)
}

func (p *BandPass) fields() []field { return bandFields(p.Kind(), p) }

func (p *ComplexBandPass) fields() []field { return bandFields(p.Kind(), (*BandPass)(p)) }

// The notch edges keep the keys the designer has always written for them:
// the notch starts where the lower passband ends.
func (p *BandNotch) fields() []field {
	return append(firFields(p.Kind(), &p.SampleRate, &p.Gain, &p.Window, &p.Beta,
		numberField("pbend", &p.NotchStart),
		numberField("pbstart", &p.NotchEnd),
		numberField("tb", &p.TransitionWidth),
		numberField("atten", &p.Attenuation),
	),
		intField("ntaps", &p.NumTaps),
		onlyEquiripple(numberField("ripple", &p.Ripple), &p.Window),
	)
}

func (p *RootRaisedCosine) fields() []field {
	return []field{
		constField("filttype", Text(p.Kind().Code())),
		numberField("fs", &p.SampleRate),
		numberField("gain", &p.Gain),
		numberField("srate", &p.SymbolRate),
		numberField("rolloff", &p.Rolloff),
		intField("ntaps", &p.NumTaps),
	}
}

func (p *Gaussian) fields() []field {
	return []field{
		constField("filttype", Text(p.Kind().Code())),
		numberField("fs", &p.SampleRate),
		numberField("gain", &p.Gain),
		numberField("srate", &p.SymbolRate),
		numberField("rolloff", &p.BT),
		intField("ntaps", &p.NumTaps),
	}
}

func (p *HalfBand) fields() []field {
	return append(firFields(p.Kind(), &p.SampleRate, &p.Gain, &p.Window, &p.Beta,
		numberField("tb", &p.TransitionWidth),
		numberField("atten", &p.Attenuation),
	),
		intField("ntaps", &p.NumTaps),
	)
}

// iirFields lays out an IIR record. gpass is written with the ripple value
// and only read when ripple is absent.
func iirFields(kind Kind, proto *Prototype, ripple, atten *float64, ntaps *int, pb, sb field) []field {
	gpass := numberField("gpass", ripple)
	gpass.unless = "ripple"

	return []field{
		constField("bandtype", Text(kind.Code())),
		constField("paramtype", Text("digital")),
		prototypeField("filttype", proto),
		numberField("gstop", atten),
		pb,
		sb,
		gpass,
		numberField("ripple", ripple),
		constField("fs", Number(1)),
		intField("ntaps", ntaps),
	}
}

func (p *IIRLowPass) fields() []field {
	return iirFields(p.Kind(), &p.Prototype, &p.Ripple, &p.Attenuation, &p.NumTaps,
		numberField("pbedge", &p.PassbandEdge), numberField("sbedge", &p.StopbandEdge))
}

func (p *IIRHighPass) fields() []field {
	return iirFields(p.Kind(), &p.Prototype, &p.Ripple, &p.Attenuation, &p.NumTaps,
		numberField("pbedge", &p.PassbandEdge), numberField("sbedge", &p.StopbandEdge))
}

func (p *IIRBandPass) fields() []field {
	return iirFields(p.Kind(), &p.Prototype, &p.Ripple, &p.Attenuation, &p.NumTaps,
		pairField("pbedge", &p.PassbandEdges), pairField("sbedge", &p.StopbandEdges))
}

func (p *IIRBandStop) fields() []field {
	return iirFields(p.Kind(), &p.Prototype, &p.Ripple, &p.Attenuation, &p.NumTaps,
		pairField("pbedge", &p.PassbandEdges), pairField("sbedge", &p.StopbandEdges))
}

// Values returns the design-file parameters of p in file order.
func Values(p Params) []Param {
	var out []Param

	for _, f := range p.fields() {
		if f.omit != nil && f.omit() {
			continue
		}

		out = append(out, Param{Key: f.key, Value: f.get()})
	}

	return out
}

// Set stores one design-file parameter in p. It reports false when key is
// not a parameter of p or v cannot be stored in it.
func Set(p Params, key string, v Value) bool {
	for _, f := range p.fields() {
		if f.key == key {
			return f.set(v)
		}
	}

	return false
}

// ParamsFromValues rebuilds typed params from design-file parameters. The
// kind is named by filttype (FIR) or bandtype (IIR) and defaults to the
// low-pass kind of restype. Keys missing from
// values keep the kind defaults. Keys that are not parameters of the kind
// are returned as extra, in input order. A known key whose value cannot be
// stored, such as text in a numeric field, keeps the default.
func ParamsFromValues(restype Restype, values []Param) (Params, []Param, error) {
	kindKey := "filttype"
	if restype == RestypeIIR {
		kindKey = "bandtype"
	} else if restype != RestypeFIR {
		return nil, nil, fmt.Errorf("%w: restype %q", ErrUnknownKind, string(restype))
	}

	// A file that names no kind holds bare coefficients; it is read as the
	// first kind of its restype.
	kind := Kinds(restype)[0]

	if code, ok := lookup(values, kindKey); ok {
		kind, ok = KindByCode(restype, code.String())
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s %s=%q", ErrUnknownKind, restype, kindKey, code.String())
		}
	}

	p, err := DefaultParams(kind)
	if err != nil {
		return nil, nil, err
	}

	fields := p.fields()
	present := make(map[string]bool, len(values))
	for _, v := range values {
		present[v.Key] = true
	}

	var extra []Param

	for _, v := range values {
		f, ok := findField(fields, v.Key)
		if !ok {
			extra = append(extra, v)
			continue
		}

		if f.unless != "" && present[f.unless] {
			continue
		}

		f.set(v.Value)
	}

	return p, extra, nil
}

func findField(fields []field, key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}

	return field{}, false
}

func lookup(values []Param, key string) (Value, bool) {
	for _, v := range values {
		if v.Key == key {
			return v.Value, true
		}
	}

	return Value{}, false
}

package design

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/iirdes"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
)

// Restype is the response type of a record: finite or infinite impulse
// response. Its value is the text stored in the first CSV row.
type Restype string

const (
	RestypeFIR Restype = "fir"
	RestypeIIR Restype = "iir"
)

// Valid reports whether r is a known restype.
func (r Restype) Valid() bool {
	return r == RestypeFIR || r == RestypeIIR
}

// Kind identifies a filter kind. FIR and IIR kinds are distinct values even
// where they share a label and code.
type Kind int

const (
	KindLowPass Kind = iota
	KindHighPass
	KindBandPass
	KindComplexBandPass
	KindBandNotch
	KindRootRaisedCosine
	KindGaussian
	KindHalfBand
	KindIIRLowPass
	KindIIRHighPass
	KindIIRBandPass
	KindIIRBandStop
)

type kindInfo struct {
	restype Restype
	label   string
	code    string
}

var kindTable = map[Kind]kindInfo{
	KindLowPass:          {RestypeFIR, "Low Pass", "lpf"},
	KindHighPass:         {RestypeFIR, "High Pass", "hpf"},
	KindBandPass:         {RestypeFIR, "Band Pass", "bpf"},
	KindComplexBandPass:  {RestypeFIR, "Complex Band Pass", "cbpf"},
	KindBandNotch:        {RestypeFIR, "Band Notch", "bnf"},
	KindRootRaisedCosine: {RestypeFIR, "Root Raised Cosine", "rrc"},
	KindGaussian:         {RestypeFIR, "Gaussian", "gaus"},
	KindHalfBand:         {RestypeFIR, "Half Band", "hb"},
	KindIIRLowPass:       {RestypeIIR, "Low Pass", "lpf"},
	KindIIRHighPass:      {RestypeIIR, "High Pass", "hpf"},
	KindIIRBandPass:      {RestypeIIR, "Band Pass", "bpf"},
	KindIIRBandStop:      {RestypeIIR, "Band Stop", "bnf"},
}

// Display order of the type selector.
var (
	firKinds = []Kind{
		KindLowPass, KindBandPass, KindComplexBandPass, KindBandNotch,
		KindHighPass, KindRootRaisedCosine, KindGaussian, KindHalfBand,
	}
	iirKinds = []Kind{KindIIRLowPass, KindIIRHighPass, KindIIRBandPass, KindIIRBandStop}
)

// Kinds returns the kinds of restype in display order, or nil for an
// unknown restype.
func Kinds(restype Restype) []Kind {
	switch restype {
	case RestypeFIR:
		return append([]Kind(nil), firKinds...)
	case RestypeIIR:
		return append([]Kind(nil), iirKinds...)
	default:
		return nil
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Restype returns the response type of k, or "" for an unknown kind.
func (k Kind) Restype() Restype { return kindTable[k].restype }

// Label returns the display label of k.
func (k Kind) Label() string { return kindTable[k].label }

// Code returns the CSV code of k.
func (k Kind) Code() string { return kindTable[k].code }

func (k Kind) String() string {
	info, ok := kindTable[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return string(info.restype) + " " + info.label
}

// KindByLabel looks up a kind by restype and display label.
func KindByLabel(restype Restype, label string) (Kind, bool) {
	for _, k := range Kinds(restype) {
		if kindTable[k].label == label {
			return k, true
		}
	}

	return 0, false
}

// KindByCode looks up a kind by restype and CSV code.
func KindByCode(restype Restype, code string) (Kind, bool) {
	for _, k := range Kinds(restype) {
		if kindTable[k].code == code {
			return k, true
		}
	}

	return 0, false
}

// Window selects the FIR design method. Values are the GNU Radio firdes
// window codes; WindowEquiripple selects the Parks-McClellan designer.
type Window int

const (
	WindowHamming        = Window(window.TypeHamming)
	WindowHann           = Window(window.TypeHann)
	WindowBlackman       = Window(window.TypeBlackman)
	WindowRectangular    = Window(window.TypeRectangular)
	WindowKaiser         = Window(window.TypeKaiser)
	WindowBlackmanHarris = Window(window.TypeBlackmanHarris)
	WindowBartlett       = Window(window.TypeBartlett)
	WindowEquiripple     = Window(1000)
)

var windowLabels = map[Window]string{
	WindowHann:           "Hann",
	WindowHamming:        "Hamming",
	WindowBlackman:       "Blackman",
	WindowBlackmanHarris: "Blackman-harris",
	WindowKaiser:         "Kaiser",
	WindowRectangular:    "Rectangular",
	WindowBartlett:       "Bartlett",
	WindowEquiripple:     "Equiripple",
}

var windowOrder = []Window{
	WindowHann, WindowHamming, WindowBlackman, WindowBlackmanHarris,
	WindowKaiser, WindowRectangular, WindowBartlett, WindowEquiripple,
}

// Windows returns all windows in display order.
func Windows() []Window {
	return append([]Window(nil), windowOrder...)
}

// Valid reports whether w is a known window code.
func (w Window) Valid() bool {
	_, ok := windowLabels[w]
	return ok
}

// Label returns the display label of w.
func (w Window) Label() string { return windowLabels[w] }

// Code returns the numeric firdes code of w.
func (w Window) Code() int { return int(w) }

func (w Window) String() string {
	if l, ok := windowLabels[w]; ok {
		return l
	}

	return fmt.Sprintf("Window(%d)", int(w))
}

// Type returns the window function for the window method. ok is false for
// WindowEquiripple and unknown codes.
func (w Window) Type() (window.Type, bool) {
	if w == WindowEquiripple || !w.Valid() {
		return 0, false
	}

	return window.Type(w), true
}

// WindowByLabel looks up a window by display label.
func WindowByLabel(label string) (Window, bool) {
	for w, l := range windowLabels {
		if l == label {
			return w, true
		}
	}

	return 0, false
}

// WindowByCode looks up a window by numeric code.
func WindowByCode(code int) (Window, bool) {
	w := Window(code)
	return w, w.Valid()
}

// Prototype selects the analog approximation of an IIR design. Its value is
// the CSV code.
type Prototype string

const (
	PrototypeElliptic    Prototype = "ellip"
	PrototypeButterworth Prototype = "butter"
	PrototypeChebyshev1  Prototype = "cheby1"
	PrototypeChebyshev2  Prototype = "cheby2"
)

var prototypeTable = []struct {
	proto Prototype
	label string
	iir   iirdes.Prototype
}{
	{PrototypeElliptic, "Elliptic", iirdes.ProtoElliptic},
	{PrototypeButterworth, "Butterworth", iirdes.ProtoButterworth},
	{PrototypeChebyshev1, "Chebyshev-1", iirdes.ProtoChebyshev1},
	{PrototypeChebyshev2, "Chebyshev-2", iirdes.ProtoChebyshev2},
}

// Prototypes returns all prototypes in display order.
func Prototypes() []Prototype {
	out := make([]Prototype, len(prototypeTable))
	for i, e := range prototypeTable {
		out[i] = e.proto
	}

	return out
}

// Valid reports whether p is a known prototype.
func (p Prototype) Valid() bool {
	_, ok := PrototypeByCode(string(p))
	return ok
}

// Label returns the display label of p.
func (p Prototype) Label() string {
	for _, e := range prototypeTable {
		if e.proto == p {
			return e.label
		}
	}

	return ""
}

// Code returns the CSV code of p.
func (p Prototype) Code() string { return string(p) }

func (p Prototype) designer() (iirdes.Prototype, bool) {
	for _, e := range prototypeTable {
		if e.proto == p {
			return e.iir, true
		}
	}

	return 0, false
}

// PrototypeByLabel looks up a prototype by display label.
func PrototypeByLabel(label string) (Prototype, bool) {
	for _, e := range prototypeTable {
		if e.label == label {
			return e.proto, true
		}
	}

	return "", false
}

// PrototypeByCode looks up a prototype by CSV code.
func PrototypeByCode(code string) (Prototype, bool) {
	for _, e := range prototypeTable {
		if string(e.proto) == code {
			return e.proto, true
		}
	}

	return "", false
}

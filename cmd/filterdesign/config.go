package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"hz.tools/rf"

	"github.com/cwbudde/algo-filterdesign/design"
	"github.com/cwbudde/algo-filterdesign/internal/engnotation"
)

// Freq is a frequency given in YAML or on the command line as a number, with
// a unit ("8kHz", "1.2MHz") or with an SI suffix ("8k").
type Freq rf.Hz

// unitForm is the single number and unit form rf.ParseHz reads correctly.
var unitForm = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+[A-Za-z]+$`)

// ParseFreq parses s with rf.ParseHz and falls back to a plain number with
// an optional SI suffix. rf.ParseHz truncates to whole Hz.
func ParseFreq(s string) (Freq, error) {
	s = strings.TrimSpace(s)

	if unitForm.MatchString(s) {
		if hz, err := rf.ParseHz(s); err == nil {
			return Freq(hz), nil
		}
	}

	v, err := engnotation.Parse(s)
	if err != nil {
		return 0, err
	}

	return Freq(v), nil
}

func (f Freq) String() string { return rf.Hz(f).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Freq) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: frequency must be a scalar", node.Line)
	}

	v, err := ParseFreq(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*f = v

	return nil
}

// Config is a filter description as read from a YAML design file. Unset
// fields keep the defaults of the filter kind.
type Config struct {
	Restype   string `yaml:"restype"`
	Type      string `yaml:"type"`
	Window    string `yaml:"window"`
	Prototype string `yaml:"prototype"`

	SampleRate    *Freq    `yaml:"fs"`
	Gain          *float64 `yaml:"gain"`
	PassbandStart *Freq    `yaml:"pbstart"`
	PassbandEnd   *Freq    `yaml:"pbend"`
	StopbandStart *Freq    `yaml:"sbstart"`
	StopbandEnd   *Freq    `yaml:"sbend"`
	Transition    *Freq    `yaml:"tb"`
	Attenuation   *float64 `yaml:"atten"`
	Ripple        *float64 `yaml:"ripple"`
	Beta          *float64 `yaml:"beta"`
	SymbolRate    *Freq    `yaml:"srate"`
	Rolloff       *float64 `yaml:"rolloff"`
	NumTaps       *int     `yaml:"ntaps"`

	// IIR edges, normalized to 1 = Nyquist: one value for low/high-pass,
	// two for band-pass/band-stop.
	PassbandEdge []float64 `yaml:"pbedge"`
	StopbandEdge []float64 `yaml:"sbedge"`

	Output string `yaml:"output"`
}

// LoadConfig reads a YAML design file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", errConfig, filename)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

var errConfig = errors.New("invalid design config")

func (c *Config) restype() (design.Restype, error) {
	if c.Restype == "" {
		return design.RestypeFIR, nil
	}

	rt := design.Restype(strings.ToLower(c.Restype))
	if !rt.Valid() {
		return "", fmt.Errorf("%w: restype %q (want fir or iir)", errConfig, c.Restype)
	}

	return rt, nil
}

// kind resolves the type by label or code.
func (c *Config) kind() (design.Kind, error) {
	rt, err := c.restype()
	if err != nil {
		return 0, err
	}

	if c.Type == "" {
		return design.Kinds(rt)[0], nil
	}

	if k, ok := design.KindByLabel(rt, c.Type); ok {
		return k, nil
	}

	if k, ok := design.KindByCode(rt, c.Type); ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %s type %q", errConfig, rt, c.Type)
}

func parseWindow(s string) (design.Window, error) {
	if w, ok := design.WindowByLabel(s); ok {
		return w, nil
	}

	for _, w := range design.Windows() {
		if strings.EqualFold(w.Label(), s) {
			return w, nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		if w, ok := design.WindowByCode(n); ok {
			return w, nil
		}
	}

	return 0, fmt.Errorf("%w: window %q", errConfig, s)
}

func parsePrototype(s string) (design.Prototype, error) {
	if p, ok := design.PrototypeByLabel(s); ok {
		return p, nil
	}

	if p, ok := design.PrototypeByCode(strings.ToLower(s)); ok {
		return p, nil
	}

	return "", fmt.Errorf("%w: prototype %q", errConfig, s)
}

// Record builds an undesigned record from c.
func (c *Config) Record() (*design.Record, error) {
	kind, err := c.kind()
	if err != nil {
		return nil, err
	}

	rec, err := design.NewRecord(kind)
	if err != nil {
		return nil, err
	}

	values, err := c.values(kind)
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		if !design.Set(rec.Params, v.Key, v.Value) {
			return nil, fmt.Errorf("%w: cannot set %s=%v on %s", errConfig, v.Key, v.Value, kind)
		}
	}

	return rec, nil
}

// values lists the set fields of c under their design-file keys.
func (c *Config) values(kind design.Kind) ([]design.Param, error) {
	var out []design.Param

	add := func(key string, v design.Value) {
		out = append(out, design.Param{Key: key, Value: v})
	}
	freq := func(key string, f *Freq) {
		if f != nil {
			add(key, design.Number(float64(*f)))
		}
	}
	num := func(key string, f *float64) {
		if f != nil {
			add(key, design.Number(*f))
		}
	}

	if c.Window != "" {
		w, err := parseWindow(c.Window)
		if err != nil {
			return nil, err
		}

		add("wintype", design.Number(float64(w.Code())))
	}

	iir := kind.Restype() == design.RestypeIIR

	if c.Prototype != "" {
		if !iir {
			return nil, fmt.Errorf("%w: prototype applies to iir filters only", errConfig)
		}

		p, err := parsePrototype(c.Prototype)
		if err != nil {
			return nil, err
		}

		add("filttype", design.Text(p.Code()))
	}

	if !iir {
		freq("fs", c.SampleRate)
	}
	num("gain", c.Gain)
	freq("pbstart", c.PassbandStart)
	freq("pbend", c.PassbandEnd)
	freq("sbstart", c.StopbandStart)
	freq("sbend", c.StopbandEnd)
	freq("tb", c.Transition)

	if iir {
		num("gstop", c.Attenuation)
	} else {
		num("atten", c.Attenuation)
	}

	num("ripple", c.Ripple)
	num("winbeta", c.Beta)
	freq("srate", c.SymbolRate)
	num("rolloff", c.Rolloff)

	if c.NumTaps != nil {
		add("ntaps", design.Number(float64(*c.NumTaps)))
	}

	for _, e := range []struct {
		key   string
		edges []float64
	}{{"pbedge", c.PassbandEdge}, {"sbedge", c.StopbandEdge}} {
		switch len(e.edges) {
		case 0:
		case 1:
			add(e.key, design.Number(e.edges[0]))
		case 2:
			add(e.key, design.Pair(e.edges[0], e.edges[1]))
		default:
			return nil, fmt.Errorf("%w: %s needs one or two edges, got %d", errConfig, e.key, len(e.edges))
		}
	}

	return out, nil
}

// merge overrides the fields of c that are set in o.
func (c *Config) merge(o *Config) {
	for _, s := range []struct{ dst, src *string }{
		{&c.Restype, &o.Restype},
		{&c.Type, &o.Type},
		{&c.Window, &o.Window},
		{&c.Prototype, &o.Prototype},
		{&c.Output, &o.Output},
	} {
		if *s.src != "" {
			*s.dst = *s.src
		}
	}

	for _, f := range []struct{ dst, src **Freq }{
		{&c.SampleRate, &o.SampleRate},
		{&c.PassbandStart, &o.PassbandStart},
		{&c.PassbandEnd, &o.PassbandEnd},
		{&c.StopbandStart, &o.StopbandStart},
		{&c.StopbandEnd, &o.StopbandEnd},
		{&c.Transition, &o.Transition},
		{&c.SymbolRate, &o.SymbolRate},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}

	for _, f := range []struct{ dst, src **float64 }{
		{&c.Gain, &o.Gain},
		{&c.Attenuation, &o.Attenuation},
		{&c.Ripple, &o.Ripple},
		{&c.Beta, &o.Beta},
		{&c.Rolloff, &o.Rolloff},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}

	if o.NumTaps != nil {
		c.NumTaps = o.NumTaps
	}

	if o.PassbandEdge != nil {
		c.PassbandEdge = o.PassbandEdge
	}

	if o.StopbandEdge != nil {
		c.StopbandEdge = o.StopbandEdge
	}
}

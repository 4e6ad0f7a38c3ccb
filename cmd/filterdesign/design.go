package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-filterdesign/design"
	"github.com/cwbudde/algo-filterdesign/design/csvfile"
	"github.com/cwbudde/algo-filterdesign/internal/engnotation"
)

var (
	errUsage = errors.New("usage error")
	errHelp  = errors.New("help requested")
)

func newFlagSet(e *env, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: filterdesign %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}

	return fs
}

// parseFlags parses args and maps the flag package errors onto the exit
// codes of run. The flag package has already reported the problem.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, flag.ErrHelp):
		return errHelp
	default:
		return errUsage
	}
}

func freqFlag(fs *flag.FlagSet, dst **Freq, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		f, err := ParseFreq(s)
		if err != nil {
			return err
		}

		*dst = &f

		return nil
	})
}

func numFlag(fs *flag.FlagSet, dst **float64, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		var f engnotation.Float
		if err := f.Set(s); err != nil {
			return err
		}

		v := float64(f)
		*dst = &v

		return nil
	})
}

func intFlag(fs *flag.FlagSet, dst **int, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}

		*dst = &n

		return nil
	})
}

// edgesFlag reads one edge or a comma separated pair.
func edgesFlag(fs *flag.FlagSet, dst *[]float64, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		var edges []float64

		for _, part := range strings.Split(s, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return err
			}

			edges = append(edges, v)
		}

		*dst = edges

		return nil
	})
}

// bindDesignFlags registers the filter parameters. Only flags given on the
// command line end up set in c, so c can be merged over a YAML config.
func bindDesignFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.Restype, "restype", "", "response type: fir or iir (default fir)")
	fs.StringVar(&c.Type, "type", "", "filter type by label or code, e.g. lpf or \"Band Pass\"")
	fs.StringVar(&c.Window, "window", "", "FIR window by label or code (default Hann)")
	fs.StringVar(&c.Prototype, "proto", "", "IIR prototype: ellip, butter, cheby1 or cheby2")

	freqFlag(fs, &c.SampleRate, "fs", "sample rate, e.g. 48000, 48k or 48kHz")
	numFlag(fs, &c.Gain, "gain", "passband gain")
	freqFlag(fs, &c.PassbandStart, "pbstart", "passband start in Hz")
	freqFlag(fs, &c.PassbandEnd, "pbend", "passband end in Hz")
	freqFlag(fs, &c.StopbandStart, "sbstart", "stopband start in Hz")
	freqFlag(fs, &c.StopbandEnd, "sbend", "stopband end in Hz")
	freqFlag(fs, &c.Transition, "tb", "transition width in Hz")
	numFlag(fs, &c.Attenuation, "atten", "stopband attenuation in dB")
	numFlag(fs, &c.Ripple, "ripple", "passband ripple in dB")
	numFlag(fs, &c.Beta, "beta", "Kaiser window beta")
	freqFlag(fs, &c.SymbolRate, "srate", "symbol rate in Hz (RRC, Gaussian)")
	numFlag(fs, &c.Rolloff, "rolloff", "RRC roll-off or Gaussian BT")
	intFlag(fs, &c.NumTaps, "ntaps", "number of taps (RRC, Gaussian)")
	edgesFlag(fs, &c.PassbandEdge, "pbedge", "IIR passband edge(s), 1 = Nyquist, e.g. 0.1 or 0.25,0.3")
	edgesFlag(fs, &c.StopbandEdge, "sbedge", "IIR stopband edge(s), 1 = Nyquist")
}

// loadDesignConfig reads path (if any) and applies the flag overlay.
func loadDesignConfig(path string, overlay *Config) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	cfg.merge(overlay)

	return cfg, nil
}

// designRecord builds and designs the record described by cfg.
func designRecord(cfg *Config) (*design.Record, error) {
	rec, err := cfg.Record()
	if err != nil {
		return nil, err
	}

	if err := rec.Design(); err != nil {
		return nil, err
	}

	return rec, nil
}

func runDesign(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "design", "")

	var overlay Config

	configPath := fs.String("config", "", "YAML design file; flags override its values")
	fs.StringVar(&overlay.Output, "o", "", "output CSV file (default stdout)")
	bindDesignFlags(fs, &overlay)

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := loadDesignConfig(*configPath, &overlay)
	if err != nil {
		return err
	}

	rec, err := designRecord(cfg)
	if err != nil {
		return err
	}

	e.debugf("designed %v with %d taps", rec.Kind(), rec.NumTaps())

	if cfg.Output == "" {
		return csvfile.Write(e.stdout, rec)
	}

	if err := csvfile.Save(cfg.Output, rec); err != nil {
		return err
	}

	e.debugf("wrote %s", cfg.Output)

	return nil
}

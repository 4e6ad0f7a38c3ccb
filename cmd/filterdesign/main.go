// Command filterdesign designs FIR and IIR filters and reads and writes them
// as CSV design files.
//
// Usage:
//
//	filterdesign <command> [flags] [args]
//
// Commands:
//
//	design   design a filter from flags and/or a YAML file and write CSV
//	show     print a CSV design file, optionally with its response
//	labels   print the filter type, window and prototype dictionaries
//	windows  print the design windows and their attenuation
//	watch    redesign whenever a YAML design file changes
//
// Examples:
//
//	filterdesign design -type lpf -fs 48k -pbend 8k -sbstart 10k -o lpf.csv
//	filterdesign design -restype iir -type bpf -proto butter -pbedge 0.25,0.3 -sbedge 0.2,0.35
//	filterdesign design -config bandpass.yaml
//	filterdesign show -response 16 -pz lpf.csv
//	filterdesign watch -config bandpass.yaml -o bandpass.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

// env carries the output streams and logger of one invocation.
type env struct {
	stdout  io.Writer
	stderr  io.Writer
	log     *log.Logger
	verbose bool
}

func (e *env) debugf(format string, args ...any) {
	if e.verbose {
		e.log.Printf(format, args...)
	}
}

var commands = []command{
	{"design", "design a filter and write it as CSV", runDesign},
	{"show", "print a CSV design file", runShow},
	{"labels", "print the label/code dictionaries", runLabels},
	{"windows", "print the design windows", runWindows},
	{"watch", "redesign when a YAML design file changes", runWatch},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{
		stdout: stdout,
		stderr: stderr,
		log:    log.New(stderr, "filterdesign: ", 0),
	}

	if len(args) > 0 && (args[0] == "-v" || args[0] == "--v") {
		e.verbose = true
		args = args[1:]
	}

	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		if err := c.run(ctx, e, args[1:]); err != nil {
			switch {
			case errors.Is(err, errHelp):
				return 0
			case errors.Is(err, errUsage):
				return 2
			}

			e.log.Print(err)

			return 1
		}

		return 0
	}

	e.log.Printf("unknown command %q", args[0])
	usage(stderr)

	return 2
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: filterdesign [-v] <command> [flags] [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")

	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}

	fmt.Fprintf(w, "\nRun 'filterdesign <command> -h' for the flags of a command.\n")
}

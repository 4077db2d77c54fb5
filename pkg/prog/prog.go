// Package prog provides the entry point to esval. Its subpackages correspond
// to subprograms of esval.
package prog

// This package sets up the basic environment and calls the appropriate
// "subprogram", one of the build information printer or the evaluator.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"src.esval.dev/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log, CPUProfile string

	Help, Version, BuildInfo, JSON bool

	// Path of the configuration file; "" means the default location.
	Config   string
	NoConfig bool

	Strict       bool
	MaxSteps     int
	Timeout      time.Duration
	MaxDepth     int
	MaxCallDepth int

	History   string
	NoHistory bool
	// Number of history entries to list; 0 means not to list.
	ShowHistory int
	// Sequence number of a history entry to evaluate again.
	Replay int

	// Decode and show documents without evaluating them.
	CheckOnly bool
	// When to color diagnostics: "auto", "always" or "never".
	Color string

	set map[string]bool
}

// IsSet reports whether the named flag was given on the command line.
func (f *Flags) IsSet(name string) bool { return f.set[name] }

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("esval", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON. Useful with -buildinfo and -version")

	fs.StringVar(&f.Config, "config", "", "path to the configuration file")
	fs.BoolVar(&f.NoConfig, "noconfig", false, "ignore the configuration file")

	fs.BoolVar(&f.Strict, "strict", false, "evaluate as strict mode code")
	fs.IntVar(&f.MaxSteps, "max-steps", 0, "maximum number of evaluation steps; 0 means no limit")
	fs.DurationVar(&f.Timeout, "timeout", 0, "maximum duration of an evaluation; 0 means no limit")
	fs.IntVar(&f.MaxDepth, "max-depth", 0, "maximum expression nesting depth; 0 means no limit")
	fs.IntVar(&f.MaxCallDepth, "max-call-depth", 0, "maximum function call depth; -1 means no limit")

	fs.StringVar(&f.History, "history", "", "path to the history database")
	fs.BoolVar(&f.NoHistory, "nohistory", false, "do not record history")
	fs.IntVar(&f.ShowHistory, "show-history", 0, "list the last `n` history entries and quit")
	fs.IntVar(&f.Replay, "replay", 0, "evaluate the history entry with sequence number `seq` again")

	fs.BoolVar(&f.CheckOnly, "check", false, "decode and show the documents without evaluating them")
	fs.StringVar(&f.Color, "color", "auto", "when to color diagnostics: auto, always or never")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: esval [flags] [document...]")
	fmt.Fprintln(out, "Documents are ESTree trees in JSON or YAML; - or no argument reads stdin.")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. esval defines -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	// Handle flags common to all subprograms.
	if f.CPUProfile != "" {
		f, err := os.Create(f.CPUProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return NotSuitable().
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}

// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8go/internal/options"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	emuOpts := options.NewEmulator()

	readOptionFlags(flags, &opts)
	readEmulatorOptionFlags(flags, &emuOpts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, emuOpts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, emuOpts, err
	}
	opts.Input = args[0]

	if err := validateOptions(opts, emuOpts); err != nil {
		return opts, emuOpts, err
	}

	return opts, emuOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8go [options] <program file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values and combinations
func validateOptions(opts options.Program, emuOpts options.Emulator) error {
	switch {
	case opts.Scale < 1:
		return fmt.Errorf("invalid window scale factor %d", opts.Scale)
	case emuOpts.TickRate < 1:
		return fmt.Errorf("invalid tick rate %d", emuOpts.TickRate)
	case opts.Frames < 0:
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	case opts.Frames > 0 && !opts.Headless:
		return fmt.Errorf("running a fixed number of frames requires headless mode")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor for the 64x32 display")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and audio output")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run in headless mode, 0 runs until interrupted")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readEmulatorOptionFlags(flags *flag.FlagSet, opts *options.Emulator) {
	flags.IntVar(&opts.TickRate, "tickrate", options.DefaultTickRate, "interpreter ticks per second")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug to be visible")
}

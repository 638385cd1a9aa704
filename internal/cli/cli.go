// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/options"
)

// ParseFlags parses the command line flags into the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readMachineFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8 [options] <rom file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg: fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Trace {
		opts.Debug = true
	}
	if opts.Hz < 0 || opts.Hz > options.MaxHz {
		return fmt.Errorf("invalid clock rate %d, must be between 0 and %d", opts.Hz, options.MaxHz)
	}
	if opts.TimerDivider < 1 {
		return fmt.Errorf("invalid timer divider %d, must be at least 1", opts.TimerDivider)
	}
	if opts.MaxErrors < 0 {
		return fmt.Errorf("invalid error limit %d, must not be negative", opts.MaxErrors)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.StateDot, "statedot", "", "write a Graphviz graph of the machine state to this file on exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Dump, "dump", false, "print the framebuffer on exit")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics while running")
}

func readMachineFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "number of instructions to execute, 0 runs until interrupted")
	flags.IntVar(&opts.Hz, "hz", options.DefaultHz, "instructions per second, 0 runs unpaced")
	flags.IntVar(&opts.TimerDivider, "timer-divider", options.DefaultTimerDivider, "decrement the timers every n instructions")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the current time")
	flags.IntVar(&opts.MaxErrors, "max-errors", 0, "stop after n consecutive execution errors, 0 never stops")
	flags.BoolVar(&opts.ShiftUsesVY, "shift-vy", false, "shift instructions shift VY into VX")
	flags.BoolVar(&opts.LoadStoreIncrementsIndex, "increment-i", false, "register store and load instructions advance I")
}

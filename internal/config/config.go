// Package config handles application configuration and setup
package config

import (
	"github.com/Grandduchy/CHIP-8-Emulator/internal/host"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/options"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/random"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig returns the machine configuration for the program options.
func MachineConfig(opts options.Program) vm.Config {
	return vm.Config{
		Random: random.New(opts.Seed),
		Quirks: vm.Quirks{
			ShiftUsesVY:              opts.ShiftUsesVY,
			LoadStoreIncrementsIndex: opts.LoadStoreIncrementsIndex,
		},
		TimerDivider: opts.TimerDivider,
		Trace:        opts.Trace,
	}
}

// RunnerOptions returns the driver loop options for the program options.
func RunnerOptions(opts options.Program) host.Options {
	return host.Options{
		Hz:        opts.Hz,
		Cycles:    opts.Cycles,
		MaxErrors: opts.MaxErrors,
	}
}

// Package fileprocessor handles running a ROM file from loading to the
// final state dumps.
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/config"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/display"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/host"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/options"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/rom"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/vm"
	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM file of the options into a fresh machine and
// runs it until the context is cancelled or the configured cycle limit is
// reached. The framebuffer is written to output if requested.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	machine := vm.New(logger, config.MachineConfig(opts))

	if err := rom.New().LoadInto(machine, opts.Input); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("hz", opts.Hz),
		log.Int("timer_divider", opts.TimerDivider))

	runner := host.New(logger, machine, config.RunnerOptions(opts))
	runner.OnFrame = func(fb *display.Framebuffer) {
		logger.Debug("Frame", log.Int("lit", fb.Lit()))
	}
	runner.OnBeep = func() {
		logger.Info("Beep")
	}

	runErr := runner.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		runErr = fmt.Errorf("running rom: %w", runErr)
	}

	stats := runner.Stats()
	state := runner.State()
	logger.Info("Emulation stopped",
		log.Uint64("cycles", stats.Cycles),
		log.Uint64("frames", stats.Frames),
		log.Uint64("beeps", stats.Beeps),
		log.Uint64("errors", stats.Errors),
		log.Hex("pc", state.PC))

	if opts.Dump {
		if _, err := io.WriteString(output, machine.Display().String()); err != nil {
			return fmt.Errorf("writing framebuffer: %w", err)
		}
	}
	if opts.StateDot != "" {
		if err := writeStateGraph(opts.StateDot, state); err != nil {
			return err
		}
	}
	return runErr
}

// writeStateGraph writes a Graphviz representation of the machine state.
func writeStateGraph(path string, state vm.State) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", path, err)
	}
	memviz.Map(file, &state)
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", path, err)
	}
	return nil
}

// PrintBanner logs the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

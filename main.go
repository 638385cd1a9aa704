// Package main implements the main entry point for a headless CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/cli"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/config"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/fileprocessor"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/options"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/statsview"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)
	os.Exit(run(ctx, logger, opts))
}

// run executes the ROM and returns the process exit code. Deferred cleanup
// runs before main exits.
func run(ctx context.Context, logger *log.Logger, opts options.Program) int {
	if opts.StatsView {
		stop := statsview.Launch(logger)
		defer stop()
	}

	if err := fileprocessor.ProcessFile(ctx, logger, opts, os.Stdout); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return 0
		}
		logger.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}

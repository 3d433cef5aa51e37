// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/chip8go/internal/cli"
	"github.com/retroenv/chip8go/internal/config"
	"github.com/retroenv/chip8go/internal/emulator"
	"github.com/retroenv/chip8go/internal/frontend"
	"github.com/retroenv/chip8go/internal/loader"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, emuOpts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts, emuOpts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation stopped")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program,
	emuOpts options.Emulator) error {

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		logger.Info("Running Chip-8 program",
			log.String("file", opts.Input),
			log.Int("tickRate", emuOpts.TickRate),
		)
	}

	if opts.Headless {
		return frontend.RunHeadless(ctx, logger, opts, emuOpts, program)
	}
	return frontend.Run(ctx, logger, opts, emuOpts, program)
}

func printBanner(logger *log.Logger, opts options.Program) {
	if !opts.Quiet {
		logger.Info("chip8go - CHIP-8 emulator")
		logger.Info("version: " + buildinfo.Version(version, commit, date))
		logger.Info("emulating " + emulator.Description)
	}
}

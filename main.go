// Package main implements a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/audio/speaker"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

const name = "retrochip8"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args)
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, name, opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, name, opts.Quiet, version, commit, date)

	keyScript, err := headless.ParseScript(opts.Keys)
	if err != nil {
		logger.Fatal(err.Error())
	}

	emu := emulator.New(logger, emulator.Dependencies{
		Frontends: map[string]frontend.Constructor{
			options.FrontendWindow:   window.New,
			options.FrontendTerminal: terminal.New,
			options.FrontendHeadless: headless.Constructor(os.Stdout, keyScript),
		},
		NewSpeaker: newSpeaker,
		DumpOutput: os.Stdout,
	})

	if _, err := emu.Execute(ctx, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}

func newSpeaker(logger *log.Logger, clip audio.Clip) (emulator.Speaker, error) {
	player, err := speaker.New(logger, clip)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/profile"
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

// Resolve returns the profile selected by the options with all command line
// overrides applied. An unknown profile name falls back to the default
// profile.
func Resolve(logger *log.Logger, opts options.Program) profile.Profile {
	if opts.DefaultsUsed {
		logger.Warn("No ROM and profile given, using defaults",
			log.String("rom", options.DefaultROM),
			log.String("profile", options.DefaultProfile))
	}

	p, err := profile.Get(opts.Profile)
	if err != nil {
		logger.Warn("Using default profile", log.Err(err), log.String("profile", options.DefaultProfile))
		p, _ = profile.Get(options.DefaultProfile)
	}

	if opts.Zoom > 0 {
		p.Zoom = opts.Zoom
	}
	if opts.Speed > 0 {
		p.Speed = opts.Speed
	}
	if opts.ShiftVY {
		p.ShiftUsesVY = true
	}
	if opts.Dump {
		p.Debug = true
	}

	logger.Debug("Using profile",
		log.String("name", p.Name),
		log.Int("zoom", p.Zoom),
		log.Int("speed", p.Speed))
	return p
}

// Package emulator wires the machine, the ROM loader, audio and a frontend
// together and runs a program.
package emulator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/dump"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Speaker is a beeper that holds host audio resources.
type Speaker interface {
	audio.Beeper
	io.Closer
}

// SpeakerConstructor creates a speaker that plays the clip.
type SpeakerConstructor func(logger *log.Logger, clip audio.Clip) (Speaker, error)

// Dependencies contains the host specific collaborators.
type Dependencies struct {
	Frontends  map[string]frontend.Constructor
	NewSpeaker SpeakerConstructor // nil disables audio
	DumpOutput io.Writer          // default output of the debug dump
}

// Emulator runs CHIP-8 programs.
type Emulator struct {
	logger *log.Logger
	deps   Dependencies
}

// New creates a new emulator.
func New(logger *log.Logger, deps Dependencies) *Emulator {
	if deps.DumpOutput == nil {
		deps.DumpOutput = os.Stdout
	}
	return &Emulator{
		logger: logger,
		deps:   deps,
	}
}

// Execute loads the ROM selected by the options and runs it until the
// program ends, the user quits or the context is cancelled. The machine
// state is returned for inspection also when an error occurred.
func (e *Emulator) Execute(ctx context.Context, opts options.Program) (*machine.Machine, error) {
	p := config.Resolve(e.logger, opts)

	program, err := loader.New(e.logger, opts.ROMDir).Load(opts.ROM)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	newFrontend, ok := e.deps.Frontends[opts.Frontend]
	if !ok {
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}

	speaker := e.createSpeaker(opts)
	defer func() {
		if err := speaker.Close(); err != nil {
			e.logger.Error("Closing speaker failed", log.Err(err))
		}
	}()

	reporter := newOpcodeReporter(e.logger)
	m := machine.New(machine.Options{
		ShiftUsesVY:     p.ShiftUsesVY,
		Speaker:         speaker,
		OnUnknownOpcode: reporter.report,
	})
	if err := m.Load(program); err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	fe, err := newFrontend(e.logger, p)
	if err != nil {
		return nil, fmt.Errorf("creating frontend '%s': %w", opts.Frontend, err)
	}

	runner := NewRunner(e.logger, m, fe, fe, RunnerOptions{
		Speed:      p.Speed,
		CycleLimit: opts.Cycles,
		Trace:      opts.Trace,
	})

	e.logger.Info("Running program",
		log.String("rom", opts.ROM),
		log.String("profile", p.Name),
		log.Int("size", len(program)))

	runErr := fe.Run(ctx, runner)
	if err := fe.Close(); err != nil {
		e.logger.Error("Closing frontend failed", log.Err(err))
	}

	if p.Debug {
		if err := e.writeDump(opts.DumpFile, m); err != nil {
			e.logger.Error("Writing debug dump failed", log.Err(err))
		}
	}

	if runErr != nil {
		return m, runErr
	}
	e.logger.Debug("Program finished", log.Int("cycles", runner.Cycles()))
	return m, nil
}

// createSpeaker returns the speaker for the sound timer, falling back to a
// muted speaker if audio is disabled or not available.
func (e *Emulator) createSpeaker(opts options.Program) Speaker {
	if opts.Mute || e.deps.NewSpeaker == nil {
		return muted{}
	}

	clip := audio.Tone(audio.DefaultFrequency, audio.DefaultDuration, audio.DefaultSampleRate)
	if opts.Sound != "" {
		loaded, err := audio.LoadClip(opts.Sound)
		if err != nil {
			e.logger.Warn("Using generated tone", log.Err(err))
		} else {
			clip = loaded
		}
	}

	speaker, err := e.deps.NewSpeaker(e.logger, clip)
	if err != nil {
		e.logger.Warn("Audio is not available", log.Err(err))
		return muted{}
	}
	return speaker
}

func (e *Emulator) writeDump(path string, m *machine.Machine) error {
	if path == "" {
		return dump.Write(e.deps.DumpOutput, m)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	if err := dump.Write(file, m); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing dump file: %w", err)
	}
	e.logger.Info("Debug dump written", log.String("file", path))
	return nil
}

type muted struct {
	audio.Mute
}

func (muted) Close() error { return nil }

// opcodeReporter logs every distinct unknown instruction word once.
type opcodeReporter struct {
	logger   *log.Logger
	reported set.Set[uint16]
}

func newOpcodeReporter(logger *log.Logger) *opcodeReporter {
	return &opcodeReporter{
		logger:   logger,
		reported: set.New[uint16](),
	}
}

func (o *opcodeReporter) report(address, word uint16) {
	if o.reported.Contains(word) {
		return
	}
	o.reported.Add(word)
	o.logger.Warn("Ignoring unknown instruction",
		log.Hex("address", address),
		log.Hex("opcode", word))
}

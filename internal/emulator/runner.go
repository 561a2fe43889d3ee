package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// ThrottleDelay is the pause that is inserted after every Speed cycles.
const ThrottleDelay = 10 * time.Millisecond

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Speed      int  // cycles between two throttle delays, 0 disables the throttle
	CycleLimit int  // stop after this number of cycles, 0 for no limit
	Trace      bool // log every executed instruction
}

// Runner is the driver loop that executes the machine and connects it to the
// renderer and input collaborators.
type Runner struct {
	logger   *log.Logger
	machine  *machine.Machine
	renderer frontend.Renderer
	input    frontend.Input
	options  RunnerOptions

	cycles        int
	throttleCount int
	sleep         func(time.Duration)
}

var _ frontend.Loop = (*Runner)(nil)

// NewRunner returns a new driver loop for the machine.
func NewRunner(logger *log.Logger, m *machine.Machine, renderer frontend.Renderer,
	input frontend.Input, options RunnerOptions) *Runner {

	return &Runner{
		logger:   logger,
		machine:  m,
		renderer: renderer,
		input:    input,
		options:  options,
		sleep:    time.Sleep,
	}
}

// Cycles returns the number of executed cycles.
func (r *Runner) Cycles() int {
	return r.cycles
}

// Cycle executes one instruction, polls the input and renders the
// framebuffer if it changed. Running past the end of memory ends the
// program without an error.
func (r *Runner) Cycle() (bool, error) {
	if r.options.Trace {
		r.traceInstruction()
	}

	if err := r.machine.Step(); err != nil {
		if errors.Is(err, machine.ErrOutOfBounds) {
			r.logger.Info("Program reached the end of memory", log.Int("cycles", r.cycles))
			return true, nil
		}
		return true, fmt.Errorf("cycle %d: %w", r.cycles, err)
	}
	r.cycles++

	if r.input.Poll(&r.machine.Keys) {
		r.logger.Info("Quit requested", log.Int("cycles", r.cycles))
		return true, nil
	}

	if r.machine.Display.NeedsRedraw() {
		if err := r.renderer.Render(&r.machine.Display); err != nil {
			return true, fmt.Errorf("rendering frame: %w", err)
		}
		r.machine.Display.ClearRedraw()
	}

	if r.options.CycleLimit > 0 && r.cycles >= r.options.CycleLimit {
		r.logger.Info("Cycle limit reached", log.Int("cycles", r.cycles))
		return true, nil
	}
	return false, nil
}

// Run executes cycles until the program is done or the context is
// cancelled. After every Speed cycles the loop pauses for ThrottleDelay.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}

		done, err := r.Cycle()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		r.throttle()
	}
}

func (r *Runner) throttle() {
	if r.options.Speed <= 0 {
		return
	}
	r.throttleCount++
	if r.throttleCount == r.options.Speed {
		r.sleep(ThrottleDelay)
		r.throttleCount = 0
	}
}

func (r *Runner) traceInstruction() {
	pc := r.machine.PC
	word, err := r.machine.Fetch()
	if err != nil {
		return
	}
	code, _ := disasm.Format(word)
	r.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", word),
		log.String("code", code),
		log.Hex("i", r.machine.I))
}

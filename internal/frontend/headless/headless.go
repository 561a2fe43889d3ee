// Package headless implements a frontend without any host output, used for
// scripted runs. It records the rendered frames and can print the last one.
package headless

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/profile"
	"github.com/retroenv/retrogolib/log"
)

// Frame is a copy of the framebuffer pixels.
type Frame [machine.DisplayWidth * machine.DisplayHeight]byte

// Headless is a frontend that keeps the rendered frames in memory.
type Headless struct {
	logger *log.Logger
	output io.Writer

	frames    int
	lastFrame Frame
	keys      []KeyEvent
	polls     int
}

// KeyEvent is a scripted key state change that is applied at the given poll.
type KeyEvent struct {
	Poll    int
	Code    byte
	Pressed bool
}

var _ frontend.Frontend = (*Headless)(nil)

// New returns a headless frontend that prints the last frame to output on
// Close. A nil output disables printing.
func New(logger *log.Logger, output io.Writer) *Headless {
	return &Headless{
		logger: logger,
		output: output,
	}
}

// Constructor returns a frontend constructor that prints to output and
// applies the key script.
func Constructor(output io.Writer, script []KeyEvent) frontend.Constructor {
	return func(logger *log.Logger, _ profile.Profile) (frontend.Frontend, error) {
		h := New(logger, output)
		h.Script(script...)
		return h, nil
	}
}

// ParseScript parses a comma separated key script. Every event has the form
// poll:key+ to press or poll:key- to release a key, key is a host character
// of the keypad layout.
func ParseScript(script string) ([]KeyEvent, error) {
	if script == "" {
		return nil, nil
	}

	var events []KeyEvent
	for _, item := range strings.Split(script, ",") {
		item = strings.TrimSpace(item)
		pollText, keyText, ok := strings.Cut(item, ":")
		if !ok || len(keyText) != 2 {
			return nil, fmt.Errorf("invalid key event '%s'", item)
		}

		poll, err := strconv.Atoi(pollText)
		if err != nil || poll < 0 {
			return nil, fmt.Errorf("invalid poll number in key event '%s'", item)
		}
		code, ok := keypad.Code(rune(keyText[0]))
		if !ok {
			return nil, fmt.Errorf("unknown key '%c' in key event '%s'", keyText[0], item)
		}

		var pressed bool
		switch keyText[1] {
		case '+':
			pressed = true
		case '-':
		default:
			return nil, fmt.Errorf("invalid key state in key event '%s'", item)
		}

		events = append(events, KeyEvent{Poll: poll, Code: code, Pressed: pressed})
	}
	return events, nil
}

// Script sets key events that are applied by Poll.
func (h *Headless) Script(events ...KeyEvent) {
	h.keys = append(h.keys, events...)
}

// Render stores a copy of the framebuffer.
func (h *Headless) Render(fb *machine.Framebuffer) error {
	copy(h.lastFrame[:], fb.Pixels())
	h.frames++
	return nil
}

// Poll applies the scripted key events of the current poll.
func (h *Headless) Poll(keys *machine.Keypad) bool {
	for _, event := range h.keys {
		if event.Poll == h.polls {
			keys.Set(event.Code, event.Pressed)
			h.logger.Debug("Scripted key",
				log.String("key", string(keypad.Rune(event.Code))),
				log.Uint8("code", event.Code),
				log.Int("poll", h.polls))
		}
	}
	h.polls++
	return false
}

// Run executes the loop on the calling goroutine.
func (h *Headless) Run(ctx context.Context, loop frontend.Loop) error {
	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("running headless: %w", err)
	}
	return nil
}

// Close prints the last rendered frame.
func (h *Headless) Close() error {
	h.logger.Debug("Headless frontend finished", log.Int("frames", h.frames))
	if h.output == nil {
		return nil
	}
	if _, err := io.WriteString(h.output, h.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Frames returns the number of rendered frames.
func (h *Headless) Frames() int {
	return h.frames
}

// LastFrame returns the last rendered frame.
func (h *Headless) LastFrame() Frame {
	return h.lastFrame
}

// String returns the last frame as text, set pixels are drawn as '#'.
func (h *Headless) String() string {
	var buf strings.Builder
	for y := range machine.DisplayHeight {
		for x := range machine.DisplayWidth {
			if h.lastFrame[y*machine.DisplayWidth+x] != 0 {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

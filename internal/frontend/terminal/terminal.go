// Package terminal implements a frontend that draws the display with ANSI
// escape sequences and reads the keypad from the raw terminal input.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/profile"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// inputState tracks escape sequences in the input stream.
type inputState uint8

const (
	inputNormal   inputState = iota
	inputEscape              // ESC received
	inputSequence            // inside a CSI or SS3 sequence
)

// Terminals do not report key releases, a key counts as pressed for keyHold
// after its last repeat.
const keyHold = 150 * time.Millisecond

// frameInterval limits the output rate of frames.
const frameInterval = time.Second / 60

const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	resetStyle = "\x1b[0m"
	upperHalf  = "▀"
)

// Terminal is a frontend that renders into a text terminal.
type Terminal struct {
	logger  *log.Logger
	profile profile.Profile
	input   io.Reader
	output  io.Writer
	now     func() time.Time

	bytes    chan byte
	stop     chan struct{}
	stopOnce sync.Once

	lastPress [machine.KeyCount]time.Time
	state     inputState
	quit      bool

	frame     [machine.DisplayWidth * machine.DisplayHeight]byte
	pending   bool
	lastWrite time.Time
}

var _ frontend.Frontend = (*Terminal)(nil)

// New returns a terminal frontend that uses the process standard streams.
func New(logger *log.Logger, p profile.Profile) (frontend.Frontend, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("standard output is not a terminal")
	}
	return newTerminal(logger, p, os.Stdin, os.Stdout), nil
}

func newTerminal(logger *log.Logger, p profile.Profile, input io.Reader, output io.Writer) *Terminal {
	return &Terminal{
		logger:  logger,
		profile: p,
		input:   input,
		output:  output,
		now:     time.Now,
		bytes:   make(chan byte, 64),
		stop:    make(chan struct{}),
	}
}

// Render stores the framebuffer and writes it if the frame interval has
// passed since the last write.
func (t *Terminal) Render(fb *machine.Framebuffer) error {
	copy(t.frame[:], fb.Pixels())
	t.pending = true
	return t.flush(false)
}

func (t *Terminal) flush(force bool) error {
	if !t.pending {
		return nil
	}
	now := t.now()
	if !force && now.Sub(t.lastWrite) < frameInterval {
		return nil
	}
	if _, err := io.WriteString(t.output, cursorHome+Frame(t.profile, t.frame[:])); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	t.pending = false
	t.lastWrite = now
	return nil
}

// Poll consumes the buffered input bytes and updates the keypad. A lone
// Escape or Ctrl+C request to quit.
func (t *Terminal) Poll(keys *machine.Keypad) bool {
	var input []byte
	for drained := false; !drained; {
		select {
		case b := <-t.bytes:
			input = append(input, b)
		default:
			drained = true
		}
	}
	t.handleInput(input)

	now := t.now()
	for code := range machine.KeyCount {
		last := t.lastPress[code]
		keys.Set(byte(code), !last.IsZero() && now.Sub(last) < keyHold)
	}

	if err := t.flush(false); err != nil {
		t.logger.Error("Writing frame failed", log.Err(err))
	}
	return t.quit
}

// handleInput processes the bytes received since the last poll. Escape
// sequences of special keys are skipped, an Escape that is not followed by
// more input is the Escape key.
func (t *Terminal) handleInput(input []byte) {
	for _, b := range input {
		switch t.state {
		case inputEscape:
			switch b {
			case '[', 'O':
				t.state = inputSequence
			case keyEscape:
			default:
				// Alt+key
				t.state = inputNormal
			}

		case inputSequence:
			if b >= 0x40 && b <= 0x7E {
				t.state = inputNormal
			}

		default:
			t.handleByte(b)
		}
	}

	if t.state == inputEscape {
		t.quit = true
		t.state = inputNormal
	}
}

func (t *Terminal) handleByte(b byte) {
	switch b {
	case keyCtrlC:
		t.quit = true
		return
	case keyEscape:
		t.state = inputEscape
		return
	}
	code, ok := keypad.Code(rune(b))
	if !ok {
		return
	}
	t.lastPress[code] = t.now()
}

// Run switches the terminal to raw mode, starts reading the input and
// executes the loop until the program is done.
func (t *Terminal) Run(ctx context.Context, loop frontend.Loop) error {
	if f, ok := t.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("setting raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()
	}

	go t.readInput()
	defer t.stopOnce.Do(func() { close(t.stop) })

	if _, err := io.WriteString(t.output, clearAll+hideCursor); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.output, resetStyle+showCursor)
	}()

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}
	return nil
}

// readInput forwards the input bytes until the input ends or the frontend
// is stopped. A blocked read keeps the goroutine alive until the process
// exits.
func (t *Terminal) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := t.input.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.bytes <- b:
			case <-t.stop:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Close writes a pending frame.
func (t *Terminal) Close() error {
	if err := t.flush(true); err != nil {
		return err
	}
	t.logger.Debug("Terminal frontend closed")
	return nil
}

// Frame returns the pixels as lines of upper half block characters, every
// line covers two display rows. The foreground color draws the upper row and
// the background color the lower row.
func Frame(p profile.Profile, pixels []byte) string {
	var buf strings.Builder
	for y := 0; y < machine.DisplayHeight; y += 2 {
		var fg, bg color.RGBA
		first := true
		for x := range machine.DisplayWidth {
			top := frontend.PixelColor(p, pixels[y*machine.DisplayWidth+x])
			bottom := frontend.PixelColor(p, pixels[(y+1)*machine.DisplayWidth+x])
			if first || top != fg {
				fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
				fg = top
			}
			if first || bottom != bg {
				fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm", bottom.R, bottom.G, bottom.B)
				bg = bottom
			}
			first = false
			buf.WriteString(upperHalf)
		}
		buf.WriteString(resetStyle + "\r\n")
	}
	return buf.String()
}

// Package window implements a desktop window frontend using ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/profile"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

const title = "retrochip8"

// ticksPerSecond is the default ebiten update rate.
const ticksPerSecond = 60

// maxCyclesPerTick bounds the work of a single update so that the window
// stays responsive for unthrottled profiles.
const maxCyclesPerTick = 20000

// hostKeys lists the ebiten keys in the order of keypad.Layout.
var hostKeys = [16]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// Window renders the framebuffer into a scaled desktop window.
type Window struct {
	logger  *log.Logger
	profile profile.Profile

	mu     sync.Mutex
	pixels []byte // RGBA
	image  *ebiten.Image

	ctx    context.Context
	loop   frontend.Loop
	paused bool
	err    error
}

var _ frontend.Frontend = (*Window)(nil)

// New returns a window frontend for the profile.
func New(logger *log.Logger, p profile.Profile) (frontend.Frontend, error) {
	if p.Zoom <= 0 {
		return nil, fmt.Errorf("invalid zoom %d", p.Zoom)
	}
	w := &Window{
		logger:  logger,
		profile: p,
		pixels:  make([]byte, machine.DisplayWidth*machine.DisplayHeight*4),
	}
	w.fill(nil)
	return w, nil
}

// Render converts the framebuffer to the profile colors.
func (w *Window) Render(fb *machine.Framebuffer) error {
	w.fill(fb.Pixels())
	return nil
}

func (w *Window) fill(pixels []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range machine.DisplayWidth * machine.DisplayHeight {
		var pixel byte
		if pixels != nil {
			pixel = pixels[i]
		}
		c := frontend.PixelColor(w.profile, pixel)
		offset := i * 4
		w.pixels[offset] = c.R
		w.pixels[offset+1] = c.G
		w.pixels[offset+2] = c.B
		w.pixels[offset+3] = c.A
	}
}

// Poll reads the state of the mapped host keys. Escape or closing the window
// requests to quit.
func (w *Window) Poll(keys *machine.Keypad) bool {
	for i, key := range hostKeys {
		keys.Set(keypad.Codes[i], ebiten.IsKeyPressed(key))
	}
	return ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape)
}

// Run opens the window and executes the loop from the ebiten update
// callback until the program is done.
func (w *Window) Run(ctx context.Context, loop frontend.Loop) error {
	w.ctx = ctx
	w.loop = loop

	ebiten.SetWindowSize(machine.DisplayWidth*w.profile.Zoom, machine.DisplayHeight*w.profile.Zoom)
	ebiten.SetWindowTitle(fmt.Sprintf("%s [%s]", title, w.profile.Name))
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Close has nothing to release, ebiten closes the window when RunGame
// returns.
func (w *Window) Close() error {
	w.logger.Debug("Window frontend closed")
	return nil
}

// Update executes the cycles of one tick.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil {
		w.err = fmt.Errorf("running window: %w", err)
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.paused = !w.paused
		if w.paused {
			w.logger.Debug("Emulation paused")
		}
	}
	if w.paused {
		return nil
	}

	for range CyclesPerTick(w.profile.Speed) {
		done, err := w.loop.Cycle()
		if err != nil {
			w.err = err
			return ebiten.Termination
		}
		if done {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw scales the display image to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(machine.DisplayWidth, machine.DisplayHeight)
	}

	w.mu.Lock()
	w.image.WritePixels(w.pixels)
	w.mu.Unlock()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.profile.Zoom), float64(w.profile.Zoom))
	screen.DrawImage(w.image, opts)

	if w.paused {
		face := basicfont.Face7x13
		label := "PAUSED"
		x := (machine.DisplayWidth*w.profile.Zoom - text.BoundString(face, label).Dx()) / 2
		y := machine.DisplayHeight * w.profile.Zoom / 2
		text.Draw(screen, label, face, x, y, w.profile.Foreground)
	}
}

// Layout keeps the logical screen at the zoomed display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return machine.DisplayWidth * w.profile.Zoom, machine.DisplayHeight * w.profile.Zoom
}

// CyclesPerTick converts the profile speed, the number of cycles between two
// 10 ms pauses, to the number of cycles per update tick.
func CyclesPerTick(speed int) int {
	if speed <= 0 {
		return maxCyclesPerTick
	}
	cycles := speed * 100 / ticksPerSecond
	return min(max(cycles, 1), maxCyclesPerTick)
}

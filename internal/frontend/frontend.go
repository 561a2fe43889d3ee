// Package frontend defines the collaborators that connect the machine to the
// host: rendering of the framebuffer, keypad input and the main loop.
package frontend

import (
	"context"
	"image/color"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/profile"
	"github.com/retroenv/retrogolib/log"
)

// Renderer draws the framebuffer. It is called after a cycle that set the
// redraw flag.
type Renderer interface {
	Render(fb *machine.Framebuffer) error
}

// Input writes the host key state into the keypad between cycles and reports
// whether the user requested to quit.
type Input interface {
	Poll(keys *machine.Keypad) (quit bool)
}

// Loop executes the machine cycles.
type Loop interface {
	// Cycle executes one iteration of the driver loop and returns whether
	// the program is done.
	Cycle() (done bool, err error)
	// Run executes cycles with the profile throttle until the program is
	// done or the context is cancelled.
	Run(ctx context.Context) error
}

// Frontend is a host frontend. Run owns the calling goroutine until the loop
// finishes.
type Frontend interface {
	Renderer
	Input
	Run(ctx context.Context, loop Loop) error
	Close() error
}

// Constructor creates a frontend for a profile.
type Constructor func(logger *log.Logger, p profile.Profile) (Frontend, error)

// PixelColor returns the profile color of a pixel value.
func PixelColor(p profile.Profile, pixel byte) color.RGBA {
	if pixel != 0 {
		return p.Foreground
	}
	return p.Background
}

package machine

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer is the 64x32 monochrome display. Pixels are stored row-major
// with one byte per pixel that is always 0 or 1.
type Framebuffer struct {
	pixels [DisplayWidth * DisplayHeight]byte
	redraw bool
}

// Pixel returns the pixel value at the given coordinates, 0 for coordinates
// outside of the display.
func (f *Framebuffer) Pixel(x, y int) byte {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return 0
	}
	return f.pixels[x+y*DisplayWidth]
}

// Pixels returns the row-major pixel data. The returned slice aliases the
// framebuffer and must not be modified.
func (f *Framebuffer) Pixels() []byte {
	return f.pixels[:]
}

// NeedsRedraw returns whether the framebuffer changed since the last
// ClearRedraw call.
func (f *Framebuffer) NeedsRedraw() bool {
	return f.redraw
}

// ClearRedraw acknowledges that the current frame has been consumed.
func (f *Framebuffer) ClearRedraw() {
	f.redraw = false
}

func (f *Framebuffer) clear() {
	f.pixels = [DisplayWidth * DisplayHeight]byte{}
	f.redraw = true
}

// xor toggles a pixel by the sprite bit and reports a collision if a set
// pixel was hit by a set bit. Pixels outside of the display are dropped.
func (f *Framebuffer) xor(x, y int, bit byte) bool {
	if x >= DisplayWidth || y >= DisplayHeight {
		return false
	}
	offset := x + y*DisplayWidth
	collision := f.pixels[offset]&bit == 1
	f.pixels[offset] ^= bit
	return collision
}

package machine

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDraw_Sprite(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.I = 0x300
	m.Memory[0x300] = 0b10100001
	m.Memory[0x301] = 0b11000000
	m.V[1] = 10
	m.V[2] = 5
	m.V[FlagRegister] = 1

	assert.NoError(t, execute(t, m, 0xD122))

	assert.Equal(t, byte(0), m.V[FlagRegister])
	assert.True(t, m.Display.NeedsRedraw())

	want := map[[2]int]byte{
		{10, 5}: 1, {12, 5}: 1, {17, 5}: 1,
		{10, 6}: 1, {11, 6}: 1,
	}
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if got := m.Display.Pixel(x, y); got != want[[2]int{x, y}] {
				t.Fatalf("pixel %d,%d: expected %d, got %d", x, y, want[[2]int{x, y}], got)
			}
		}
	}
}

func TestDraw_XORIdempotence(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.I = 0x300
	m.Memory[0x300] = 0b01101101
	m.V[0] = 20
	m.V[1] = 7

	// preexisting pixel outside of the sprite
	m.Display.xor(0, 0, 1)
	before := m.Display.pixels

	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, byte(0), m.V[FlagRegister])

	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, before, m.Display.pixels)
	assert.Equal(t, byte(1), m.V[FlagRegister])

	// a third draw turns the bits on again without a collision
	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, byte(0), m.V[FlagRegister])
}

func TestDraw_Collision(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.I = 0x300
	m.Memory[0x300] = 0b10000000
	m.Memory[0x301] = 0b11000000

	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, byte(0), m.V[FlagRegister])

	// second sprite overlaps only at the origin
	m.I = 0x301
	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, byte(1), m.V[FlagRegister])
	assert.Equal(t, byte(0), m.Display.Pixel(0, 0))
	assert.Equal(t, byte(1), m.Display.Pixel(1, 0))
}

func TestDraw_ClipsAtEdges(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.I = 0x300
	m.Memory[0x300] = 0xFF
	m.Memory[0x301] = 0xFF
	m.V[0] = 60
	m.V[1] = 31

	assert.NoError(t, execute(t, m, 0xD012))

	for x := 60; x < DisplayWidth; x++ {
		assert.Equal(t, byte(1), m.Display.Pixel(x, 31))
	}
	// no wraparound to the left or top edge
	for x := range 4 {
		assert.Equal(t, byte(0), m.Display.Pixel(x, 31))
		assert.Equal(t, byte(0), m.Display.Pixel(x, 0))
	}
	assert.Equal(t, byte(0), m.Display.Pixel(60, 0))
}

func TestDraw_CoordinatesBeyondDisplay(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.I = 0x300
	m.Memory[0x300] = 0xFF
	m.V[0] = 0xF0
	m.V[1] = 0xF0

	assert.NoError(t, execute(t, m, 0xD011))
	assert.Equal(t, [DisplayWidth * DisplayHeight]byte{}, m.Display.pixels)
	assert.True(t, m.Display.NeedsRedraw())
}

func TestDraw_ZeroRows(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.V[FlagRegister] = 1

	assert.NoError(t, execute(t, m, 0xD010))
	assert.Equal(t, byte(0), m.V[FlagRegister])
	assert.True(t, m.Display.NeedsRedraw())
}

func TestClearScreen(t *testing.T) {
	m := newTestMachine(t, Options{})
	m.Display.xor(3, 4, 1)

	assert.NoError(t, execute(t, m, 0x00E0))
	assert.Equal(t, byte(0), m.Display.Pixel(3, 4))
	assert.True(t, m.Display.NeedsRedraw())

	m.Display.ClearRedraw()
	assert.False(t, m.Display.NeedsRedraw())
}

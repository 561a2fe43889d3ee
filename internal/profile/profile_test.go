package profile

import (
	"errors"
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name       string
		speed      int
		debug      bool
		background color.RGBA
	}{
		{"normal", 10, false, color.RGBA{R: 0x99, G: 0xBD, B: 0x2A, A: 0xFF}},
		{"fast", 100000, false, color.RGBA{R: 0xFA, G: 0x86, B: 0xC4, A: 0xFF}},
		{"debug", 10, true, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Get(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, 10, p.Zoom)
			assert.Equal(t, tt.speed, p.Speed)
			assert.Equal(t, tt.debug, p.Debug)
			assert.False(t, p.ShiftUsesVY)
			assert.Equal(t, tt.background, p.Background)
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("turbo")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProfile))
	assert.ErrorContains(t, err, "turbo")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"debug", "fast", "normal"}, Names())
}

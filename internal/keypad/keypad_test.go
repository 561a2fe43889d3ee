package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		r    rune
		code byte
		ok   bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'a', 0x7, true},
		{'F', 0xE, true},
		{'z', 0xA, true},
		{'x', 0x0, true},
		{'c', 0xB, true},
		{'v', 0xF, true},
		{'5', 0, false},
		{'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			code, ok := Code(tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRune_RoundTrip(t *testing.T) {
	for code := range byte(16) {
		r := Rune(code)
		got, ok := Code(r)
		assert.True(t, ok)
		assert.Equal(t, code, got)
	}
}

// Package keypad maps host keyboard keys to the hexadecimal CHIP-8 keypad.
//
// The layout resembles the COSMAC VIP keypad on the left side of a QWERTY
// keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keypad

import "unicode"

// Layout lists the host characters row by row, Codes lists the key codes at
// the same positions.
var (
	Layout = [16]rune{
		'1', '2', '3', '4',
		'q', 'w', 'e', 'r',
		'a', 's', 'd', 'f',
		'z', 'x', 'c', 'v',
	}
	Codes = [16]byte{
		0x1, 0x2, 0x3, 0xC,
		0x4, 0x5, 0x6, 0xD,
		0x7, 0x8, 0x9, 0xE,
		0xA, 0x0, 0xB, 0xF,
	}
)

// Code returns the key code of a host character. Letters are matched case
// insensitive.
func Code(r rune) (byte, bool) {
	r = unicode.ToLower(r)
	for i, key := range Layout {
		if key == r {
			return Codes[i], true
		}
	}
	return 0, false
}

// Rune returns the host character of a key code.
func Rune(code byte) rune {
	for i, c := range Codes {
		if c == code&0x0F {
			return Layout[i]
		}
	}
	return 0
}

package machine

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 hexadecimal keys, indexed by key
// code. It is written by the input collaborator between steps.
type Keypad [KeyCount]bool

// Set sets the pressed state of a key. Only the low nibble of code is used.
func (k *Keypad) Set(code byte, pressed bool) {
	k[code&0x0F] = pressed
}

// Press marks a key as pressed.
func (k *Keypad) Press(code byte) {
	k.Set(code, true)
}

// Release marks a key as released.
func (k *Keypad) Release(code byte) {
	k.Set(code, false)
}

// IsPressed returns whether the key is pressed. Only the low nibble of code is
// used.
func (k *Keypad) IsPressed(code byte) bool {
	return k[code&0x0F]
}

// ReleaseAll marks all keys as released.
func (k *Keypad) ReleaseAll() {
	*k = Keypad{}
}

// FirstPressed returns the lowest key code that is pressed.
func (k *Keypad) FirstPressed() (byte, bool) {
	for code, pressed := range k {
		if pressed {
			return byte(code), true
		}
	}
	return 0, false
}

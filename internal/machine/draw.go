package machine

// spriteWidth is the width of every sprite row in pixels.
const spriteWidth = 8

// drawSprite XORs a sprite of rows bytes read from memory at I onto the
// display at the given position. VF is set to 1 if any set pixel was hit by a
// set sprite bit and 0 otherwise. Pixels outside of the display are dropped,
// the sprite does not wrap around.
func (m *Machine) drawSprite(x, y, rows int) error {
	if err := m.checkRange(m.I, rows); err != nil {
		return err
	}

	m.V[FlagRegister] = 0

	for row := range rows {
		data := m.Memory[int(m.I)+row]
		for col := range spriteWidth {
			bit := (data >> (spriteWidth - 1 - col)) & 0x01
			if m.Display.xor(x+col, y+row, bit) {
				m.V[FlagRegister] = 1
			}
		}
	}

	m.Display.redraw = true
	return nil
}

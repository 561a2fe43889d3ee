// Package dump writes a textual hex rendering of the machine state for
// debugging: framebuffer, memory, registers and stack.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/machine"
)

const bytesPerLine = 16

// Write writes all sections of the dump.
func Write(w io.Writer, m *machine.Machine) error {
	var buf strings.Builder
	Video(&buf, m)
	Memory(&buf, m)
	Registers(&buf, m)
	Stack(&buf, m)
	Next(&buf, m)

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

// Video writes the framebuffer as one row of 0 and 1 digits per display line.
func Video(buf *strings.Builder, m *machine.Machine) {
	pixels := m.Display.Pixels()
	for y := range machine.DisplayHeight {
		for x := range machine.DisplayWidth {
			buf.WriteByte('0' + pixels[y*machine.DisplayWidth+x])
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("\n\n")
}

// Memory writes a hexdump of the whole memory with 16 bytes per line.
func Memory(buf *strings.Builder, m *machine.Machine) {
	for i := 0; i < len(m.Memory); i += bytesPerLine {
		fmt.Fprintf(buf, "%04X : ", i)
		writeHexGroups(buf, m.Memory[i:i+bytesPerLine])
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "%d bytes\n\n\n", len(m.Memory))
}

// Registers writes the index register, PC, redraw flag, key states and V
// registers.
func Registers(buf *strings.Builder, m *machine.Machine) {
	fmt.Fprintf(buf, "   I: %04X\n", m.I)
	fmt.Fprintf(buf, "  PC: %04X\n", m.PC)

	var redraw byte
	if m.Display.NeedsRedraw() {
		redraw = 1
	}
	fmt.Fprintf(buf, "DRAW: %02X\n", redraw)

	var keys [machine.KeyCount]byte
	for code, pressed := range m.Keys {
		if pressed {
			keys[code] = 1
		}
	}
	buf.WriteString(" KEY: ")
	writeHexGroups(buf, keys[:])
	buf.WriteByte('\n')

	buf.WriteString("  Vn: ")
	writeHexGroups(buf, m.V[:])
	buf.WriteString("\n\n")
}

// Stack writes the call stack with the most recent return address first.
func Stack(buf *strings.Builder, m *machine.Machine) {
	buf.WriteString("STACK: ")
	for i := len(m.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(buf, "%04X ", m.Stack[i])
	}
	buf.WriteString("\n\n")
}

// Next writes the disassembly of the instruction at PC.
func Next(buf *strings.Builder, m *machine.Machine) {
	word, err := m.Fetch()
	if err != nil {
		fmt.Fprintf(buf, "NEXT: %04X outside of memory\n", m.PC)
		return
	}
	code, _ := disasm.Format(word)
	fmt.Fprintf(buf, "NEXT: %04X %04X %s\n", m.PC, word, code)
}

// writeHexGroups writes 16 bytes as two groups of 8 separated by an extra
// space.
func writeHexGroups(buf *strings.Builder, data []byte) {
	for i, b := range data {
		if i == 8 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%02X ", b)
	}
}

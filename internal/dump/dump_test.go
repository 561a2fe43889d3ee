package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestVideo(t *testing.T) {
	m := machine.New(machine.Options{})
	m.I = 0 // glyph 0 starts with 0xF0
	assert.NoError(t, m.Execute(decode(0xD001)))

	var buf strings.Builder
	Video(&buf, m)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, strings.Repeat("1", 4)+strings.Repeat("0", 60), lines[0])
	assert.Equal(t, strings.Repeat("0", 64), lines[1])
	assert.Equal(t, strings.Repeat("0", 64), lines[31])
	assert.True(t, strings.HasSuffix(buf.String(), "\n\n\n"))
}

func TestMemory(t *testing.T) {
	m := machine.New(machine.Options{})
	assert.NoError(t, m.Load([]byte{0x60, 0x05, 0x12, 0x00}))

	var buf strings.Builder
	Memory(&buf, m)
	output := buf.String()

	assert.Contains(t, output, "0000 : F0 90 90 90 F0 20 60 20  20 70 F0 10 F0 80 F0 F0 \n")
	assert.Contains(t, output, "0200 : 60 05 12 00 00 00 00 00  00 00 00 00 00 00 00 00 \n")
	assert.Contains(t, output, "0FF0 : ")
	assert.True(t, strings.HasSuffix(output, "4096 bytes\n\n\n"))
	assert.Len(t, strings.Split(output, "\n"), 256+4)
}

func TestRegisters(t *testing.T) {
	m := machine.New(machine.Options{})
	m.I = 0x2A4
	m.V[0] = 0x05
	m.V[0xF] = 0x01
	m.Keys.Press(0x9)

	var buf strings.Builder
	Registers(&buf, m)

	expected := "   I: 02A4\n" +
		"  PC: 0200\n" +
		"DRAW: 00\n" +
		" KEY: 00 00 00 00 00 00 00 00  00 01 00 00 00 00 00 00 \n" +
		"  Vn: 05 00 00 00 00 00 00 00  00 00 00 00 00 00 00 01 \n\n"
	assert.Equal(t, expected, buf.String())
}

func TestStack(t *testing.T) {
	m := machine.New(machine.Options{})
	m.Stack = append(m.Stack, 0x200, 0x304)

	var buf strings.Builder
	Stack(&buf, m)
	assert.Equal(t, "STACK: 0304 0200 \n\n", buf.String())
}

func TestNext(t *testing.T) {
	m := machine.New(machine.Options{})
	assert.NoError(t, m.Load([]byte{0x60, 0x05}))

	var buf strings.Builder
	Next(&buf, m)
	assert.Equal(t, "NEXT: 0200 6005 ld V0, $05\n", buf.String())

	buf.Reset()
	m.PC = machine.MemorySize - 1
	Next(&buf, m)
	assert.Equal(t, "NEXT: 0FFF outside of memory\n", buf.String())
}

func TestWrite(t *testing.T) {
	m := machine.New(machine.Options{})

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, m))

	output := buf.String()
	assert.Contains(t, output, "4096 bytes")
	assert.Contains(t, output, "  PC: 0200\n")
	assert.Contains(t, output, "STACK: \n")
	assert.Contains(t, output, "NEXT: 0200 0000")
}

func decode(word uint16) instruction.Instruction {
	return instruction.Decode(word)
}

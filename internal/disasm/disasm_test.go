package disasm

import (
	"bytes"
	"context"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func disassemble(t *testing.T, program []byte, options Options) *Listing {
	t.Helper()
	dis, err := New(log.NewTestLogger(t), program, options)
	assert.NoError(t, err)
	listing, err := dis.Process(context.Background())
	assert.NoError(t, err)
	return listing
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"cls", 0x00E0, "cls"},
		{"ret", 0x00EE, "ret"},
		{"jp", 0x1234, "jp $234"},
		{"jp V0", 0xB234, "jp V0, $234"},
		{"call", 0x2234, "call $234"},
		{"se byte", 0x3234, "se V2, $34"},
		{"se register", 0x5230, "se V2, V3"},
		{"sne byte", 0x4234, "sne V2, $34"},
		{"sne register", 0x9230, "sne V2, V3"},
		{"ld byte", 0x6234, "ld V2, $34"},
		{"ld register", 0x8230, "ld V2, V3"},
		{"ld I", 0xA234, "ld I, $234"},
		{"add byte", 0x7234, "add V2, $34"},
		{"add register", 0x8234, "add V2, V3"},
		{"sub", 0x8235, "sub V2, V3"},
		{"subn", 0x8237, "subn V2, V3"},
		{"shr", 0x8236, "shr V2"},
		{"shl", 0x823E, "shl V2"},
		{"rnd", 0xC234, "rnd V2, $34"},
		{"drw", 0xD235, "drw V2, V3, $5"},
		{"skp", 0xE29E, "skp V2"},
		{"sknp", 0xE2A1, "sknp V2"},
		{"ld delay", 0xF207, "ld V2, DT"},
		{"ld key", 0xF20A, "ld V2, K"},
		{"ld bcd", 0xF233, "ld B, V2"},
		{"ld store", 0xF255, "ld [I], V2"},
		{"ld load", 0xF265, "ld V2, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := Format(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestFormat_MatchesDecode(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x5121, "se V1, V2"},
		{0x512F, "se V1, V2"},
		{0x9123, "sne V1, V2"},
		{0x9AB7, "sne VA, VB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			code, ok := Format(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestFormat_Unknown(t *testing.T) {
	code, ok := Format(0xE1FF)
	assert.False(t, ok)
	assert.Equal(t, ".word $E1FF", code)
}

func TestNew_ProgramTooLarge(t *testing.T) {
	_, err := New(log.NewTestLogger(t), make([]byte, 0xE01), NewOptions())
	assert.Error(t, err)
}

func TestDisasm_Process(t *testing.T) {
	program := []byte{
		0x00, 0xE0, // 0x200 cls
		0xA2, 0x0C, // 0x202 ld I, 0x20C
		0x22, 0x08, // 0x204 call 0x208
		0x12, 0x06, // 0x206 jp 0x206
		0xD0, 0x15, // 0x208 drw V0, V1, 5
		0x00, 0xEE, // 0x20A ret
		0xF0, 0x90, // 0x20C sprite data
		0x00, 0x00, // trailing zeros
	}

	listing := disassemble(t, program, Options{})

	expected := []Line{
		{Address: 0x200, Label: "Start", Code: "cls", Data: []byte{0x00, 0xE0}},
		{Address: 0x202, Code: "ld I, _data_020c", Data: []byte{0xA2, 0x0C}},
		{Address: 0x204, Code: "call _func_0208", Data: []byte{0x22, 0x08}},
		{Address: 0x206, Label: "_label_0206", Code: "jp _label_0206", Data: []byte{0x12, 0x06}},
		{Address: 0x208, Label: "_func_0208", Code: "drw V0, V1, $5", Data: []byte{0xD0, 0x15}},
		{Address: 0x20A, Code: "ret", Data: []byte{0x00, 0xEE}},
		{Address: 0x20C, Label: "_data_020c", Data: []byte{0xF0, 0x90}},
	}
	assert.Equal(t, expected, listing.Lines)
}

func TestDisasm_UnreachableBytesAreData(t *testing.T) {
	program := []byte{
		0x12, 0x04, // 0x200 jp 0x204
		0xFF, 0xFF, // 0x202 never executed
		0x60, 0x01, // 0x204 ld V0, 1
		0x12, 0x04, // 0x206 jp 0x204
	}

	listing := disassemble(t, program, Options{})

	assert.Len(t, listing.Lines, 4)
	assert.False(t, listing.Lines[1].IsCode())
	assert.Equal(t, []byte{0xFF, 0xFF}, listing.Lines[1].Data)
	assert.Equal(t, "_label_0204", listing.Lines[2].Label)
	assert.Equal(t, "jp _label_0204", listing.Lines[3].Code)
}

func TestDisasm_SkipFollowsBothPaths(t *testing.T) {
	program := []byte{
		0x30, 0x01, // 0x200 se V0, 1
		0x12, 0x06, // 0x202 jp 0x206
		0x60, 0x02, // 0x204 ld V0, 2
		0x12, 0x06, // 0x206 jp 0x206
	}

	listing := disassemble(t, program, Options{})

	assert.Len(t, listing.Lines, 4)
	for _, line := range listing.Lines {
		assert.True(t, line.IsCode())
	}
}

func TestDisasm_SkipRegisterIgnoresLowNibble(t *testing.T) {
	program := []byte{
		0x51, 0x27, // 0x200 se V1, V2
		0x12, 0x06, // 0x202 jp 0x206
		0x60, 0x02, // 0x204 ld V0, 2
		0x12, 0x06, // 0x206 jp 0x206
	}

	listing := disassemble(t, program, Options{})

	assert.Len(t, listing.Lines, 4)
	assert.Equal(t, "se V1, V2", listing.Lines[0].Code)
	assert.Equal(t, "ld V0, $02", listing.Lines[2].Code)
}

func TestDisasm_BranchIntoInstruction(t *testing.T) {
	program := []byte{
		0x30, 0x00, // 0x200 se V0, 0
		0x12, 0x05, // 0x202 jp 0x205
		0x60, 0x12, // 0x204 ld V0, $12, 0x205 is a branch target
		0x12, 0x06, // 0x206 jp 0x206
	}

	listing := disassemble(t, program, Options{})

	assert.Len(t, listing.Lines, 5)
	assert.Equal(t, "jp _label_0205", listing.Lines[1].Code)

	assert.False(t, listing.Lines[2].IsCode())
	assert.Equal(t, uint16(0x204), listing.Lines[2].Address)
	assert.Equal(t, []byte{0x60}, listing.Lines[2].Data)
	assert.Contains(t, listing.Lines[2].Comment, "branch into instruction detected: ld V0, $12")

	assert.False(t, listing.Lines[3].IsCode())
	assert.Equal(t, uint16(0x205), listing.Lines[3].Address)
	assert.Equal(t, "_label_0205", listing.Lines[3].Label)
	assert.Equal(t, []byte{0x12}, listing.Lines[3].Data)

	assert.Equal(t, "jp _label_0206", listing.Lines[4].Code)
}

func TestDisasm_ZeroBytes(t *testing.T) {
	program := []byte{0x12, 0x00, 0x00, 0x00, 0x00}

	listing := disassemble(t, program, Options{})
	assert.Len(t, listing.Lines, 1)

	listing = disassemble(t, program, Options{ZeroBytes: true})
	assert.Len(t, listing.Lines, 2)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, listing.Lines[1].Data)
}

func TestWrite(t *testing.T) {
	program := []byte{
		0x00, 0xE0, // cls
		0x12, 0x02, // jp self
		0xF0, 0x90,
	}
	listing := disassemble(t, program, NewOptions())

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, listing))

	output := buf.String()
	assert.Contains(t, output, ".org $200\n")
	assert.Contains(t, output, "Start:\n")
	assert.Contains(t, output, "    cls                          ; $0200 00 E0\n")
	assert.Contains(t, output, "_label_0202:\n")
	assert.Contains(t, output, "    .byte $F0, $90               ; $0204\n")
}

// Package instruction decodes CHIP-8 instruction words into tagged operations.
package instruction

import "fmt"

// Op identifies the operation encoded by an instruction word.
type Op uint8

// Operations of the CHIP-8 instruction set. Unknown marks a word that does not
// match any pattern and is executed as a no-op.
const (
	Unknown           Op = iota
	Sys                  // 0NNN
	ClearScreen          // 00E0
	Return               // 00EE
	Jump                 // 1NNN
	Call                 // 2NNN
	SkipEqualImm         // 3XNN
	SkipNotEqualImm      // 4XNN
	SkipEqualReg         // 5XY0
	LoadImm              // 6XNN
	AddImm               // 7XNN
	LoadReg              // 8XY0
	Or                   // 8XY1
	And                  // 8XY2
	Xor                  // 8XY3
	AddReg               // 8XY4
	Sub                  // 8XY5
	ShiftRight           // 8XY6
	SubReverse           // 8XY7
	ShiftLeft            // 8XYE
	SkipNotEqualReg      // 9XY0
	LoadIndex            // ANNN
	JumpOffset           // BNNN
	Random               // CXNN
	Draw                 // DXYN
	SkipKeyPressed       // EX9E
	SkipKeyNotPressed    // EXA1
	LoadDelay            // FX07
	WaitKey              // FX0A
	SetDelay             // FX15
	SetSound             // FX18
	AddIndex             // FX1E
	LoadFont             // FX29
	StoreBCD             // FX33
	StoreRegisters       // FX55
	LoadRegisters        // FX65
)

var opNames = [...]string{
	Unknown:           "unknown",
	Sys:               "sys",
	ClearScreen:       "cls",
	Return:            "ret",
	Jump:              "jp",
	Call:              "call",
	SkipEqualImm:      "se imm",
	SkipNotEqualImm:   "sne imm",
	SkipEqualReg:      "se reg",
	LoadImm:           "ld imm",
	AddImm:            "add imm",
	LoadReg:           "ld reg",
	Or:                "or",
	And:               "and",
	Xor:               "xor",
	AddReg:            "add reg",
	Sub:               "sub",
	ShiftRight:        "shr",
	SubReverse:        "subn",
	ShiftLeft:         "shl",
	SkipNotEqualReg:   "sne reg",
	LoadIndex:         "ld i",
	JumpOffset:        "jp v0",
	Random:            "rnd",
	Draw:              "drw",
	SkipKeyPressed:    "skp",
	SkipKeyNotPressed: "sknp",
	LoadDelay:         "ld vx, dt",
	WaitKey:           "ld vx, k",
	SetDelay:          "ld dt, vx",
	SetSound:          "ld st, vx",
	AddIndex:          "add i, vx",
	LoadFont:          "ld f, vx",
	StoreBCD:          "ld b, vx",
	StoreRegisters:    "ld [i], vx",
	LoadRegisters:     "ld vx, [i]",
}

// String returns a short human readable name of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op   Op
	Word uint16
}

// X returns the second nibble, a register index.
func (i Instruction) X() uint8 { return uint8(i.Word>>8) & 0x0F }

// Y returns the third nibble, a register index.
func (i Instruction) Y() uint8 { return uint8(i.Word>>4) & 0x0F }

// N returns the lowest nibble.
func (i Instruction) N() uint8 { return uint8(i.Word) & 0x0F }

// NN returns the lowest byte.
func (i Instruction) NN() uint8 { return uint8(i.Word) }

// NNN returns the lowest 12 bits, an address.
func (i Instruction) NNN() uint16 { return i.Word & 0x0FFF }

// String returns the operation name and the raw word.
func (i Instruction) String() string {
	return fmt.Sprintf("%s ($%04X)", i.Op, i.Word)
}

// Decode maps an instruction word to its operation. The top nibble selects
// the family, families 0x0, 0x8, 0xE and 0xF are further matched on their
// low bits.
func Decode(word uint16) Instruction {
	return Instruction{Op: decodeOp(word), Word: word}
}

func decodeOp(word uint16) Op {
	switch word & 0xF000 {
	case 0x0000:
		switch word {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}
		return Sys
	case 0x1000:
		return Jump
	case 0x2000:
		return Call
	case 0x3000:
		return SkipEqualImm
	case 0x4000:
		return SkipNotEqualImm
	case 0x5000:
		return SkipEqualReg
	case 0x6000:
		return LoadImm
	case 0x7000:
		return AddImm
	case 0x8000:
		return decodeArithmetic(word)
	case 0x9000:
		return SkipNotEqualReg
	case 0xA000:
		return LoadIndex
	case 0xB000:
		return JumpOffset
	case 0xC000:
		return Random
	case 0xD000:
		return Draw
	case 0xE000:
		switch word & 0x00FF {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyNotPressed
		}
	case 0xF000:
		return decodeMisc(word)
	}
	return Unknown
}

func decodeArithmetic(word uint16) Op {
	switch word & 0x000F {
	case 0x0:
		return LoadReg
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddReg
	case 0x5:
		return Sub
	case 0x6:
		return ShiftRight
	case 0x7:
		return SubReverse
	case 0xE:
		return ShiftLeft
	}
	return Unknown
}

func decodeMisc(word uint16) Op {
	switch word & 0x00FF {
	case 0x07:
		return LoadDelay
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelay
	case 0x18:
		return SetSound
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadFont
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	}
	return Unknown
}

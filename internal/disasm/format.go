package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// Format returns the assembly code of an instruction word and whether the
// word is a known instruction.
func Format(word uint16) (string, bool) {
	opcode, ok := LookupOpcode(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word), false
	}

	name := opcode.Instruction.Name
	if params := formatParams(instruction.Decode(word), ""); params != "" {
		return name + " " + params, true
	}
	return name, true
}

// formatParams returns the parameters of an instruction. If label is set it
// replaces the address parameter.
func formatParams(ins instruction.Instruction, label string) string {
	x, y := ins.X(), ins.Y()
	address := fmt.Sprintf("$%03X", ins.NNN())
	if label != "" {
		address = label
	}

	switch ins.Op {
	case instruction.Sys, instruction.Jump, instruction.Call:
		return address
	case instruction.JumpOffset:
		return "V0, " + address
	case instruction.LoadIndex:
		return "I, " + address

	case instruction.SkipEqualImm, instruction.SkipNotEqualImm,
		instruction.LoadImm, instruction.AddImm, instruction.Random:
		return fmt.Sprintf("V%X, $%02X", x, ins.NN())

	case instruction.SkipEqualReg, instruction.SkipNotEqualReg, instruction.LoadReg,
		instruction.Or, instruction.And, instruction.Xor, instruction.AddReg,
		instruction.Sub, instruction.SubReverse:
		return fmt.Sprintf("V%X, V%X", x, y)

	case instruction.ShiftRight, instruction.ShiftLeft,
		instruction.SkipKeyPressed, instruction.SkipKeyNotPressed:
		return fmt.Sprintf("V%X", x)

	case instruction.Draw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, ins.N())

	case instruction.LoadDelay:
		return fmt.Sprintf("V%X, DT", x)
	case instruction.WaitKey:
		return fmt.Sprintf("V%X, K", x)
	case instruction.SetDelay:
		return fmt.Sprintf("DT, V%X", x)
	case instruction.SetSound:
		return fmt.Sprintf("ST, V%X", x)
	case instruction.AddIndex:
		return fmt.Sprintf("I, V%X", x)
	case instruction.LoadFont:
		return fmt.Sprintf("F, V%X", x)
	case instruction.StoreBCD:
		return fmt.Sprintf("B, V%X", x)
	case instruction.StoreRegisters:
		return fmt.Sprintf("[I], V%X", x)
	case instruction.LoadRegisters:
		return fmt.Sprintf("V%X, [I]", x)
	}

	return ""
}

// Package disasm implements a CHIP-8 disassembler that follows the execution
// flow of a program to separate code from data.
package disasm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	// ProgramStart is the address a program is loaded to and starts at.
	ProgramStart = 0x200
	// MaxAddress is the highest address of the CHIP-8 memory.
	MaxAddress = 0xFFF

	opcodeSize = 2
)

// Options controls the disassembly output.
type Options struct {
	HexComments    bool // add the instruction bytes as comment
	OffsetComments bool // add the address as comment
	ZeroBytes      bool // output trailing zero bytes
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// offsetType describes what an address of the program contains.
type offsetType uint8

const (
	unknownOffset offsetType = iota
	codeOffset
	codeOperandOffset // second byte of an instruction
	dataOffset
)

// offset holds the disassembly state of a single program byte.
type offset struct {
	typ     offsetType
	label   string
	comment string
	opcode  chip8.Opcode
	word    uint16

	callDestination bool
	dataReference   bool
	branchFrom      []uint16
}

// Disasm implements a disassembler for a single program.
type Disasm struct {
	logger  *log.Logger
	options Options

	data    []byte
	offsets []offset

	branchDestinations set.Set[uint16]

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the program that is loaded at
// ProgramStart.
func New(logger *log.Logger, program []byte, options Options) (*Disasm, error) {
	if len(program) > MaxAddress+1-ProgramStart {
		return nil, fmt.Errorf("program size %d exceeds the maximum of %d bytes",
			len(program), MaxAddress+1-ProgramStart)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		data:                program,
		offsets:             make([]offset, len(program)),
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	return dis, nil
}

// Process follows the execution flow of the program and returns the
// resulting listing.
func (dis *Disasm) Process(ctx context.Context) (*Listing, error) {
	if len(dis.data) > 0 {
		dis.offsets[0].label = "Start"
		dis.addAddressToParse(ProgramStart, 0, false)
	}

	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}

	dis.processJumpDestinations()
	return dis.convertToListing(), nil
}

// followExecutionFlow parses all addresses that are reachable from the entry
// point and marks them as code.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]

		index := int(address - ProgramStart)
		if index < 0 || index+1 >= len(dis.data) {
			continue
		}
		if dis.offsets[index].typ == codeOffset {
			continue
		}
		if dis.offsets[index].typ == codeOperandOffset || dis.offsets[index+1].typ == codeOffset {
			dis.logger.Debug("Skipping misaligned instruction", log.Hex("address", address))
			continue
		}

		word := uint16(dis.data[index])<<8 | uint16(dis.data[index+1])
		opcode, ok := LookupOpcode(word)
		if !ok {
			// consider an unknown instruction as start of data
			dis.offsets[index].typ = dataOffset
			continue
		}

		offsetInfo := &dis.offsets[index]
		offsetInfo.typ = codeOffset
		offsetInfo.opcode = opcode
		offsetInfo.word = word
		dis.offsets[index+1].typ = codeOperandOffset

		dis.handleControlFlow(address, opcode.Instruction, instruction.Decode(word))
	}
	return nil
}

// handleControlFlow queues the addresses that can execute after the
// instruction at the given address.
func (dis *Disasm) handleControlFlow(address uint16, ins *chip8.Instruction, decoded instruction.Instruction) {
	next := address + opcodeSize

	switch {
	case ins == chip8.JpInst:
		// jp V0, addr has a runtime dependent destination
		if decoded.Op == instruction.Jump {
			dis.addAddressToParse(decoded.NNN(), address, true)
		}

	case ins == chip8.CallInst:
		dis.addAddressToParse(decoded.NNN(), address, true)
		dis.offsetInfo(decoded.NNN()).setCallDestination()
		dis.addAddressToParse(next, address, false)

	case ins == chip8.RetInst:

	case chip8.SkipInstructions.Contains(ins.Name):
		dis.addAddressToParse(next, address, false)
		dis.addAddressToParse(next+opcodeSize, address, false)

	case ins == chip8.LdInst && decoded.Op == instruction.LoadIndex:
		if target := dis.offsetInfo(decoded.NNN()); target != nil {
			target.dataReference = true
			dis.branchDestinations.Add(decoded.NNN())
		}
		dis.addAddressToParse(next, address, false)

	default:
		dis.addAddressToParse(next, address, false)
	}
}

// addAddressToParse adds an address to the list to be processed if the
// address has not been processed yet.
func (dis *Disasm) addAddressToParse(address, from uint16, isABranchDestination bool) {
	if address < ProgramStart || int(address-ProgramStart) >= len(dis.data) {
		return
	}

	if isABranchDestination {
		offsetInfo := dis.offsetInfo(address)
		offsetInfo.branchFrom = append(offsetInfo.branchFrom, from)
		dis.branchDestinations.Add(address)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// offsetInfo returns the offset of an address or nil if the address is
// outside of the program.
func (dis *Disasm) offsetInfo(address uint16) *offset {
	if address < ProgramStart || int(address-ProgramStart) >= len(dis.data) {
		return nil
	}
	return &dis.offsets[address-ProgramStart]
}

func (o *offset) setCallDestination() {
	if o != nil {
		o.callDestination = true
	}
}

// LookupOpcode returns the opcode definition that matches the instruction
// word.
func LookupOpcode(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	pattern := word
	if firstNibble == 0x5 || firstNibble == 0x9 {
		// the interpreter ignores the low nibble of 5XYN and 9XYN
		pattern &^= 0x000F
	}
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&pattern == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

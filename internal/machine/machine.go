package machine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096
	// ProgramStart is the address where programs are loaded and execution starts.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16
	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16
	// FlagRegister is the index of VF, the carry, borrow and collision flag.
	FlagRegister = 0xF
)

// Speaker is the audio collaborator that is triggered whenever the timer gate
// decrements a nonzero sound timer.
type Speaker interface {
	Beep()
}

// Options configures a Machine at construction time.
type Options struct {
	// ShiftUsesVY selects the legacy shift semantics of 8XY6 and 8XYE that
	// shift VY into VX instead of shifting VX in place.
	ShiftUsesVY bool

	// Rand returns a random byte for CXNN, defaults to math/rand.
	Rand func() byte
	// Clock returns the current time for the 60 Hz timer gate, defaults to
	// time.Now.
	Clock func() time.Time
	// Speaker is triggered by the sound timer, may be nil.
	Speaker Speaker
	// OnUnknownOpcode is called for every instruction word that does not
	// decode to an operation, may be nil.
	OnUnknownOpcode func(address, word uint16)
}

// Machine is the complete CHIP-8 machine state. It is not safe for concurrent
// use, a single driver owns it for its whole lifetime.
type Machine struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16
	Stack  []uint16

	DelayTimer byte
	SoundTimer byte

	Keys    Keypad
	Display Framebuffer

	shiftUsesVY bool
	rand        func() byte
	clock       func() time.Time
	speaker     Speaker
	onUnknown   func(address, word uint16)

	lastTimerTick time.Time
}

// New returns a new machine in its power-on state.
func New(opts Options) *Machine {
	m := &Machine{
		shiftUsesVY: opts.ShiftUsesVY,
		rand:        opts.Rand,
		clock:       opts.Clock,
		speaker:     opts.Speaker,
		onUnknown:   opts.OnUnknownOpcode,
	}
	if m.rand == nil {
		m.rand = randomByte
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	m.Reset()
	return m
}

// Reset returns the machine to its power-on state: zeroed memory with the
// font table installed, cleared registers, timers, keys and display and PC
// pointing to ProgramStart. Construction options are kept.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]byte{}
	copy(m.Memory[FontAddress:], font[:])
	m.V = [RegisterCount]byte{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = make([]uint16, 0, StackDepth)
	m.DelayTimer = 0
	m.SoundTimer = 0
	m.Keys.ReleaseAll()
	m.Display = Framebuffer{}
	m.lastTimerTick = time.Time{}
}

// ShiftUsesVY returns whether the legacy shift semantics are enabled.
func (m *Machine) ShiftUsesVY() bool {
	return m.shiftUsesVY
}

// Load copies a program into memory starting at ProgramStart.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes",
			ErrRomTooLarge, len(program), MaxProgramSize)
	}
	copy(m.Memory[ProgramStart:], program)
	return nil
}

// Fetch returns the big-endian instruction word at PC.
func (m *Machine) Fetch() (uint16, error) {
	if int(m.PC)+1 >= MemorySize {
		return 0, fmt.Errorf("fetching instruction at $%04X: %w", m.PC, ErrOutOfBounds)
	}
	return uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1]), nil
}

// checkRange verifies that count bytes starting at address are inside memory.
func (m *Machine) checkRange(address uint16, count int) error {
	if int(address)+count > MemorySize {
		return fmt.Errorf("accessing %d bytes at $%04X: %w", count, address, ErrAddressOutOfRange)
	}
	return nil
}

func randomByte() byte {
	return byte(rand.UintN(256))
}

package machine

import "errors"

var (
	// ErrRomTooLarge is returned by Load when a program does not fit into the
	// memory above ProgramStart.
	ErrRomTooLarge = errors.New("rom too large")
	// ErrOutOfBounds is returned when an instruction fetch reaches past the end
	// of memory. Drivers treat it as the normal end of a program.
	ErrOutOfBounds = errors.New("program counter out of bounds")
	// ErrAddressOutOfRange is returned when a data access through I reaches
	// past the end of memory.
	ErrAddressOutOfRange = errors.New("memory address out of range")
	// ErrStackOverflow is returned by a call when the call stack is full.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return when the call stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
)

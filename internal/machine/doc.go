// Package machine implements the CHIP-8 virtual machine state and its
// fetch-decode-execute cycle.
//
// # Memory Layout
//
// The machine has 4KB of byte addressable memory:
//
//	0x000-0x04F: built-in hexadecimal font, 16 glyphs of 5 bytes each
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space, filled by Load
//
// The 64x32 monochrome display, the call stack, the registers and the timers
// live outside of the addressable memory.
//
// # Execution
//
// Step fetches the big-endian instruction word at PC, decodes it with the
// instruction package and executes it. After every instruction PC advances by
// 2, which is why jump and call targets are stored pre-biased by -2. Unknown
// instruction words are executed as no-ops and reported through the optional
// Options.OnUnknownOpcode hook.
//
// The delay and sound timers are decremented by a wall clock gate at most 60
// times per second, independent of the instruction rate. Each decrement of a
// nonzero sound timer triggers the Speaker.
//
// # Collaborators
//
// The machine has no knowledge of rendering, input or audio backends. A driver
// calls Step, writes host key state into Keys, and reads Display whenever
// Display.NeedsRedraw reports a changed frame.
package machine

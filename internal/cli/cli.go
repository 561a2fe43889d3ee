// Package cli handles command line interface logic
package cli

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/profile"
)

// ParseFlags parses the emulator command line, args[0] is the program name.
// Missing or surplus positional arguments fall back to the default ROM and
// profile, this is reported by the DefaultsUsed field.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: emulatorUsage(), msg: err.Error()}
	}

	positional := flags.Args()
	if err := validateArgs(flags, emulatorUsage(), positional); err != nil {
		return opts, err
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	if err := validateFrontend(opts.Frontend); err != nil {
		return opts, &UsageError{flags: flags, usage: emulatorUsage(), msg: err.Error()}
	}

	switch len(positional) {
	case 1:
		opts.ROM = positional[0]
		opts.Profile = options.DefaultProfile
	case 2:
		opts.ROM = positional[0]
		opts.Profile = positional[1]
	default:
		opts.ROM = options.DefaultROM
		opts.Profile = options.DefaultProfile
		opts.DefaultsUsed = true
	}

	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line, args[0] is the
// program name.
func ParseDisasmFlags(args []string) (options.Disassembler, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Disassembler
	var noHexComments, noOffsets bool
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.ch8")
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(args[1:])
	positional := flags.Args()
	if err != nil || (len(positional) == 0 && opts.Batch == "") {
		msg := "no input file given"
		if err != nil {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, usage: disasmUsage, msg: msg}
	}

	if err := validateArgs(flags, disasmUsage, positional); err != nil {
		return opts, err
	}
	if len(positional) > 1 {
		return opts, &UsageError{flags: flags, usage: disasmUsage, msg: "only one input file is supported"}
	}

	if len(positional) > 0 {
		opts.Input = positional[0]
	}
	// apply inverse logic for hex comments and offsets
	opts.HexComments = !noHexComments
	opts.OffsetComments = !noOffsets
	return opts, nil
}

const disasmUsage = "usage: chip8dis [options] <file to disassemble>\n       chip8dis [options] -batch <file mask>"

func emulatorUsage() string {
	return fmt.Sprintf("usage: retrochip8 [options] [<rom> [<profile>]]\n\n"+
		"defaults: rom %s, profile %s\navailable profiles: %s",
		options.DefaultROM, options.DefaultProfile, strings.Join(profile.Names(), ", "))
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// Usage returns the usage text including all flag defaults.
func (e *UsageError) Usage() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", e.usage)
	if e.flags != nil {
		e.flags.SetOutput(&buf)
		e.flags.PrintDefaults()
	}
	return buf.String()
}

// ShowUsage prints the usage text.
func (e *UsageError) ShowUsage() {
	fmt.Println(e.Usage())
}

// validateArgs checks that no flags follow the positional arguments.
func validateArgs(flags *flag.FlagSet, usage string, args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				usage: usage,
				msg:   fmt.Sprintf("Potential argument %s found after positional arguments, please pass all options first", arg),
			}
		}
	}
	return nil
}

func validateFrontend(name string) error {
	validFrontends := []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}
	for _, valid := range validFrontends {
		if name == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		name, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.ROMDir, "roms", options.DefaultROMDir, "directory that ROM names are resolved in")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal/headless)")
	flags.StringVar(&opts.Sound, "sound", "", "sound clip to play as beep, .wav or .mp3 (default: generated tone)")
	flags.StringVar(&opts.DumpFile, "dumpfile", "", "file to write the debug dump to, printed on console if no name given")
	flags.StringVar(&opts.Keys, "keys", "", "headless key script of poll:key+ and poll:key- events, for example 10:w+,40:w-")
	flags.IntVar(&opts.Cycles, "cycles", 0, "stop after this number of cycles, 0 runs until the program ends")
	flags.IntVar(&opts.Zoom, "zoom", 0, "override the zoom factor of the profile")
	flags.IntVar(&opts.Speed, "speed", 0, "override the loop speed throttle of the profile")
	flags.BoolVar(&opts.ShiftVY, "shiftvy", false, "shift VY into VX for 8XY6 and 8XYE")
	flags.BoolVar(&opts.Dump, "dump", false, "write the debug dump at exit")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

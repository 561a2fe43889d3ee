// Package options contains the program options.
package options

// Defaults used when the positional arguments are missing or invalid.
const (
	DefaultROM     = "INVADERS"
	DefaultProfile = "normal"
	DefaultROMDir  = "roms"
)

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Positional contains positional arguments.
type Positional struct {
	ROM     string `arg:"positional" usage:"name of the ROM file to run"`
	Profile string `arg:"positional" usage:"name of the profile to use"`

	DefaultsUsed bool // set if the positional arguments were replaced by the defaults
}

// Parameters contains file path options.
type Parameters struct {
	ROMDir   string `flag:"roms" usage:"directory that ROM names are resolved in" default:"roms"`
	Frontend string `flag:"frontend" usage:"frontend to use: window, terminal, headless" default:"window"`
	Sound    string `flag:"sound" usage:"sound clip to play, .wav or .mp3 (default: generated tone)"`
	DumpFile string `flag:"dumpfile" usage:"write the debug dump to this file (default: stdout)"`
	Keys     string `flag:"keys" usage:"headless key script of poll:key+ and poll:key- events, for example 10:w+,40:w-"`
}

// Flags contains behavior options.
type Flags struct {
	Cycles  int  `flag:"cycles" usage:"stop after this number of cycles, 0 runs until the program ends"`
	Zoom    int  `flag:"zoom" usage:"override the zoom factor of the profile"`
	Speed   int  `flag:"speed" usage:"override the loop speed throttle of the profile"`
	ShiftVY bool `flag:"shiftvy" usage:"shift VY into VX for 8XY6 and 8XYE"`
	Dump    bool `flag:"dump" usage:"write the debug dump at exit"`
	Mute    bool `flag:"mute" usage:"disable sound"`
	Trace   bool `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug   bool `flag:"debug" usage:"enable debug logging"`
	Quiet   bool `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
}

// Disassembler options of the disassembler command.
type Disassembler struct {
	Input  string
	Output string
	Batch  string // glob pattern of files to disassemble

	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool

	Debug bool
	Quiet bool
}

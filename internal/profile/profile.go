// Package profile contains the named configuration profiles of the emulator.
package profile

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
)

// ErrUnknownProfile is returned for a profile name that does not exist.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile parameterizes the frontend and the machine.
type Profile struct {
	Name        string
	Zoom        int  // size of a display pixel in host pixels
	Speed       int  // number of cycles between two 10 ms pauses
	ShiftUsesVY bool // legacy shift semantics of 8XY6 and 8XYE
	Debug       bool // write the debug dump at exit
	Background  color.RGBA
	Foreground  color.RGBA
}

var profiles = map[string]Profile{
	"normal": {
		Name:       "normal",
		Zoom:       10,
		Speed:      10,
		Background: color.RGBA{R: 0x99, G: 0xBD, B: 0x2A, A: 0xFF},
		Foreground: color.RGBA{R: 0x2F, G: 0x63, B: 0x33, A: 0xFF},
	},
	"fast": {
		Name:       "fast",
		Zoom:       10,
		Speed:      100000,
		Background: color.RGBA{R: 0xFA, G: 0x86, B: 0xC4, A: 0xFF},
		Foreground: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	"debug": {
		Name:       "debug",
		Zoom:       10,
		Speed:      10,
		Debug:      true,
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Foreground: color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	},
}

// Get returns the profile with the given name.
func Get(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w '%s', available profiles: %v", ErrUnknownProfile, name, Names())
	}
	return p, nil
}

// Names returns the sorted names of all profiles.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Package audio implements the beeper that is triggered by the sound timer.
// The beep is either a generated square wave tone or a clip loaded from a
// .wav or .mp3 file.
package audio

// Beeper is triggered by the sound timer of the machine.
type Beeper interface {
	Beep()
}

// Mute is a beeper that does not output anything.
type Mute struct{}

// Beep does nothing.
func (Mute) Beep() {}

// Clip is mono PCM audio data.
type Clip struct {
	Samples    []float32 // normalized to [-1, 1]
	SampleRate int
}

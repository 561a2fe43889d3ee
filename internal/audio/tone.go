package audio

import (
	"math"
	"time"
)

// Defaults of the generated beep.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440
	DefaultDuration   = 35 * time.Millisecond
	toneVolume        = 0.25
)

// Tone returns a square wave clip of the given frequency and duration.
func Tone(frequency float64, duration time.Duration, sampleRate int) Clip {
	count := int(math.Round(duration.Seconds() * float64(sampleRate)))
	samples := make([]float32, count)

	period := float64(sampleRate) / frequency
	for i := range samples {
		phase := float64(i) / period
		if phase-float64(int(phase)) < 0.5 {
			samples[i] = toneVolume
		} else {
			samples[i] = -toneVolume
		}
	}

	return Clip{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

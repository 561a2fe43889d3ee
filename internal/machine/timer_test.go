package machine

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

type countingSpeaker struct {
	beeps int
}

func (s *countingSpeaker) Beep() {
	s.beeps++
}

func TestTimers_WallClockGate(t *testing.T) {
	now := time.Unix(1000, 0)
	speaker := &countingSpeaker{}
	m := New(Options{
		Clock:   func() time.Time { return now },
		Speaker: speaker,
	})
	// a program of jumps to self
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))
	m.DelayTimer = 3
	m.SoundTimer = 2

	// the first step always ticks
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(2), m.DelayTimer)
	assert.Equal(t, byte(1), m.SoundTimer)
	assert.Equal(t, 1, speaker.beeps)

	// no time elapsed, any number of steps keeps the timers
	for range 100 {
		assert.NoError(t, m.Step())
	}
	assert.Equal(t, byte(2), m.DelayTimer)

	now = now.Add(TimerPeriod / 2)
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(2), m.DelayTimer)

	now = now.Add(TimerPeriod / 2)
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(1), m.DelayTimer)
	assert.Equal(t, byte(0), m.SoundTimer)
	assert.Equal(t, 2, speaker.beeps)

	now = now.Add(time.Second)
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(0), m.DelayTimer)
	assert.Equal(t, byte(0), m.SoundTimer)
	assert.Equal(t, 2, speaker.beeps)

	// timers floor at zero
	now = now.Add(time.Second)
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(0), m.DelayTimer)
}

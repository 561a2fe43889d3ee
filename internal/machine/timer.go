package machine

import "time"

// TimerPeriod is the minimum wall clock time between two timer decrements.
const TimerPeriod = time.Second / 60

// tickTimers decrements the delay and sound timers if at least TimerPeriod
// elapsed since the last decrement.
func (m *Machine) tickTimers() {
	now := m.clock()
	if now.Sub(m.lastTimerTick) < TimerPeriod {
		return
	}

	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
		if m.speaker != nil {
			m.speaker.Beep()
		}
	}

	m.lastTimerTick = now
}

package chip8

// TimerHz is the rate at which the delay and sound timers count down.
const TimerHz = 60

// TickTimers advances both timers by one 60 Hz tick. It reports whether
// the tone should be audible during this tick: true whenever the sound
// timer was non-zero before the decrement.
func (m *Machine) TickTimers() (soundOn bool) {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
		return true
	}
	return false
}

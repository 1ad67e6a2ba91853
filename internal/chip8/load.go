package chip8

import (
	"fmt"
	"io"
)

// Load resets the machine and installs rom at ProgramStart. Everything
// except the configuration is cleared: registers, stack, timers, display,
// keypad and the key-wait state. A fixed Config.Seed restarts the CXNN
// stream as well. Calling Load again with the same bytes yields an
// identical machine, which is how Reset works.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	font := &DefaultFont
	if m.cfg.Font != nil {
		font = m.cfg.Font
	}

	keep := m.cfg
	rng := m.rng
	if keep.Seed != 0 {
		rng = newRNG(keep.Seed)
	}
	*m = Machine{cfg: keep, rng: rng}

	copy(m.Memory[FontBase:], font[:])
	copy(m.Memory[ProgramStart:], rom)
	m.rom = append([]byte(nil), rom...)
	m.loaded = true
	m.PC = ProgramStart
	m.State = Running
	return nil
}

// LoadFrom reads a whole program from r and loads it.
func (m *Machine) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxROMSize+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrROMUnreadable, err)
	}
	return m.Load(data)
}

// Reset reloads the current program, returning the machine to its
// freshly loaded state.
func (m *Machine) Reset() error {
	if !m.loaded {
		return ErrNotLoaded
	}
	return m.Load(m.rom)
}

package emu

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

var (
	// ErrNoState is returned when restoring from an empty snapshot.
	ErrNoState = errors.New("emu: empty snapshot")
	// ErrBadState is returned for a snapshot no machine could have produced.
	ErrBadState = errors.New("emu: invalid snapshot")
)

// --- Save/Load state ---
// Snapshots live in memory for the current session only.
type machineState struct {
	V          [chip8.NumRegisters]byte
	I, PC      uint16
	Stack      [chip8.StackDepth]uint16
	SP         uint8
	Memory     [chip8.MemorySize]byte
	DelayTimer byte
	SoundTimer byte
	Display    [chip8.DisplaySize]bool
	State      chip8.RunState
	Wait       chip8.KeyWait
	Frames     uint64
}

// SaveState serializes the interpreter. The keypad is not saved: keys are
// whatever the host is holding when the state is restored. It returns nil
// when nothing is loaded or the snapshot could not be encoded.
func (m *Machine) SaveState() []byte {
	var buf bytes.Buffer
	if err := m.WriteState(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// WriteState encodes a snapshot to w.
func (m *Machine) WriteState(w io.Writer) error {
	if m == nil || !m.core.Loaded() {
		return ErrNoState
	}
	c := m.core
	s := machineState{
		V: c.V, I: c.I, PC: c.PC, Stack: c.Stack, SP: c.SP, Memory: c.Memory,
		DelayTimer: c.DelayTimer, SoundTimer: c.SoundTimer,
		Display: c.Display, State: c.State, Wait: c.Wait,
		Frames: m.frames,
	}
	if err := gob.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("emu: encoding snapshot: %w", err)
	}
	return nil
}

// LoadState restores a snapshot taken by SaveState and redraws.
func (m *Machine) LoadState(data []byte) error {
	if len(data) == 0 {
		return ErrNoState
	}
	var s machineState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return err
	}
	if err := s.validate(); err != nil {
		return err
	}
	c := m.core
	c.V, c.I, c.PC, c.Stack, c.SP, c.Memory = s.V, s.I, s.PC, s.Stack, s.SP, s.Memory
	c.DelayTimer, c.SoundTimer = s.DelayTimer, s.SoundTimer
	c.Display, c.State, c.Wait = s.Display, s.State, s.Wait
	m.frames = s.Frames
	m.present()
	return nil
}

func (s *machineState) validate() error {
	switch {
	case int(s.SP) > chip8.StackDepth:
		return fmt.Errorf("%w: stack pointer %d", ErrBadState, s.SP)
	case s.State > chip8.Halted:
		return fmt.Errorf("%w: run state %d", ErrBadState, s.State)
	case int(s.Wait.Key) >= chip8.NumKeys:
		return fmt.Errorf("%w: wait key %d", ErrBadState, s.Wait.Key)
	}
	return nil
}

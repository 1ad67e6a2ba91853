package chip8

import (
	"bytes"
	"errors"
	"testing"
)

func TestLoadInitialState(t *testing.T) {
	rom := []byte{0xA2, 0x2A, 0x60, 0x0C}
	m := New(Config{})
	if m.State != Halted || m.Loaded() {
		t.Fatalf("new machine state=%v loaded=%v", m.State, m.Loaded())
	}
	if err := m.Load(rom); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(m.Memory[:FontSize], DefaultFont[:]) {
		t.Fatalf("font not installed")
	}
	if !bytes.Equal(m.Memory[ProgramStart:ProgramStart+len(rom)], rom) {
		t.Fatalf("rom not installed at 0x200")
	}
	for a := FontSize; a < ProgramStart; a++ {
		if m.Memory[a] != 0 {
			t.Fatalf("memory %03X not zero", a)
		}
	}
	for a := ProgramStart + len(rom); a < MemorySize; a++ {
		if m.Memory[a] != 0 {
			t.Fatalf("memory %03X not zero", a)
		}
	}
	if m.PC != ProgramStart || m.SP != 0 || m.I != 0 || m.State != Running {
		t.Fatalf("PC=%#04x SP=%d I=%#04x state=%v", m.PC, m.SP, m.I, m.State)
	}
}

func TestLoadCustomFont(t *testing.T) {
	var font [FontSize]byte
	for i := range font {
		font[i] = byte(i)
	}
	m := New(Config{Font: &font})
	if err := m.Load(nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Memory[79] != 79 {
		t.Fatalf("custom font byte 79 got %d", m.Memory[79])
	}
}

func TestLoadSizeLimit(t *testing.T) {
	m := New(Config{})
	if err := m.Load(make([]byte, MaxROMSize)); err != nil {
		t.Fatalf("max size rom rejected: %v", err)
	}
	err := m.Load(make([]byte, MaxROMSize+1))
	if !errors.Is(err, ErrROMTooLarge) {
		t.Fatalf("oversized rom: err got %v want ErrROMTooLarge", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoadFromReader(t *testing.T) {
	m := New(Config{})
	if err := m.LoadFrom(bytes.NewReader([]byte{0x00, 0xE0})); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if m.Memory[0x201] != 0xE0 {
		t.Fatalf("program byte got %02x", m.Memory[0x201])
	}
	if err := m.LoadFrom(failingReader{}); !errors.Is(err, ErrROMUnreadable) {
		t.Fatalf("failing reader: err got %v want ErrROMUnreadable", err)
	}
	if err := m.LoadFrom(bytes.NewReader(make([]byte, MaxROMSize+10))); !errors.Is(err, ErrROMTooLarge) {
		t.Fatalf("oversized reader: err got %v want ErrROMTooLarge", err)
	}
}

func TestResetIsIdempotentLoad(t *testing.T) {
	m := New(Config{Quirks: DefaultQuirks(), Seed: 3})
	if err := m.Reset(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("reset before load: err got %v", err)
	}
	rom := []byte{0x60, 0x05, 0x22, 0x00}
	if err := m.Load(rom); err != nil {
		t.Fatalf("load: %v", err)
	}
	fresh := m.Memory
	m.Step()
	m.Step()
	m.DelayTimer = 9
	m.Display[3] = true
	m.Keypad[1] = true
	m.Wait = KeyWait{Detected: true, Key: 1}
	m.Memory[0x300] = 0xAA

	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if m.Memory != fresh {
		t.Fatalf("memory differs after reset")
	}
	if m.V != [NumRegisters]byte{} || m.PC != ProgramStart || m.SP != 0 || m.DelayTimer != 0 {
		t.Fatalf("registers not cleared: V=%v PC=%#04x SP=%d", m.V, m.PC, m.SP)
	}
	if m.Display[3] || m.Keypad[1] || m.Wait.Detected || m.DrawPending {
		t.Fatalf("display/keypad/wait not cleared")
	}
	if !m.Quirks().LogicResetsVF {
		t.Fatalf("reset dropped quirk configuration")
	}
}

func TestResetRecoversHaltedMachine(t *testing.T) {
	m := New(Config{})
	_ = m.Load([]byte{0x00, 0xEE})
	if _, err := m.Step(); err == nil {
		t.Fatalf("expected underflow")
	}
	if err := m.Reset(); err != nil || m.State != Running {
		t.Fatalf("reset after fault: err=%v state=%v", err, m.State)
	}
}

func TestResetReplaysSeededRandom(t *testing.T) {
	m := New(Config{Seed: 7})
	if err := m.Load([]byte{0xC0, 0xFF, 0xC1, 0xFF}); err != nil {
		t.Fatalf("load: %v", err)
	}
	mustStep(t, m)
	mustStep(t, m)
	first := [2]byte{m.V[0], m.V[1]}

	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	mustStep(t, m)
	mustStep(t, m)
	if got := [2]byte{m.V[0], m.V[1]}; got != first {
		t.Fatalf("after reset got %02x want %02x", got, first)
	}
}

package chip8

import (
	"math/rand/v2"
)

const (
	MemorySize    = 0x1000
	ProgramStart  = 0x200
	MaxROMSize    = MemorySize - ProgramStart
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight
	StackDepth    = 16
	NumKeys       = 16
	NumRegisters  = 16
	FlagRegister  = 0xF
)

// RunState is the coarse lifecycle of a machine as seen by the host loop.
type RunState uint8

const (
	Running RunState = iota
	Paused
	Halted
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// KeyWait tracks FX0A progress. Detected is false while no key has been
// noticed; once a key goes down it is latched in Key until released.
type KeyWait struct {
	Detected bool
	Key      uint8
}

// Config holds per-machine settings that survive a reset.
type Config struct {
	Quirks Quirks
	// Font replaces the built-in glyph table when non-nil.
	Font *[FontSize]byte
	// Seed makes CXNN deterministic when non-zero.
	Seed uint64
}

// Machine is the complete state of one emulated CHIP-8 interpreter.
// Fields are exported so frontends, tests and snapshots can inspect them;
// only the executor and timer driver mutate them during a run.
type Machine struct {
	V      [NumRegisters]byte
	I      uint16
	PC     uint16
	Stack  [StackDepth]uint16
	SP     uint8
	Memory [MemorySize]byte

	DelayTimer byte
	SoundTimer byte

	Display     [DisplaySize]bool
	Keypad      [NumKeys]bool
	DrawPending bool
	State       RunState
	Wait        KeyWait

	cfg    Config
	rng    *rand.Rand
	rom    []byte
	loaded bool
}

// New creates a machine with the given configuration. The machine holds
// no program until Load is called; its state is Halted until then.
func New(cfg Config) *Machine {
	m := &Machine{cfg: cfg, State: Halted}
	m.rng = newRNG(cfg.Seed)
	return m
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Config returns the configuration the machine was created with.
func (m *Machine) Config() Config { return m.cfg }

// Quirks returns the active quirk set.
func (m *Machine) Quirks() Quirks { return m.cfg.Quirks }

// SetQuirks changes quirk behavior for subsequent instructions.
func (m *Machine) SetQuirks(q Quirks) { m.cfg.Quirks = q }

// SetRand replaces the random source used by CXNN.
func (m *Machine) SetRand(r *rand.Rand) { m.rng = r }

// ROM returns the program bytes last passed to Load.
func (m *Machine) ROM() []byte { return m.rom }

// Loaded reports whether a program has been installed.
func (m *Machine) Loaded() bool { return m.loaded }

// Pixel reports whether the display cell at (x, y) is lit.
func (m *Machine) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return m.Display[y*DisplayWidth+x]
}

// SetKey records the level of a keypad key. Indices outside 0x0-0xF are ignored.
func (m *Machine) SetKey(k int, down bool) {
	if k < 0 || k >= NumKeys {
		return
	}
	m.Keypad[k] = down
}

// ReleaseAllKeys clears every keypad entry.
func (m *Machine) ReleaseAllKeys() {
	for i := range m.Keypad {
		m.Keypad[i] = false
	}
}

// SoundOn reports whether the tone should currently be audible.
func (m *Machine) SoundOn() bool { return m.SoundTimer > 0 }

// StackDepthUsed returns the number of saved return addresses.
func (m *Machine) StackDepthUsed() int { return int(m.SP) }

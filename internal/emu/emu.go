// Package emu drives a chip8.Machine at frame granularity: it runs the
// per-frame instruction budget, ticks the timers and hands finished frames
// and tone changes to whichever frontend is attached.
package emu

import (
	"fmt"
	"image"
	"log"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/disasm"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/rom"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/video"
)

// Display receives the rendered frame whenever the program changed the
// screen. The image is reused between calls.
type Display interface {
	Present(frame *image.RGBA, cells *[chip8.DisplaySize]bool)
}

// Speaker is told once per frame whether the tone should sound.
type Speaker interface {
	SetTone(on bool)
}

type Machine struct {
	cfg     Config
	core    *chip8.Machine
	fb      *image.RGBA
	display Display
	speaker Speaker
	rom     *rom.ROM
	frames  uint64
	tone    bool
}

func New(cfg Config) *Machine {
	cfg.Defaults()
	m := &Machine{
		cfg: cfg,
		fb:  video.NewFrame(),
	}
	m.core = chip8.New(chip8.Config{Quirks: cfg.Quirks, Seed: cfg.Seed})
	video.Render(m.fb, &m.core.Display, cfg.Palette)
	return m
}

// AttachDisplay sets the frame sink. nil detaches.
func (m *Machine) AttachDisplay(d Display) { m.display = d }

// AttachSpeaker sets the tone sink. nil detaches.
func (m *Machine) AttachSpeaker(s Speaker) { m.speaker = s }

// Core exposes the interpreter for frontends that read registers or
// drive the keypad.
func (m *Machine) Core() *chip8.Machine { return m.core }

// Config returns the active configuration.
func (m *Machine) Config() Config { return m.cfg }

// LoadROM installs r and starts it.
func (m *Machine) LoadROM(r *rom.ROM) error {
	if err := m.core.Load(r.Data); err != nil {
		return err
	}
	m.rom = r
	m.frames = 0
	m.present()
	return nil
}

// LoadROMFromFile reads path and loads it.
func (m *Machine) LoadROMFromFile(path string) error {
	r, err := rom.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadROM(r)
}

// ROM returns the loaded program, or nil.
func (m *Machine) ROM() *rom.ROM { return m.rom }

// Reset reloads the current ROM. The machine runs again even if it was
// paused or halted.
func (m *Machine) Reset() error {
	if err := m.core.Reset(); err != nil {
		return err
	}
	m.frames = 0
	m.present()
	return nil
}

// StepFrame advances one 60 Hz frame. It executes up to IPS/60
// instructions, stopping early after a draw, then ticks the timers once
// and presents the display if it changed. A paused or halted machine does
// nothing except report silence. A fault halts the machine and is returned.
func (m *Machine) StepFrame() error {
	c := m.core
	if c.State != chip8.Running {
		m.setTone(false)
		if c.DrawPending {
			m.present()
		}
		return nil
	}
	budget := m.cfg.IPS / chip8.TimerHz
	if budget < 1 {
		budget = 1
	}
	for i := 0; i < budget; i++ {
		pc := c.PC
		in, err := c.Step()
		if err != nil {
			log.Printf("emu: halted after %d frames: %v", m.frames, err)
			m.setTone(false)
			m.present()
			return err
		}
		if m.cfg.Trace {
			m.trace(pc, in)
		}
		if in.IsDraw() {
			break
		}
	}
	m.setTone(c.TickTimers())
	if c.DrawPending {
		m.present()
	}
	m.frames++
	return nil
}

// StepFrameWhilePaused advances exactly one frame of a paused machine and
// leaves it paused.
func (m *Machine) StepFrameWhilePaused() error {
	c := m.core
	if c.State != chip8.Paused {
		return nil
	}
	c.State = chip8.Running
	err := m.StepFrame()
	if c.State == chip8.Running {
		c.State = chip8.Paused
	}
	return err
}

func (m *Machine) setTone(on bool) {
	m.tone = on
	if m.speaker != nil {
		m.speaker.SetTone(on)
	}
}

func (m *Machine) present() {
	video.Render(m.fb, &m.core.Display, m.cfg.Palette)
	m.core.DrawPending = false
	if m.display != nil {
		m.display.Present(m.fb, &m.core.Display)
	}
}

func (m *Machine) trace(pc uint16, in chip8.Instruction) {
	c := m.core
	log.Printf("%03X: %04X  %-18s I=%03X SP=%d DT=%02X ST=%02X V=% X",
		pc, in.Opcode, disasm.Format(in), c.I, c.SP, c.DelayTimer, c.SoundTimer, c.V[:])
}

// Framebuffer returns the RGBA pixels of the last presented frame.
func (m *Machine) Framebuffer() []byte { return m.fb.Pix }

// Frame returns the last presented frame as an image.
func (m *Machine) Frame() *image.RGBA { return m.fb }

// Frames returns the number of frames executed since the last load or reset.
func (m *Machine) Frames() uint64 { return m.frames }

// ToneOn reports what the speaker was last told.
func (m *Machine) ToneOn() bool { return m.tone }

// State returns the run state.
func (m *Machine) State() chip8.RunState { return m.core.State }

// Pause stops execution until Resume. Halted machines stay halted.
func (m *Machine) Pause() {
	if m.core.State == chip8.Running {
		m.core.State = chip8.Paused
	}
}

// Resume continues a paused machine.
func (m *Machine) Resume() {
	if m.core.State == chip8.Paused {
		m.core.State = chip8.Running
	}
}

// TogglePause flips between Running and Paused and reports whether the
// machine is now paused.
func (m *Machine) TogglePause() bool {
	switch m.core.State {
	case chip8.Running:
		m.core.State = chip8.Paused
	case chip8.Paused:
		m.core.State = chip8.Running
	}
	return m.core.State == chip8.Paused
}

// Halt ends the session. The host loop exits once it sees Halted.
func (m *Machine) Halt() { m.core.State = chip8.Halted }

// SetKey forwards a keypad level change.
func (m *Machine) SetKey(k int, down bool) { m.core.SetKey(k, down) }

// SetIPS changes the instruction rate for subsequent frames.
func (m *Machine) SetIPS(ips int) {
	if ips > 0 {
		m.cfg.IPS = ips
	}
}

// SetQuirks changes interpreter quirks for subsequent instructions.
func (m *Machine) SetQuirks(q chip8.Quirks) {
	m.cfg.Quirks = q
	m.core.SetQuirks(q)
}

// SetPalette changes colors and re-presents the current screen.
func (m *Machine) SetPalette(p video.Palette) {
	m.cfg.Palette = p
	m.present()
}

// Status is a one-line summary for overlays and logs.
func (m *Machine) Status() string {
	c := m.core
	return fmt.Sprintf("%s PC=%03X I=%03X SP=%d frame=%d", c.State, c.PC, c.I, c.SP, m.frames)
}

package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/emu"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/rom"
)

func TestKeysHold(t *testing.T) {
	k := NewKeys(2)
	k.Press(0xA)
	if d := k.Frame(); !d[0xA] {
		t.Fatalf("frame 1: A should be down")
	}
	if d := k.Frame(); !d[0xA] {
		t.Fatalf("frame 2: A should be down")
	}
	if d := k.Frame(); d[0xA] {
		t.Fatalf("frame 3: A should be released")
	}
	k.Press(99)
}

func TestDecode(t *testing.T) {
	evs := Decode([]byte("1v \x1b[A\x1b[B=n\x1b"))
	want := []Event{
		{Key: 0x1}, {Key: 0xF},
		{Key: -1, Action: Pause},
		{Key: -1, Action: VolumeUp},
		{Key: -1, Action: VolumeDown},
		{Key: -1, Action: Reset},
		{Key: -1, Action: StepFrame},
		{Key: -1, Action: Quit},
	}
	if len(evs) != len(want) {
		t.Fatalf("events got %v want %v", evs, want)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d got %+v want %+v", i, evs[i], want[i])
		}
	}
	if evs := Decode([]byte("p\x03")); len(evs) != 1 || evs[0].Action != Quit {
		t.Fatalf("ctrl-c got %v", evs)
	}
}

func TestRender(t *testing.T) {
	var d [chip8.DisplaySize]bool
	d[0] = true                    // (0,0) top half
	d[chip8.DisplayWidth+1] = true // (1,1) bottom half
	d[2] = true                    // (2,0)
	d[chip8.DisplayWidth+2] = true // (2,1)
	out := Render(&d)
	lines := strings.Split(out, "\r\n")
	if len(lines) != chip8.DisplayHeight/2+1 {
		t.Fatalf("lines got %d want %d", len(lines), chip8.DisplayHeight/2+1)
	}
	first := []rune(lines[0])
	if len(first) != chip8.DisplayWidth {
		t.Fatalf("width got %d want %d", len(first), chip8.DisplayWidth)
	}
	if string(first[:4]) != "▀▄█ " {
		t.Fatalf("row 0 got %q", string(first[:4]))
	}
}

func TestApplyDrivesMachine(t *testing.T) {
	m := emu.New(emu.DefaultConfig())
	r, err := rom.FromBytes("loop", []byte{0x70, 0x01, 0x12, 0x00})
	if err != nil {
		t.Fatalf("rom: %v", err)
	}
	if err := m.LoadROM(r); err != nil {
		t.Fatalf("load: %v", err)
	}
	var out bytes.Buffer
	f := New(Config{Muted: true}, m, &out)

	if !f.Apply(Decode([]byte(" "))) || m.State() != chip8.Paused {
		t.Fatalf("space should pause, state %v", m.State())
	}
	if !strings.Contains(out.String(), "paused") {
		t.Fatalf("status line missing from output")
	}
	f.Apply(Decode([]byte("n")))
	if m.Core().V[0] == 0 {
		t.Fatalf("n should step one frame")
	}
	f.Apply(Decode([]byte("=")))
	if m.Core().V[0] != 0 || m.State() != chip8.Running {
		t.Fatalf("reset: V0=%d state=%v", m.Core().V[0], m.State())
	}
	if f.Apply(Decode([]byte{0x1b})) || m.State() != chip8.Halted {
		t.Fatalf("esc should quit and halt")
	}
}

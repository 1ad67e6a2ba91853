package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/emu"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/rom"
)

func TestQuirksFromFlags(t *testing.T) {
	f := CLIFlags{QuirkSet: "modern", VFReset: true, Clip: false}
	q, err := quirksFromFlags(f, map[string]bool{"vfreset": true})
	if err != nil {
		t.Fatalf("quirks: %v", err)
	}
	if !q.LogicResetsVF || !q.JumpUsesVX || !q.ClipSprites {
		t.Fatalf("got %+v", q)
	}
	if _, err := quirksFromFlags(CLIFlags{QuirkSet: "nope"}, nil); err == nil {
		t.Fatalf("unknown preset accepted")
	}
}

func newHeadlessMachine(t *testing.T, code ...byte) *emu.Machine {
	t.Helper()
	cfg := emu.DefaultConfig()
	cfg.Seed = 1
	m := emu.New(cfg)
	r, err := rom.FromBytes("t", code)
	if err != nil {
		t.Fatalf("rom: %v", err)
	}
	if err := m.LoadROM(r); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestRunHeadlessOutputs(t *testing.T) {
	dir := t.TempDir()
	// 600A FA18 (beep 10 frames) A000 D005 1208
	m := newHeadlessMachine(t, 0x60, 0x0A, 0xF0, 0x18, 0xA0, 0x00, 0xD0, 0x05, 0x12, 0x08)
	f := CLIFlags{
		Frames:   20,
		PNGOut:   filepath.Join(dir, "out.png"),
		PNGScale: 4,
		WAVOut:   filepath.Join(dir, "out.wav"),
	}
	if err := runHeadless(m, f, audio.Config{SampleRate: 600, Freq: 100, Volume: 100}); err != nil {
		t.Fatalf("headless: %v", err)
	}
	for _, p := range []string{f.PNGOut, f.WAVOut} {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("%s not written: %v", p, err)
		}
	}
}

func TestRunHeadlessExpectMismatch(t *testing.T) {
	m := newHeadlessMachine(t, 0x12, 0x00)
	err := runHeadless(m, CLIFlags{Frames: 2, Expect: "0xdeadbeef"}, audio.Config{})
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("err got %v", err)
	}
}

func TestRunHeadlessScriptQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.lua")
	src := "function on_frame(n) if n == 2 then quit() end end\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := newHeadlessMachine(t, 0x70, 0x01, 0x12, 0x00)
	if err := runHeadless(m, CLIFlags{Frames: 100, Script: path}, audio.Config{}); err != nil {
		t.Fatalf("headless: %v", err)
	}
	if m.Frames() != 3 {
		t.Fatalf("frames got %d want 3", m.Frames())
	}
}

func TestRunHeadlessFault(t *testing.T) {
	m := newHeadlessMachine(t, 0x00, 0xEE)
	if err := runHeadless(m, CLIFlags{Frames: 5}, audio.Config{}); err == nil {
		t.Fatalf("fault not reported")
	}
	if m.State() != chip8.Halted {
		t.Fatalf("state got %v", m.State())
	}
}

package main

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

func TestRingOrder(t *testing.T) {
	r := newRing(3)
	for pc := uint16(1); pc <= 5; pc++ {
		r.add(traceEntry{pc: pc})
	}
	got := r.entries()
	if len(got) != 3 {
		t.Fatalf("len got %d want 3", len(got))
	}
	for i, want := range []uint16{3, 4, 5} {
		if got[i].pc != want {
			t.Fatalf("entry %d got %d want %d", i, got[i].pc, want)
		}
	}
	if e := newRing(0); len(e.entries()) != 0 {
		t.Fatalf("empty ring should have no entries")
	}
}

func TestSelfJump(t *testing.T) {
	if !selfJump(0x204, chip8.DecodeWord(0x1204)) {
		t.Fatalf("1204 at 204 is a self jump")
	}
	if selfJump(0x204, chip8.DecodeWord(0x1206)) || selfJump(0x204, chip8.DecodeWord(0x2204)) {
		t.Fatalf("false positive")
	}
}

package emu

import (
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/video"
)

// Config contains settings that affect emulation behavior.
type Config struct {
	IPS     int  // instructions per second; the per-frame budget is IPS/60
	Trace   bool // log every executed instruction
	Quirks  chip8.Quirks
	Seed    uint64 // CXNN seed, 0 = random
	Palette video.Palette
}

// Defaults fills missing fields with reasonable defaults. Quirks are left
// alone; callers start from chip8.DefaultQuirks.
func (c *Config) Defaults() {
	if c.IPS <= 0 {
		c.IPS = 600
	}
	if c.Palette == (video.Palette{}) {
		c.Palette = video.DefaultPalette()
	}
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	c := Config{Quirks: chip8.DefaultQuirks()}
	c.Defaults()
	return c
}

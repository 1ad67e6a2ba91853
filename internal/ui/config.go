package ui

import "github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"

// Config contains window/input/audio related settings.
type Config struct {
	Title    string // window title
	Scale    int    // integer upscaling factor
	Outlines bool   // draw background-colored borders around lit cells
	Muted    bool   // start without opening an audio player
	ROMsDir  string // directory to browse for ROMs
	Audio    audio.Config
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 20
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	c.Audio.Channels = 2
	c.Audio.Defaults()
}
